package model

import "errors"

var (
	ErrNotFound           = errors.New("не найдено")
	ErrMalformedReference = errors.New("неверная ссылка на объект хранилища")
	ErrTransport          = errors.New("ошибка обмена с хранилищем")
	ErrPersistence        = errors.New("ошибка сохранения в БД")
	ErrLogWrite           = errors.New("ошибка записи журнала")
	ErrAccessDenied       = errors.New("доступ запрещён")
	ErrAlreadyExists      = errors.New("объект уже существует")
)
