package util

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
)

// ZipSingleFile : упаковывает данные в zip-архив из одного файла, сжатого deflate
func ZipSingleFile(memberName string, data []byte, modified time.Time) ([]byte, error) {
	if memberName == "" {
		return nil, fmt.Errorf("[archive] пустое имя файла в архиве")
	}

	var out bytes.Buffer
	zipWriter := zip.NewWriter(&out)
	defer func() { _ = zipWriter.Close() }()

	header := zip.FileHeader{Name: memberName, Method: zip.Deflate, Modified: modified}
	header.SetMode(0644)

	dst, err := zipWriter.CreateHeader(&header)
	if err != nil {
		return nil, fmt.Errorf("[archive] ошибка записи заголовка %q: %w", memberName, err)
	}
	if _, err := dst.Write(data); err != nil {
		return nil, fmt.Errorf("[archive] ошибка записи %q: %w", memberName, err)
	}

	if err := zipWriter.Close(); err != nil {
		return nil, fmt.Errorf("[archive] ошибка завершения архива: %w", err)
	}

	return out.Bytes(), nil
}

// ArchiveBaseName : имя без последнего расширения, "report.pdf" -> "report"
func ArchiveBaseName(displayName string) string {
	base := path.Base(strings.ReplaceAll(displayName, "\\", "/"))
	if base == "." || base == "/" {
		return "document"
	}
	if ext := path.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" {
		return "document"
	}
	return base
}

// ArchiveMemberName : последний сегмент имени, без каталогов и "..".
// Пустое имя заменяется последним сегментом fallbackPath.
func ArchiveMemberName(displayName, fallbackPath string) string {
	for _, candidate := range []string{displayName, fallbackPath} {
		base := path.Base(strings.ReplaceAll(candidate, "\\", "/"))
		switch base {
		case "", ".", "..", "/":
			continue
		}
		return base
	}
	return "document"
}
