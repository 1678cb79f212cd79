package service

import (
	"context"
	"fmt"
	"instashare-backend/internal/model"
	"instashare-backend/internal/ports"
	"instashare-backend/internal/util"
	"log"
	"strings"
)

type UserService struct {
	userRepository ports.UserRepository
	roleRepository ports.RoleRepository
}

func NewUserService(userRepository ports.UserRepository, roleRepository ports.RoleRepository) *UserService {
	return &UserService{
		userRepository: userRepository,
		roleRepository: roleRepository,
	}
}

func (s *UserService) GetUser(ctx context.Context, userUUID string) (*model.User, error) {
	exec, rollback, commit, err := s.roleRepository.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[UserService] не удалось начать транзакцию", err)
	}
	defer rollback()

	user, err := s.userRepository.FindByUUID(ctx, exec, userUUID)
	if err != nil {
		return nil, err
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[UserService] не удалось закоммитить транзакцию", err)
	}
	return user, nil
}

// AssignRole : назначает пользователю роль по имени
func (s *UserService) AssignRole(ctx context.Context, userUUID, roleName string) error {
	roleName = strings.TrimSpace(roleName)
	if roleName == "" {
		return fmt.Errorf("[UserService] имя роли не может быть пустым")
	}

	exec, rollback, commit, err := s.roleRepository.BeginTX(ctx)
	if err != nil {
		return util.LogError("[UserService] не удалось начать транзакцию", err)
	}
	defer rollback()

	exists, err := s.userRepository.Exists(ctx, exec, userUUID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("[UserService] пользователь %s: %w", userUUID, model.ErrNotFound)
	}

	role, err := s.roleRepository.FindByName(ctx, exec, roleName)
	if err != nil {
		return err
	}

	if err := s.roleRepository.AssignRole(ctx, exec, role.ID, userUUID); err != nil {
		return err
	}

	if err := commit(); err != nil {
		return util.LogError("[UserService] не удалось закоммитить транзакцию", err)
	}

	log.Printf("[UserService] пользователю %s назначена роль %s", userUUID, role.RoleName)
	return nil
}

func (s *UserService) ListUserRoles(ctx context.Context, userUUID string) ([]model.UserRole, error) {
	exec, rollback, commit, err := s.roleRepository.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[UserService] не удалось начать транзакцию", err)
	}
	defer rollback()

	exists, err := s.userRepository.Exists(ctx, exec, userUUID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("[UserService] пользователь %s: %w", userUUID, model.ErrNotFound)
	}

	roles, err := s.roleRepository.ListUserRoles(ctx, exec, userUUID)
	if err != nil {
		return nil, err
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[UserService] не удалось закоммитить транзакцию", err)
	}
	return roles, nil
}
