package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"glow/internal/domain"
	"glow/internal/repository"
	"glow/internal/storage"
	"glow/pkg/auth"
)

type UserServiceImpl struct {
	repo        repository.UserRepository
	fileStorage storage.FileStorage
	logger      *zap.Logger
}

func NewUserService(repo repository.UserRepository, fileStorage storage.FileStorage, logger *zap.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		repo:        repo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения пользователя", zap.Int64("userId", id), zap.Error(err))
		return nil, errors.New("ошибка получения пользователя")
	}
	if user == nil {
		return nil, errors.New("пользователь не найден")
	}
	return user, nil
}

func (s *UserServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error {
	if dto.Email != nil {
		existing, err := s.repo.GetByEmail(ctx, *dto.Email)
		if err == nil && existing != nil && existing.ID != id {
			return errors.New("пользователь с таким email уже существует")
		}
	}

	if dto.Phone != nil {
		existing, err := s.repo.GetByPhone(ctx, *dto.Phone)
		if err == nil && existing != nil && existing.ID != id {
			return errors.New("пользователь с таким телефоном уже существует")
		}
	}

	err := s.repo.Update(ctx, id, dto)
	if err != nil {
		s.logger.Error("ошибка обновления пользователя", zap.Int64("userId", id), zap.Error(err))
		return errors.New("ошибка обновления пользователя")
	}

	return nil
}

func (s *UserServiceImpl) UpdatePassword(ctx context.Context, id int64, dto domain.PasswordUpdateDTO) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil || user == nil {
		s.logger.Error("ошибка получения пользователя", zap.Int64("userId", id), zap.Error(err))
		return errors.New("пользователь не найден")
	}

	if !auth.VerifyPassword(dto.OldPassword, user.PasswordHash) {
		return errors.New("неверный текущий пароль")
	}

	hashedPassword, err := auth.HashPassword(dto.NewPassword)
	if err != nil {
		s.logger.Error("ошибка при хешировании пароля", zap.Error(err))
		return errors.New("ошибка обновления пароля")
	}

	err = s.repo.UpdatePassword(ctx, id, hashedPassword)
	if err != nil {
		s.logger.Error("ошибка обновления пароля", zap.Int64("userId", id), zap.Error(err))
		return errors.New("ошибка обновления пароля")
	}

	return nil
}

func (s *UserServiceImpl) UploadAvatar(ctx context.Context, id int64, photo []byte, filename string) (string, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil || user == nil {
		return "", errors.New("пользователь не найден")
	}

	url, err := s.fileStorage.UploadFile(ctx, storage.PrefixAvatars, photo, filename)
	if err != nil {
		s.logger.Error("ошибка загрузки аватара", zap.Int64("userId", id), zap.Error(err))
		return "", errors.New("ошибка загрузки аватара")
	}

	if user.AvatarURL != "" {
		if err := s.fileStorage.DeleteFile(ctx, user.AvatarURL); err != nil {
			s.logger.Warn("ошибка удаления старого аватара", zap.Error(err))
		}
	}

	err = s.repo.UpdateAvatar(ctx, id, url)
	if err != nil {
		s.logger.Error("ошибка сохранения аватара", zap.Int64("userId", id), zap.Error(err))
		return "", errors.New("ошибка сохранения аватара")
	}

	return url, nil
}

func (s *UserServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("ошибка удаления пользователя", zap.Int64("userId", id), zap.Error(err))
		return errors.New("ошибка удаления пользователя")
	}
	return nil
}
