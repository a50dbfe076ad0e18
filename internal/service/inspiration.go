package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"glow/internal/domain"
	"glow/internal/repository"
	"glow/internal/storage"
)

type InspirationServiceImpl struct {
	repo         repository.InspirationRepository
	providerRepo repository.ProviderRepository
	fileStorage  storage.FileStorage
	logger       *zap.Logger
}

func NewInspirationService(
	repo repository.InspirationRepository,
	providerRepo repository.ProviderRepository,
	fileStorage storage.FileStorage,
	logger *zap.Logger,
) *InspirationServiceImpl {
	return &InspirationServiceImpl{
		repo:         repo,
		providerRepo: providerRepo,
		fileStorage:  fileStorage,
		logger:       logger,
	}
}

func (s *InspirationServiceImpl) Create(ctx context.Context, userID int64, dto domain.CreateInspirationDTO, filename string) (int64, error) {
	provider, err := s.providerRepo.GetByUserID(ctx, userID)
	if err != nil || provider == nil {
		return 0, errors.New("мастер не найден")
	}

	url, err := s.fileStorage.UploadFile(ctx, storage.PrefixInspirations, dto.Image, filename)
	if err != nil {
		s.logger.Error("ошибка загрузки фото публикации", zap.Int64("providerId", provider.ID), zap.Error(err))
		return 0, errors.New("ошибка загрузки фото")
	}

	id, err := s.repo.Create(ctx, provider.ID, url, dto)
	if err != nil {
		s.logger.Error("ошибка создания публикации", zap.Int64("providerId", provider.ID), zap.Error(err))
		return 0, errors.New("ошибка создания публикации")
	}

	return id, nil
}

func (s *InspirationServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Inspiration, error) {
	inspiration, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения публикации", zap.Int64("inspirationId", id), zap.Error(err))
		return nil, errors.New("ошибка получения публикации")
	}
	if inspiration == nil {
		return nil, errors.New("публикация не найдена")
	}
	return inspiration, nil
}

func (s *InspirationServiceImpl) Delete(ctx context.Context, userID, id int64) error {
	inspiration, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения публикации", zap.Int64("inspirationId", id), zap.Error(err))
		return errors.New("ошибка удаления публикации")
	}
	if inspiration == nil {
		return errors.New("публикация не найдена")
	}

	provider, err := s.providerRepo.GetByUserID(ctx, userID)
	if err != nil || provider == nil || provider.ID != inspiration.ProviderID {
		return errors.New("публикация не найдена")
	}

	if err := s.fileStorage.DeleteFile(ctx, inspiration.ImageURL); err != nil {
		s.logger.Warn("ошибка удаления файла публикации", zap.Error(err))
	}

	err = s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("ошибка удаления публикации", zap.Int64("inspirationId", id), zap.Error(err))
		return errors.New("ошибка удаления публикации")
	}

	return nil
}

func (s *InspirationServiceImpl) List(ctx context.Context, filter domain.InspirationFilter) ([]domain.Inspiration, int, error) {
	inspirations, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения ленты", zap.Error(err))
		return nil, 0, errors.New("ошибка получения ленты")
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения количества публикаций", zap.Error(err))
		return nil, 0, errors.New("ошибка получения ленты")
	}

	return inspirations, total, nil
}
