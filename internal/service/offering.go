package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"glow/internal/domain"
	"glow/internal/repository"
)

type OfferingServiceImpl struct {
	repo         repository.OfferingRepository
	providerRepo repository.ProviderRepository
	logger       *zap.Logger
}

func NewOfferingService(repo repository.OfferingRepository, providerRepo repository.ProviderRepository, logger *zap.Logger) *OfferingServiceImpl {
	return &OfferingServiceImpl{
		repo:         repo,
		providerRepo: providerRepo,
		logger:       logger,
	}
}

func (s *OfferingServiceImpl) Create(ctx context.Context, providerID int64, dto domain.CreateOfferingDTO) (int64, error) {
	provider, err := s.providerRepo.GetByID(ctx, providerID)
	if err != nil || provider == nil {
		return 0, errors.New("мастер не найден")
	}

	id, err := s.repo.Create(ctx, providerID, dto)
	if err != nil {
		s.logger.Error("ошибка создания услуги", zap.Int64("providerId", providerID), zap.Error(err))
		return 0, errors.New("ошибка создания услуги")
	}

	return id, nil
}

func (s *OfferingServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Offering, error) {
	offering, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения услуги", zap.Int64("offeringId", id), zap.Error(err))
		return nil, errors.New("ошибка получения услуги")
	}
	if offering == nil {
		return nil, errors.New("услуга не найдена")
	}
	return offering, nil
}

func (s *OfferingServiceImpl) Update(ctx context.Context, providerID, id int64, dto domain.UpdateOfferingDTO) error {
	offering, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения услуги", zap.Int64("offeringId", id), zap.Error(err))
		return errors.New("ошибка обновления услуги")
	}
	if offering == nil || offering.ProviderID != providerID {
		return errors.New("услуга не найдена")
	}

	err = s.repo.Update(ctx, id, dto)
	if err != nil {
		s.logger.Error("ошибка обновления услуги", zap.Int64("offeringId", id), zap.Error(err))
		return errors.New("ошибка обновления услуги")
	}

	return nil
}

func (s *OfferingServiceImpl) Delete(ctx context.Context, providerID, id int64) error {
	offering, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения услуги", zap.Int64("offeringId", id), zap.Error(err))
		return errors.New("ошибка удаления услуги")
	}
	if offering == nil || offering.ProviderID != providerID {
		return errors.New("услуга не найдена")
	}

	err = s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("ошибка удаления услуги", zap.Int64("offeringId", id), zap.Error(err))
		return errors.New("ошибка удаления услуги")
	}

	return nil
}

func (s *OfferingServiceImpl) ListByProvider(ctx context.Context, providerID int64) ([]domain.Offering, error) {
	offerings, err := s.repo.ListByProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("ошибка получения списка услуг", zap.Int64("providerId", providerID), zap.Error(err))
		return nil, errors.New("ошибка получения списка услуг")
	}
	return offerings, nil
}
