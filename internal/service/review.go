package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"glow/internal/domain"
	"glow/internal/repository"
)

type ReviewServiceImpl struct {
	repo         repository.ReviewRepository
	bookingRepo  repository.BookingRepository
	providerRepo repository.ProviderRepository
	logger       *zap.Logger
}

func NewReviewService(
	repo repository.ReviewRepository,
	bookingRepo repository.BookingRepository,
	providerRepo repository.ProviderRepository,
	logger *zap.Logger,
) *ReviewServiceImpl {
	return &ReviewServiceImpl{
		repo:         repo,
		bookingRepo:  bookingRepo,
		providerRepo: providerRepo,
		logger:       logger,
	}
}

func (s *ReviewServiceImpl) Create(ctx context.Context, clientID int64, dto domain.CreateReviewDTO) (int64, error) {
	booking, err := s.bookingRepo.GetByID(ctx, dto.BookingID)
	if err != nil {
		s.logger.Error("ошибка получения записи", zap.Int64("bookingId", dto.BookingID), zap.Error(err))
		return 0, errors.New("ошибка создания отзыва")
	}
	if booking == nil || booking.ClientID != clientID || booking.ProviderID != dto.ProviderID {
		return 0, errors.New("запись не найдена")
	}
	if booking.Status != domain.BookingStatusCompleted {
		return 0, errors.New("отзыв можно оставить только после завершённой записи")
	}

	id, err := s.repo.Create(ctx, clientID, dto)
	if err != nil {
		s.logger.Error("ошибка создания отзыва", zap.Int64("clientId", clientID), zap.Error(err))
		return 0, errors.New("ошибка создания отзыва")
	}

	s.recalcRating(ctx, dto.ProviderID)

	return id, nil
}

func (s *ReviewServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения отзыва", zap.Int64("reviewId", id), zap.Error(err))
		return nil, errors.New("ошибка получения отзыва")
	}
	if review == nil {
		return nil, errors.New("отзыв не найден")
	}
	return review, nil
}

func (s *ReviewServiceImpl) Update(ctx context.Context, id, clientID int64, dto domain.UpdateReviewDTO) error {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения отзыва", zap.Int64("reviewId", id), zap.Error(err))
		return errors.New("ошибка обновления отзыва")
	}
	if review == nil || review.ClientID != clientID {
		return errors.New("отзыв не найден")
	}

	err = s.repo.Update(ctx, id, dto)
	if err != nil {
		s.logger.Error("ошибка обновления отзыва", zap.Int64("reviewId", id), zap.Error(err))
		return errors.New("ошибка обновления отзыва")
	}

	if dto.Rating != nil {
		s.recalcRating(ctx, review.ProviderID)
	}

	return nil
}

func (s *ReviewServiceImpl) Delete(ctx context.Context, id, clientID int64) error {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения отзыва", zap.Int64("reviewId", id), zap.Error(err))
		return errors.New("ошибка удаления отзыва")
	}
	if review == nil || review.ClientID != clientID {
		return errors.New("отзыв не найден")
	}

	err = s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("ошибка удаления отзыва", zap.Int64("reviewId", id), zap.Error(err))
		return errors.New("ошибка удаления отзыва")
	}

	s.recalcRating(ctx, review.ProviderID)

	return nil
}

func (s *ReviewServiceImpl) List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, int, error) {
	reviews, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка отзывов", zap.Error(err))
		return nil, 0, errors.New("ошибка получения списка отзывов")
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения количества отзывов", zap.Error(err))
		return nil, 0, errors.New("ошибка получения списка отзывов")
	}

	return reviews, total, nil
}

func (s *ReviewServiceImpl) recalcRating(ctx context.Context, providerID int64) {
	avg, count, err := s.repo.AverageByProvider(ctx, providerID)
	if err != nil {
		s.logger.Warn("ошибка расчёта рейтинга", zap.Int64("providerId", providerID), zap.Error(err))
		return
	}

	if err := s.providerRepo.UpdateRating(ctx, providerID, avg, count); err != nil {
		s.logger.Warn("ошибка обновления рейтинга", zap.Int64("providerId", providerID), zap.Error(err))
	}
}
