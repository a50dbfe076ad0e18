package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"glow/internal/domain"
	"glow/internal/repository"
)

type BookingServiceImpl struct {
	repo             repository.BookingRepository
	availabilityRepo repository.AvailabilityRepository
	providerRepo     repository.ProviderRepository
	offeringRepo     repository.OfferingRepository
	logger           *zap.Logger
}

func NewBookingService(
	repo repository.BookingRepository,
	availabilityRepo repository.AvailabilityRepository,
	providerRepo repository.ProviderRepository,
	offeringRepo repository.OfferingRepository,
	logger *zap.Logger,
) *BookingServiceImpl {
	return &BookingServiceImpl{
		repo:             repo,
		availabilityRepo: availabilityRepo,
		providerRepo:     providerRepo,
		offeringRepo:     offeringRepo,
		logger:           logger,
	}
}

func (s *BookingServiceImpl) Create(ctx context.Context, clientID int64, dto domain.CreateBookingDTO) (int64, error) {
	if _, err := time.Parse(domain.DateLayout, dto.BookingDate); err != nil {
		return 0, errors.New("неверный формат даты, ожидается YYYY-MM-DD")
	}
	if _, ok := domain.MinutesOfDay(dto.StartTime); !ok {
		return 0, errors.New("неверный формат времени, ожидается HH:MM")
	}

	provider, err := s.providerRepo.GetByID(ctx, dto.ProviderID)
	if err != nil || provider == nil {
		return 0, errors.New("мастер не найден")
	}

	if dto.OfferingID != nil {
		offering, err := s.offeringRepo.GetByID(ctx, *dto.OfferingID)
		if err != nil || offering == nil || offering.ProviderID != dto.ProviderID {
			return 0, errors.New("услуга не найдена")
		}
		if !offering.IsActive {
			return 0, errors.New("услуга недоступна для записи")
		}
	}

	exists, err := s.availabilityRepo.SlotExists(ctx, dto.ProviderID, dto.BookingDate, dto.StartTime)
	if err != nil {
		s.logger.Error("ошибка проверки слота", zap.Int64("providerId", dto.ProviderID), zap.Error(err))
		return 0, errors.New("ошибка создания записи")
	}
	if !exists {
		return 0, errors.New("выбранное время недоступно")
	}

	blockedDates, err := s.repo.ListBlockedDates(ctx, dto.ProviderID, dto.BookingDate, dto.BookingDate)
	if err != nil {
		s.logger.Error("ошибка проверки занятости даты", zap.Int64("providerId", dto.ProviderID), zap.Error(err))
		return 0, errors.New("ошибка создания записи")
	}
	if len(blockedDates) > 0 {
		return 0, errors.New("на эту дату уже есть запись")
	}

	id, err := s.repo.Create(ctx, clientID, dto)
	if err != nil {
		s.logger.Error("ошибка создания записи", zap.Int64("clientId", clientID), zap.Error(err))
		return 0, errors.New("ошибка создания записи")
	}

	s.logger.Info("создана запись",
		zap.Int64("bookingId", id),
		zap.Int64("clientId", clientID),
		zap.Int64("providerId", dto.ProviderID),
		zap.String("date", dto.BookingDate),
		zap.String("time", dto.StartTime),
	)

	return id, nil
}

func (s *BookingServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения записи", zap.Int64("bookingId", id), zap.Error(err))
		return nil, errors.New("ошибка получения записи")
	}
	if booking == nil {
		return nil, errors.New("запись не найдена")
	}
	return booking, nil
}

// allowedTransitions задаёт допустимые смены статуса. Завершённые и
// отменённые записи терминальны.
var allowedTransitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.BookingStatusPending:   {domain.BookingStatusConfirmed, domain.BookingStatusCancelled},
	domain.BookingStatusConfirmed: {domain.BookingStatusCompleted, domain.BookingStatusCancelled},
}

func transitionAllowed(from, to domain.BookingStatus) bool {
	for _, status := range allowedTransitions[from] {
		if status == to {
			return true
		}
	}
	return false
}

func (s *BookingServiceImpl) UpdateStatus(ctx context.Context, id, actorID int64, role domain.UserRole, status domain.BookingStatus) error {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения записи", zap.Int64("bookingId", id), zap.Error(err))
		return errors.New("ошибка обновления записи")
	}
	if booking == nil {
		return errors.New("запись не найдена")
	}

	switch role {
	case domain.UserRoleClient:
		if booking.ClientID != actorID {
			return errors.New("нет доступа к записи")
		}
		// Клиент может только отменить свою запись.
		if status != domain.BookingStatusCancelled {
			return errors.New("недопустимое изменение статуса")
		}
	case domain.UserRoleProvider:
		provider, err := s.providerRepo.GetByUserID(ctx, actorID)
		if err != nil || provider == nil || provider.ID != booking.ProviderID {
			return errors.New("нет доступа к записи")
		}
	case domain.UserRoleAdmin:
	default:
		return errors.New("нет доступа к записи")
	}

	if !transitionAllowed(booking.Status, status) {
		return errors.New("недопустимое изменение статуса")
	}

	err = s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		s.logger.Error("ошибка обновления статуса записи", zap.Int64("bookingId", id), zap.Error(err))
		return errors.New("ошибка обновления записи")
	}

	s.logger.Info("статус записи изменён",
		zap.Int64("bookingId", id),
		zap.String("from", string(booking.Status)),
		zap.String("to", string(status)),
	)

	return nil
}

func (s *BookingServiceImpl) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int, error) {
	bookings, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка записей", zap.Error(err))
		return nil, 0, errors.New("ошибка получения списка записей")
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения количества записей", zap.Error(err))
		return nil, 0, errors.New("ошибка получения списка записей")
	}

	return bookings, total, nil
}
