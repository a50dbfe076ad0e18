package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"glow/internal/cache"
	"glow/internal/domain"
	"glow/internal/repository"
)

// publishBatchSize — размер пачки при массовой вставке слотов.
const publishBatchSize = 100

type AvailabilityServiceImpl struct {
	repo         repository.AvailabilityRepository
	providerRepo repository.ProviderRepository
	bookingRepo  repository.BookingRepository
	drafts       cache.DraftCache
	logger       *zap.Logger
}

func NewAvailabilityService(
	repo repository.AvailabilityRepository,
	providerRepo repository.ProviderRepository,
	bookingRepo repository.BookingRepository,
	drafts cache.DraftCache,
	logger *zap.Logger,
) *AvailabilityServiceImpl {
	return &AvailabilityServiceImpl{
		repo:         repo,
		providerRepo: providerRepo,
		bookingRepo:  bookingRepo,
		drafts:       drafts,
		logger:       logger,
	}
}

// GetSchedule возвращает шаблон мастера. Если сохранённого шаблона нет,
// возвращаются значения по умолчанию. Несохранённый черновик из кэша,
// если он есть, перекрывает недельную часть.
func (s *AvailabilityServiceImpl) GetSchedule(ctx context.Context, providerID int64) (*domain.ProviderSchedule, error) {
	schedule, err := s.repo.GetSchedule(ctx, providerID)
	if err != nil {
		s.logger.Error("ошибка получения расписания", zap.Int64("providerId", providerID), zap.Error(err))
		return nil, errors.New("ошибка получения расписания")
	}

	if schedule == nil {
		schedule = &domain.ProviderSchedule{
			ProviderID: providerID,
			Week:       domain.DefaultWeekSchedule(),
		}
	}

	if s.drafts != nil {
		draft, err := s.drafts.GetScheduleDraft(ctx, providerID)
		if err != nil {
			s.logger.Warn("ошибка чтения черновика расписания", zap.Int64("providerId", providerID), zap.Error(err))
		} else if draft != nil {
			schedule.Week = *draft
		}
	}

	return schedule, nil
}

func (s *AvailabilityServiceImpl) SaveDraft(ctx context.Context, providerID int64, week domain.WeekSchedule) error {
	if err := week.Validate(); err != nil {
		return err
	}

	if s.drafts == nil {
		return nil
	}

	if err := s.drafts.SaveScheduleDraft(ctx, providerID, week); err != nil {
		s.logger.Warn("ошибка сохранения черновика расписания", zap.Int64("providerId", providerID), zap.Error(err))
	}

	return nil
}

func (s *AvailabilityServiceImpl) SaveSchedule(ctx context.Context, providerID int64, dto domain.SaveScheduleDTO) error {
	if err := dto.Week.Validate(); err != nil {
		return err
	}

	existing, err := s.repo.GetSchedule(ctx, providerID)
	if err != nil {
		s.logger.Error("ошибка получения расписания", zap.Int64("providerId", providerID), zap.Error(err))
		return errors.New("ошибка сохранения расписания")
	}

	schedule := domain.ProviderSchedule{
		ProviderID: providerID,
		Week:       dto.Week,
		UpdatedAt:  time.Now(),
	}
	if existing != nil {
		schedule.BlockedPeriods = existing.BlockedPeriods
	}

	if err := s.repo.SaveSchedule(ctx, schedule); err != nil {
		s.logger.Error("ошибка сохранения расписания", zap.Int64("providerId", providerID), zap.Error(err))
		return errors.New("ошибка сохранения расписания")
	}

	if s.drafts != nil {
		if err := s.drafts.DeleteScheduleDraft(ctx, providerID); err != nil {
			s.logger.Warn("ошибка удаления черновика расписания", zap.Int64("providerId", providerID), zap.Error(err))
		}
	}

	return s.Publish(ctx, providerID, time.Now())
}

func (s *AvailabilityServiceImpl) AddBlockedPeriod(ctx context.Context, providerID int64, dto domain.AddBlockedPeriodDTO) error {
	period := domain.BlockedPeriod{
		Start:  dto.Start,
		End:    dto.End,
		Reason: dto.Reason,
	}
	if err := period.Validate(); err != nil {
		return err
	}

	schedule, err := s.repo.GetSchedule(ctx, providerID)
	if err != nil {
		s.logger.Error("ошибка получения расписания", zap.Int64("providerId", providerID), zap.Error(err))
		return errors.New("ошибка добавления заблокированного периода")
	}
	if schedule == nil {
		schedule = &domain.ProviderSchedule{
			ProviderID: providerID,
			Week:       domain.DefaultWeekSchedule(),
		}
	}

	schedule.BlockedPeriods = append(schedule.BlockedPeriods, period)
	schedule.UpdatedAt = time.Now()

	if err := s.repo.SaveSchedule(ctx, *schedule); err != nil {
		s.logger.Error("ошибка сохранения расписания", zap.Int64("providerId", providerID), zap.Error(err))
		return errors.New("ошибка добавления заблокированного периода")
	}

	return s.Publish(ctx, providerID, time.Now())
}

func (s *AvailabilityServiceImpl) DeleteBlockedPeriod(ctx context.Context, providerID int64, index int) error {
	schedule, err := s.repo.GetSchedule(ctx, providerID)
	if err != nil {
		s.logger.Error("ошибка получения расписания", zap.Int64("providerId", providerID), zap.Error(err))
		return errors.New("ошибка удаления заблокированного периода")
	}
	if schedule == nil || index < 0 || index >= len(schedule.BlockedPeriods) {
		return errors.New("заблокированный период не найден")
	}

	schedule.BlockedPeriods = append(schedule.BlockedPeriods[:index], schedule.BlockedPeriods[index+1:]...)
	schedule.UpdatedAt = time.Now()

	if err := s.repo.SaveSchedule(ctx, *schedule); err != nil {
		s.logger.Error("ошибка сохранения расписания", zap.Int64("providerId", providerID), zap.Error(err))
		return errors.New("ошибка удаления заблокированного периода")
	}

	return s.Publish(ctx, providerID, time.Now())
}

// Publish пересобирает слоты мастера начиная с завтрашнего дня относительно
// referenceDate. Сегодняшние и прошлые слоты не трогаются. Старые будущие
// слоты удаляются одним запросом, новые вставляются пачками последовательно;
// при первой неудачной пачке публикация прерывается. Отката нет: повторная
// публикация с тем же шаблоном приводит данные в порядок.
func (s *AvailabilityServiceImpl) Publish(ctx context.Context, providerID int64, referenceDate time.Time) error {
	schedule, err := s.repo.GetSchedule(ctx, providerID)
	if err != nil {
		s.logger.Error("ошибка получения расписания", zap.Int64("providerId", providerID), zap.Error(err))
		return errors.New("ошибка публикации расписания")
	}

	week := domain.DefaultWeekSchedule()
	var blocked []domain.BlockedPeriod
	if schedule != nil {
		week = schedule.Week
		blocked = schedule.BlockedPeriods
	}

	y, m, d := referenceDate.Date()
	startDate := time.Date(y, m, d, 0, 0, 0, 0, referenceDate.Location()).AddDate(0, 0, 1)
	cutoff := startDate.Format(domain.DateLayout)

	slots := domain.GenerateSlots(week, startDate, domain.SlotWindowDays, domain.SlotDurationMin)
	slots = filterBlocked(slots, blocked)
	for i := range slots {
		slots[i].ProviderID = providerID
	}

	if err := s.repo.DeleteSlotsFrom(ctx, providerID, cutoff); err != nil {
		s.logger.Error("ошибка удаления слотов", zap.Int64("providerId", providerID), zap.Error(err))
		return errors.New("ошибка публикации расписания")
	}

	for start := 0; start < len(slots); start += publishBatchSize {
		end := start + publishBatchSize
		if end > len(slots) {
			end = len(slots)
		}

		if err := s.repo.InsertSlots(ctx, slots[start:end]); err != nil {
			s.logger.Error("ошибка вставки слотов",
				zap.Int64("providerId", providerID),
				zap.Int("offset", start),
				zap.Error(err),
			)
			return fmt.Errorf("ошибка публикации расписания: %w", err)
		}
	}

	s.logger.Info("расписание опубликовано",
		zap.Int64("providerId", providerID),
		zap.String("cutoff", cutoff),
		zap.Int("slots", len(slots)),
	)

	return nil
}

// filterBlocked убирает слоты на даты, попавшие в заблокированные периоды.
// Границы периодов включительные, сравнение строк YYYY-MM-DD лексикографическое.
func filterBlocked(slots []domain.AvailabilitySlot, blocked []domain.BlockedPeriod) []domain.AvailabilitySlot {
	if len(blocked) == 0 {
		return slots
	}

	filtered := slots[:0]
	for _, slot := range slots {
		inBlocked := false
		for _, period := range blocked {
			if slot.Date >= period.Start && slot.Date <= period.End {
				inBlocked = true
				break
			}
		}
		if !inBlocked {
			filtered = append(filtered, slot)
		}
	}

	return filtered
}

// MonthAvailability собирает календарь месяца для клиента: по каждой дате
// с опубликованными слотами возвращаются интервалы, а даты с активными
// бронями помечаются недоступными. Даты без опубликованных слотов в
// календарь не попадают, даже если на них есть брони.
func (s *AvailabilityServiceImpl) MonthAvailability(ctx context.Context, providerID int64, year int, month time.Month) (map[string]domain.DayAvailability, error) {
	provider, err := s.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		s.logger.Error("ошибка получения мастера", zap.Int64("providerId", providerID), zap.Error(err))
		return nil, errors.New("ошибка получения доступности")
	}
	if provider == nil {
		return nil, errors.New("мастер не найден")
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	fromDate := first.Format(domain.DateLayout)
	toDate := last.Format(domain.DateLayout)

	slots, err := s.repo.ListSlotsByRange(ctx, providerID, fromDate, toDate)
	if err != nil {
		s.logger.Error("ошибка получения слотов", zap.Int64("providerId", providerID), zap.Error(err))
		return nil, errors.New("ошибка получения доступности")
	}

	blockedDates, err := s.bookingRepo.ListBlockedDates(ctx, providerID, fromDate, toDate)
	if err != nil {
		s.logger.Error("ошибка получения занятых дат", zap.Int64("providerId", providerID), zap.Error(err))
		return nil, errors.New("ошибка получения доступности")
	}

	days := make(map[string]domain.DayAvailability)
	for _, slot := range slots {
		day := days[slot.Date]
		day.IsAvailable = true
		day.Slots = append(day.Slots, domain.SlotInterval{
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
		days[slot.Date] = day
	}

	for _, date := range blockedDates {
		day, ok := days[date]
		if !ok {
			continue
		}
		day.IsAvailable = false
		days[date] = day
	}

	return days, nil
}
