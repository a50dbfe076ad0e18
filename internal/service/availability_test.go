package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"glow/internal/domain"
)

type fakeAvailabilityRepo struct {
	schedule    *domain.ProviderSchedule
	scheduleErr error
	deleteErr   error
	rangeSlots  []domain.AvailabilitySlot

	// номер пачки InsertSlots, на которой вернуть ошибку; -1 означает без ошибок
	failInsertAt int

	calls       []string
	deletedFrom string
	inserted    [][]domain.AvailabilitySlot
}

func newFakeAvailabilityRepo(schedule *domain.ProviderSchedule) *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{schedule: schedule, failInsertAt: -1}
}

func (r *fakeAvailabilityRepo) GetSchedule(ctx context.Context, providerID int64) (*domain.ProviderSchedule, error) {
	r.calls = append(r.calls, "GetSchedule")
	return r.schedule, r.scheduleErr
}

func (r *fakeAvailabilityRepo) SaveSchedule(ctx context.Context, schedule domain.ProviderSchedule) error {
	r.calls = append(r.calls, "SaveSchedule")
	r.schedule = &schedule
	return nil
}

func (r *fakeAvailabilityRepo) DeleteSlotsFrom(ctx context.Context, providerID int64, fromDate string) error {
	r.calls = append(r.calls, "DeleteSlotsFrom")
	r.deletedFrom = fromDate
	return r.deleteErr
}

func (r *fakeAvailabilityRepo) InsertSlots(ctx context.Context, slots []domain.AvailabilitySlot) error {
	r.calls = append(r.calls, "InsertSlots")
	if r.failInsertAt >= 0 && len(r.inserted) == r.failInsertAt {
		return errors.New("insert failed")
	}
	batch := make([]domain.AvailabilitySlot, len(slots))
	copy(batch, slots)
	r.inserted = append(r.inserted, batch)
	return nil
}

func (r *fakeAvailabilityRepo) ListSlotsByRange(ctx context.Context, providerID int64, fromDate, toDate string) ([]domain.AvailabilitySlot, error) {
	return r.rangeSlots, nil
}

func (r *fakeAvailabilityRepo) SlotExists(ctx context.Context, providerID int64, date, startTime string) (bool, error) {
	return false, nil
}

func (r *fakeAvailabilityRepo) insertedSlots() []domain.AvailabilitySlot {
	var all []domain.AvailabilitySlot
	for _, batch := range r.inserted {
		all = append(all, batch...)
	}
	return all
}

type fakeBookingRepo struct {
	blockedDates []string
}

func (r *fakeBookingRepo) Create(ctx context.Context, clientID int64, booking domain.CreateBookingDTO) (int64, error) {
	return 0, nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return nil, nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return nil
}

func (r *fakeBookingRepo) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	return nil, nil
}

func (r *fakeBookingRepo) CountByFilter(ctx context.Context, filter domain.BookingFilter) (int, error) {
	return 0, nil
}

func (r *fakeBookingRepo) ListBlockedDates(ctx context.Context, providerID int64, fromDate, toDate string) ([]string, error) {
	return r.blockedDates, nil
}

type fakeProviderRepo struct {
	provider *domain.Provider
}

func (r *fakeProviderRepo) Create(ctx context.Context, userID int64, provider domain.CreateProviderDTO) (int64, error) {
	return 0, nil
}

func (r *fakeProviderRepo) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	return r.provider, nil
}

func (r *fakeProviderRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Provider, error) {
	return r.provider, nil
}

func (r *fakeProviderRepo) Update(ctx context.Context, id int64, provider domain.UpdateProviderDTO) error {
	return nil
}

func (r *fakeProviderRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

func (r *fakeProviderRepo) List(ctx context.Context, filter domain.ProviderFilter) ([]domain.Provider, error) {
	return nil, nil
}

func (r *fakeProviderRepo) CountByFilter(ctx context.Context, filter domain.ProviderFilter) (int, error) {
	return 0, nil
}

func (r *fakeProviderRepo) UpdateRating(ctx context.Context, id int64, rating float64, reviewsCount int) error {
	return nil
}

func (r *fakeProviderRepo) UpdateAvatar(ctx context.Context, id int64, avatarURL string) error {
	return nil
}

func (r *fakeProviderRepo) AddPortfolioItem(ctx context.Context, providerID int64, imageURL, caption string) (int64, error) {
	return 0, nil
}

func (r *fakeProviderRepo) GetPortfolioItem(ctx context.Context, id int64) (*domain.PortfolioItem, error) {
	return nil, nil
}

func (r *fakeProviderRepo) DeletePortfolioItem(ctx context.Context, id int64) error {
	return nil
}

func (r *fakeProviderRepo) ListPortfolio(ctx context.Context, providerID int64) ([]domain.PortfolioItem, error) {
	return nil, nil
}

type fakeDraftCache struct {
	draft   *domain.WeekSchedule
	getErr  error
	saved   *domain.WeekSchedule
	deleted bool
}

func (c *fakeDraftCache) GetScheduleDraft(ctx context.Context, providerID int64) (*domain.WeekSchedule, error) {
	return c.draft, c.getErr
}

func (c *fakeDraftCache) SaveScheduleDraft(ctx context.Context, providerID int64, week domain.WeekSchedule) error {
	c.saved = &week
	return nil
}

func (c *fakeDraftCache) DeleteScheduleDraft(ctx context.Context, providerID int64) error {
	c.deleted = true
	return nil
}

func newTestService(repo *fakeAvailabilityRepo, booking *fakeBookingRepo, drafts *fakeDraftCache) *AvailabilityServiceImpl {
	if booking == nil {
		booking = &fakeBookingRepo{}
	}
	providers := &fakeProviderRepo{provider: &domain.Provider{ID: 7, UserID: 70}}
	svc := NewAvailabilityService(repo, providers, booking, nil, zap.NewNop())
	if drafts != nil {
		svc.drafts = drafts
	}
	return svc
}

// Вторник.
var refDate = time.Date(2025, 6, 3, 15, 42, 0, 0, time.UTC)

func TestPublish_DeleteBeforeInsert(t *testing.T) {
	repo := newFakeAvailabilityRepo(&domain.ProviderSchedule{
		ProviderID: 7,
		Week:       domain.DefaultWeekSchedule(),
	})
	svc := newTestService(repo, nil, nil)

	if err := svc.Publish(context.Background(), 7, refDate); err != nil {
		t.Fatalf("неожиданная ошибка публикации: %v", err)
	}

	if repo.deletedFrom != "2025-06-04" {
		t.Errorf("слоты удалены начиная с %q, ожидалось 2025-06-04", repo.deletedFrom)
	}

	deleteIdx, firstInsertIdx := -1, -1
	for i, call := range repo.calls {
		switch call {
		case "DeleteSlotsFrom":
			deleteIdx = i
		case "InsertSlots":
			if firstInsertIdx == -1 {
				firstInsertIdx = i
			}
		}
	}
	if deleteIdx == -1 || firstInsertIdx == -1 || deleteIdx > firstInsertIdx {
		t.Errorf("удаление должно идти до вставки, порядок вызовов: %v", repo.calls)
	}

	for _, slot := range repo.insertedSlots() {
		if slot.ProviderID != 7 {
			t.Fatalf("слот без ID мастера: %+v", slot)
		}
		if slot.Date < "2025-06-04" {
			t.Fatalf("вставлен слот раньше завтрашнего дня: %s", slot.Date)
		}
	}
}

func TestPublish_DeleteFailureSkipsInserts(t *testing.T) {
	repo := newFakeAvailabilityRepo(&domain.ProviderSchedule{
		ProviderID: 7,
		Week:       domain.DefaultWeekSchedule(),
	})
	repo.deleteErr = errors.New("delete failed")
	svc := newTestService(repo, nil, nil)

	if err := svc.Publish(context.Background(), 7, refDate); err == nil {
		t.Fatal("ожидалась ошибка публикации")
	}
	if len(repo.inserted) != 0 {
		t.Errorf("вставка после неудачного удаления: %d пачек", len(repo.inserted))
	}
}

func TestPublish_BatchesSequentially(t *testing.T) {
	repo := newFakeAvailabilityRepo(&domain.ProviderSchedule{
		ProviderID: 7,
		Week:       domain.DefaultWeekSchedule(),
	})
	svc := newTestService(repo, nil, nil)

	if err := svc.Publish(context.Background(), 7, refDate); err != nil {
		t.Fatalf("неожиданная ошибка публикации: %v", err)
	}

	startDate := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	want := len(domain.GenerateSlots(domain.DefaultWeekSchedule(), startDate, domain.SlotWindowDays, domain.SlotDurationMin))
	if want <= publishBatchSize {
		t.Fatalf("тестовое расписание должно давать больше одной пачки, получено %d слотов", want)
	}

	got := len(repo.insertedSlots())
	if got != want {
		t.Errorf("вставлено %d слотов, ожидалось %d", got, want)
	}

	for i, batch := range repo.inserted {
		if len(batch) > publishBatchSize {
			t.Errorf("пачка %d содержит %d слотов, предел %d", i, len(batch), publishBatchSize)
		}
		if i < len(repo.inserted)-1 && len(batch) != publishBatchSize {
			t.Errorf("неполная пачка %d в середине: %d слотов", i, len(batch))
		}
	}
}

func TestPublish_StopsAtFirstFailedBatch(t *testing.T) {
	repo := newFakeAvailabilityRepo(&domain.ProviderSchedule{
		ProviderID: 7,
		Week:       domain.DefaultWeekSchedule(),
	})
	repo.failInsertAt = 1
	svc := newTestService(repo, nil, nil)

	if err := svc.Publish(context.Background(), 7, refDate); err == nil {
		t.Fatal("ожидалась ошибка публикации")
	}

	insertCalls := 0
	for _, call := range repo.calls {
		if call == "InsertSlots" {
			insertCalls++
		}
	}
	if insertCalls != 2 {
		t.Errorf("после неудачной пачки вставка должна прерваться, вызовов InsertSlots: %d", insertCalls)
	}
	if len(repo.inserted) != 1 {
		t.Errorf("успешных пачек %d, ожидалась 1", len(repo.inserted))
	}
}

func TestPublish_RepublishIsIdempotent(t *testing.T) {
	repo := newFakeAvailabilityRepo(&domain.ProviderSchedule{
		ProviderID: 7,
		Week:       domain.DefaultWeekSchedule(),
	})
	svc := newTestService(repo, nil, nil)

	if err := svc.Publish(context.Background(), 7, refDate); err != nil {
		t.Fatalf("первая публикация: %v", err)
	}
	firstRun := repo.insertedSlots()

	repo.inserted = nil
	if err := svc.Publish(context.Background(), 7, refDate); err != nil {
		t.Fatalf("повторная публикация: %v", err)
	}
	secondRun := repo.insertedSlots()

	if len(firstRun) != len(secondRun) {
		t.Fatalf("повторная публикация дала %d слотов вместо %d", len(secondRun), len(firstRun))
	}
	for i := range firstRun {
		if firstRun[i] != secondRun[i] {
			t.Fatalf("слот %d отличается: %+v и %+v", i, firstRun[i], secondRun[i])
		}
	}
}

func TestPublish_BlockedPeriodsExcluded(t *testing.T) {
	repo := newFakeAvailabilityRepo(&domain.ProviderSchedule{
		ProviderID: 7,
		Week:       domain.DefaultWeekSchedule(),
		BlockedPeriods: []domain.BlockedPeriod{
			{Start: "2025-06-09", End: "2025-06-13", Reason: "отпуск"},
		},
	})
	svc := newTestService(repo, nil, nil)

	if err := svc.Publish(context.Background(), 7, refDate); err != nil {
		t.Fatalf("неожиданная ошибка публикации: %v", err)
	}

	dates := make(map[string]bool)
	for _, slot := range repo.insertedSlots() {
		dates[slot.Date] = true
	}

	for _, blocked := range []string{"2025-06-09", "2025-06-10", "2025-06-13"} {
		if dates[blocked] {
			t.Errorf("слоты на заблокированную дату %s", blocked)
		}
	}
	if !dates["2025-06-06"] || !dates["2025-06-16"] {
		t.Error("даты вокруг заблокированного периода должны остаться")
	}
}

func TestPublish_NilScheduleUsesDefaults(t *testing.T) {
	repo := newFakeAvailabilityRepo(nil)
	svc := newTestService(repo, nil, nil)

	if err := svc.Publish(context.Background(), 7, refDate); err != nil {
		t.Fatalf("неожиданная ошибка публикации: %v", err)
	}
	if len(repo.insertedSlots()) == 0 {
		t.Error("без сохранённого шаблона должны публиковаться слоты по умолчанию")
	}
}

func TestMonthAvailability(t *testing.T) {
	repo := newFakeAvailabilityRepo(nil)
	repo.rangeSlots = []domain.AvailabilitySlot{
		{ProviderID: 7, Date: "2025-06-10", StartTime: "09:00", EndTime: "09:30"},
		{ProviderID: 7, Date: "2025-06-10", StartTime: "09:30", EndTime: "10:00"},
		{ProviderID: 7, Date: "2025-06-11", StartTime: "09:00", EndTime: "09:30"},
	}
	booking := &fakeBookingRepo{blockedDates: []string{"2025-06-10"}}
	svc := newTestService(repo, booking, nil)

	days, err := svc.MonthAvailability(context.Background(), 7, 2025, time.June)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	booked, ok := days["2025-06-10"]
	if !ok {
		t.Fatal("дата с бронью отсутствует в календаре")
	}
	if booked.IsAvailable {
		t.Error("дата с активной бронью должна быть недоступна")
	}
	if len(booked.Slots) != 2 {
		t.Errorf("интервалы занятой даты должны сохраняться, получено %d", len(booked.Slots))
	}

	free, ok := days["2025-06-11"]
	if !ok {
		t.Fatal("свободная дата отсутствует в календаре")
	}
	if !free.IsAvailable {
		t.Error("дата со слотами без брони должна быть доступна")
	}
	if len(free.Slots) != 1 {
		t.Errorf("у свободной даты %d интервалов, ожидался 1", len(free.Slots))
	}

	if _, ok := days["2025-06-12"]; ok {
		t.Error("дата без слотов и броней не должна попадать в календарь")
	}
}

func TestMonthAvailability_BookedDateWithoutSlotsOmitted(t *testing.T) {
	repo := newFakeAvailabilityRepo(nil)
	repo.rangeSlots = []domain.AvailabilitySlot{
		{ProviderID: 7, Date: "2025-06-11", StartTime: "09:00", EndTime: "09:30"},
	}
	booking := &fakeBookingRepo{blockedDates: []string{"2025-06-20"}}
	svc := newTestService(repo, booking, nil)

	days, err := svc.MonthAvailability(context.Background(), 7, 2025, time.June)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if day, ok := days["2025-06-20"]; ok {
		t.Errorf("дата без опубликованных слотов попала в календарь: %+v", day)
	}
	if _, ok := days["2025-06-11"]; !ok {
		t.Error("дата со слотами отсутствует в календаре")
	}
}

func TestMonthAvailability_UnknownProvider(t *testing.T) {
	repo := newFakeAvailabilityRepo(nil)
	svc := NewAvailabilityService(repo, &fakeProviderRepo{}, &fakeBookingRepo{}, nil, zap.NewNop())

	if _, err := svc.MonthAvailability(context.Background(), 404, 2025, time.June); err == nil {
		t.Error("запрос календаря несуществующего мастера должен давать ошибку")
	}
}

func TestGetSchedule_DraftOverridesWeek(t *testing.T) {
	saved := domain.DefaultWeekSchedule()
	repo := newFakeAvailabilityRepo(&domain.ProviderSchedule{
		ProviderID:     7,
		Week:           saved,
		BlockedPeriods: []domain.BlockedPeriod{{Start: "2025-07-01", End: "2025-07-07"}},
	})

	draft := domain.DefaultWeekSchedule()
	draft["sunday"] = domain.DaySchedule{IsOpen: true, OpenTime: "10:00", CloseTime: "14:00"}
	drafts := &fakeDraftCache{draft: &draft}

	svc := newTestService(repo, nil, drafts)

	schedule, err := svc.GetSchedule(context.Background(), 7)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if !schedule.Week["sunday"].IsOpen {
		t.Error("черновик должен перекрывать сохранённую неделю")
	}
	if len(schedule.BlockedPeriods) != 1 {
		t.Error("заблокированные периоды не должны зависеть от черновика")
	}
}

func TestGetSchedule_DefaultsWhenMissing(t *testing.T) {
	repo := newFakeAvailabilityRepo(nil)
	svc := newTestService(repo, nil, nil)

	schedule, err := svc.GetSchedule(context.Background(), 7)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if schedule.ProviderID != 7 {
		t.Errorf("ID мастера %d, ожидалось 7", schedule.ProviderID)
	}
	if err := schedule.Week.Validate(); err != nil {
		t.Errorf("неделя по умолчанию невалидна: %v", err)
	}
}

func TestGetSchedule_DraftCacheErrorIgnored(t *testing.T) {
	repo := newFakeAvailabilityRepo(&domain.ProviderSchedule{
		ProviderID: 7,
		Week:       domain.DefaultWeekSchedule(),
	})
	drafts := &fakeDraftCache{getErr: errors.New("redis down")}
	svc := newTestService(repo, nil, drafts)

	schedule, err := svc.GetSchedule(context.Background(), 7)
	if err != nil {
		t.Fatalf("ошибка кэша не должна ломать чтение расписания: %v", err)
	}
	if schedule == nil {
		t.Fatal("расписание не возвращено")
	}
}

func TestDeleteBlockedPeriod_IndexOutOfRange(t *testing.T) {
	repo := newFakeAvailabilityRepo(&domain.ProviderSchedule{
		ProviderID:     7,
		Week:           domain.DefaultWeekSchedule(),
		BlockedPeriods: []domain.BlockedPeriod{{Start: "2025-07-01", End: "2025-07-07"}},
	})
	svc := newTestService(repo, nil, nil)

	if err := svc.DeleteBlockedPeriod(context.Background(), 7, 1); err == nil {
		t.Error("индекс за пределами списка должен давать ошибку")
	}
	if err := svc.DeleteBlockedPeriod(context.Background(), 7, -1); err == nil {
		t.Error("отрицательный индекс должен давать ошибку")
	}
	if len(repo.inserted) != 0 {
		t.Error("неудачное удаление периода не должно запускать публикацию")
	}
}

func TestSaveSchedule_PreservesBlockedPeriodsAndDropsDraft(t *testing.T) {
	repo := newFakeAvailabilityRepo(&domain.ProviderSchedule{
		ProviderID:     7,
		Week:           domain.DefaultWeekSchedule(),
		BlockedPeriods: []domain.BlockedPeriod{{Start: "2025-07-01", End: "2025-07-07"}},
	})
	drafts := &fakeDraftCache{}
	svc := newTestService(repo, nil, drafts)

	newWeek := domain.DefaultWeekSchedule()
	newWeek["sunday"] = domain.DaySchedule{IsOpen: true, OpenTime: "11:00", CloseTime: "15:00"}

	if err := svc.SaveSchedule(context.Background(), 7, domain.SaveScheduleDTO{Week: newWeek}); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if len(repo.schedule.BlockedPeriods) != 1 {
		t.Error("сохранение недели не должно стирать заблокированные периоды")
	}
	if !repo.schedule.Week["sunday"].IsOpen {
		t.Error("новая неделя не сохранена")
	}
	if !drafts.deleted {
		t.Error("черновик должен удаляться после сохранения")
	}
	if len(repo.inserted) == 0 {
		t.Error("после сохранения расписание должно публиковаться")
	}
}
