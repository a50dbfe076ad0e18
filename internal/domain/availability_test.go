package domain

import (
	"testing"
	"time"
)

// Понедельник.
var testStart = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func singleDayWeek(day string, schedule DaySchedule) WeekSchedule {
	week := WeekSchedule{
		"monday":    {},
		"tuesday":   {},
		"wednesday": {},
		"thursday":  {},
		"friday":    {},
		"saturday":  {},
		"sunday":    {},
	}
	week[day] = schedule
	return week
}

func TestWeekdayKey(t *testing.T) {
	expected := map[time.Weekday]string{
		time.Sunday:    "sunday",
		time.Monday:    "monday",
		time.Tuesday:   "tuesday",
		time.Wednesday: "wednesday",
		time.Thursday:  "thursday",
		time.Friday:    "friday",
		time.Saturday:  "saturday",
	}

	for weekday, want := range expected {
		got, err := WeekdayKey(weekday)
		if err != nil {
			t.Fatalf("WeekdayKey(%d): неожиданная ошибка %v", weekday, err)
		}
		if got != want {
			t.Errorf("WeekdayKey(%d) = %q, ожидалось %q", weekday, got, want)
		}
	}

	if _, err := WeekdayKey(time.Weekday(7)); err != ErrInvalidWeekday {
		t.Errorf("WeekdayKey(7): ожидалась ErrInvalidWeekday, получено %v", err)
	}
	if _, err := WeekdayKey(time.Weekday(-1)); err != ErrInvalidWeekday {
		t.Errorf("WeekdayKey(-1): ожидалась ErrInvalidWeekday, получено %v", err)
	}
}

func TestGenerateSlots_NoTrailingPartialSlot(t *testing.T) {
	tests := []struct {
		name      string
		open      string
		close     string
		wantTimes []string
	}{
		{
			name:      "ровно два слота плюс неполный хвост",
			open:      "09:00",
			close:     "10:15",
			wantTimes: []string{"09:00", "09:30"},
		},
		{
			name:      "начало не на границе получаса",
			open:      "09:45",
			close:     "11:00",
			wantTimes: []string{"09:45", "10:15"},
		},
		{
			name:      "окно короче слота",
			open:      "09:00",
			close:     "09:15",
			wantTimes: nil,
		},
		{
			name:      "окно ровно один слот",
			open:      "09:00",
			close:     "09:30",
			wantTimes: []string{"09:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			week := singleDayWeek("monday", DaySchedule{IsOpen: true, OpenTime: tt.open, CloseTime: tt.close})

			slots := GenerateSlots(week, testStart, 1, SlotDurationMin)
			if len(slots) != len(tt.wantTimes) {
				t.Fatalf("получено %d слотов, ожидалось %d", len(slots), len(tt.wantTimes))
			}

			for i, want := range tt.wantTimes {
				if slots[i].StartTime != want {
					t.Errorf("слот %d: начало %q, ожидалось %q", i, slots[i].StartTime, want)
				}

				startMin, _ := MinutesOfDay(slots[i].StartTime)
				if slots[i].EndTime != FormatMinutes(startMin+SlotDurationMin) {
					t.Errorf("слот %d: конец %q не соответствует длительности", i, slots[i].EndTime)
				}

				closeMin, _ := MinutesOfDay(tt.close)
				endMin, _ := MinutesOfDay(slots[i].EndTime)
				if endMin > closeMin {
					t.Errorf("слот %d: конец %q позже закрытия %q", i, slots[i].EndTime, tt.close)
				}
			}
		})
	}
}

func TestGenerateSlots_ClosedAndInvalidDays(t *testing.T) {
	tests := []struct {
		name string
		day  DaySchedule
	}{
		{"закрытый день", DaySchedule{IsOpen: false, OpenTime: "09:00", CloseTime: "18:00"}},
		{"пустое время открытия", DaySchedule{IsOpen: true, CloseTime: "18:00"}},
		{"пустое время закрытия", DaySchedule{IsOpen: true, OpenTime: "09:00"}},
		{"некорректное время", DaySchedule{IsOpen: true, OpenTime: "9 утра", CloseTime: "18:00"}},
		{"открытие позже закрытия", DaySchedule{IsOpen: true, OpenTime: "18:00", CloseTime: "09:00"}},
		{"открытие равно закрытию", DaySchedule{IsOpen: true, OpenTime: "09:00", CloseTime: "09:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			week := singleDayWeek("monday", tt.day)
			if slots := GenerateSlots(week, testStart, 7, SlotDurationMin); len(slots) != 0 {
				t.Errorf("получено %d слотов, ожидалось 0", len(slots))
			}
		})
	}
}

func TestGenerateSlots_WindowCoversEachDateOnce(t *testing.T) {
	slots := GenerateSlots(DefaultWeekSchedule(), testStart, SlotWindowDays, SlotDurationMin)
	if len(slots) == 0 {
		t.Fatal("слоты не сгенерированы")
	}

	dates := make(map[string]bool)
	for _, slot := range slots {
		dates[slot.Date] = true
	}

	// По умолчанию воскресенье закрыто: 90 дней от понедельника содержат 12
	// полных недель и 6 дополнительных дней без воскресенья.
	wantDates := SlotWindowDays - 12
	if len(dates) != wantDates {
		t.Errorf("слоты на %d дат, ожидалось %d", len(dates), wantDates)
	}

	first := slots[0].Date
	last := slots[len(slots)-1].Date
	if first != testStart.Format(DateLayout) {
		t.Errorf("первая дата %q, ожидалась %q", first, testStart.Format(DateLayout))
	}
	if maxDate := testStart.AddDate(0, 0, SlotWindowDays-1).Format(DateLayout); last > maxDate {
		t.Errorf("последняя дата %q за пределами окна %q", last, maxDate)
	}
}

func TestGenerateSlots_SortedWithoutDuplicates(t *testing.T) {
	slots := GenerateSlots(DefaultWeekSchedule(), testStart, 14, SlotDurationMin)

	seen := make(map[string]bool)
	for i, slot := range slots {
		key := slot.Date + " " + slot.StartTime
		if seen[key] {
			t.Fatalf("дубликат слота %s", key)
		}
		seen[key] = true

		if i == 0 {
			continue
		}
		prev := slots[i-1]
		if slot.Date < prev.Date || (slot.Date == prev.Date && slot.StartTime <= prev.StartTime) {
			t.Fatalf("нарушен порядок: %s %s после %s %s", slot.Date, slot.StartTime, prev.Date, prev.StartTime)
		}
	}
}

func TestGenerateSlots_InvalidArguments(t *testing.T) {
	week := DefaultWeekSchedule()

	if slots := GenerateSlots(week, testStart, 0, SlotDurationMin); slots != nil {
		t.Errorf("windowDays=0: ожидался nil, получено %d слотов", len(slots))
	}
	if slots := GenerateSlots(week, testStart, SlotWindowDays, 0); slots != nil {
		t.Errorf("slotMinutes=0: ожидался nil, получено %d слотов", len(slots))
	}
	if slots := GenerateSlots(nil, testStart, SlotWindowDays, SlotDurationMin); len(slots) != 0 {
		t.Errorf("пустая неделя: получено %d слотов", len(slots))
	}
}

func TestDefaultWeekSchedule(t *testing.T) {
	week := DefaultWeekSchedule()

	if err := week.Validate(); err != nil {
		t.Fatalf("расписание по умолчанию не проходит валидацию: %v", err)
	}

	if week["sunday"].IsOpen {
		t.Error("воскресенье должно быть закрыто")
	}
	if day := week["saturday"]; day.OpenTime != "09:00" || day.CloseTime != "13:00" {
		t.Errorf("суббота %s-%s, ожидалось 09:00-13:00", day.OpenTime, day.CloseTime)
	}
	if day := week["monday"]; day.OpenTime != "09:00" || day.CloseTime != "18:00" {
		t.Errorf("понедельник %s-%s, ожидалось 09:00-18:00", day.OpenTime, day.CloseTime)
	}
}

func TestWeekScheduleValidate(t *testing.T) {
	missing := DefaultWeekSchedule()
	delete(missing, "wednesday")
	if err := missing.Validate(); err == nil {
		t.Error("неполная неделя прошла валидацию")
	}

	badTime := DefaultWeekSchedule()
	badTime["monday"] = DaySchedule{IsOpen: true, OpenTime: "25:00", CloseTime: "18:00"}
	if err := badTime.Validate(); err == nil {
		t.Error("некорректное время прошло валидацию")
	}

	inverted := DefaultWeekSchedule()
	inverted["friday"] = DaySchedule{IsOpen: true, OpenTime: "18:00", CloseTime: "09:00"}
	if err := inverted.Validate(); err == nil {
		t.Error("открытие позже закрытия прошло валидацию")
	}

	closedNoTimes := DefaultWeekSchedule()
	closedNoTimes["monday"] = DaySchedule{IsOpen: false}
	if err := closedNoTimes.Validate(); err != nil {
		t.Errorf("закрытый день без времени не должен требовать часов: %v", err)
	}
}

func TestBlockedPeriodValidate(t *testing.T) {
	tests := []struct {
		name    string
		period  BlockedPeriod
		wantErr bool
	}{
		{"корректный период", BlockedPeriod{Start: "2025-07-01", End: "2025-07-14"}, false},
		{"один день", BlockedPeriod{Start: "2025-07-01", End: "2025-07-01"}, false},
		{"начало позже конца", BlockedPeriod{Start: "2025-07-14", End: "2025-07-01"}, true},
		{"кривая дата начала", BlockedPeriod{Start: "01.07.2025", End: "2025-07-14"}, true},
		{"кривая дата конца", BlockedPeriod{Start: "2025-07-01", End: "июль"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.period.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, ожидалась ошибка: %v", err, tt.wantErr)
			}
		})
	}
}

func TestMinutesOfDay(t *testing.T) {
	if m, ok := MinutesOfDay("09:30"); !ok || m != 570 {
		t.Errorf("MinutesOfDay(09:30) = %d, %v", m, ok)
	}
	if _, ok := MinutesOfDay("24:00"); ok {
		t.Error("MinutesOfDay(24:00) должно быть ошибкой")
	}
	if FormatMinutes(570) != "09:30" {
		t.Errorf("FormatMinutes(570) = %q", FormatMinutes(570))
	}
}
