package domain

import (
	"errors"
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	// Горизонт генерации слотов и длительность одного слота.
	SlotWindowDays  = 90
	SlotDurationMin = 30
)

// weekdayKeys индексируется значением time.Weekday (0 = воскресенье).
var weekdayKeys = [7]string{
	"sunday",
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
}

var ErrInvalidWeekday = errors.New("недопустимый номер дня недели")

func WeekdayKey(d time.Weekday) (string, error) {
	if d < 0 || int(d) >= len(weekdayKeys) {
		return "", ErrInvalidWeekday
	}
	return weekdayKeys[d], nil
}

type DaySchedule struct {
	IsOpen    bool   `json:"is_open"`
	OpenTime  string `json:"open_time,omitempty"`
	CloseTime string `json:"close_time,omitempty"`
}

// WeekSchedule — недельный шаблон работы мастера: ровно семь ключей
// monday..sunday, по одному DaySchedule на каждый.
type WeekSchedule map[string]DaySchedule

func DefaultWeekSchedule() WeekSchedule {
	return WeekSchedule{
		"monday":    {IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"},
		"tuesday":   {IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"},
		"wednesday": {IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"},
		"thursday":  {IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"},
		"friday":    {IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"},
		"saturday":  {IsOpen: true, OpenTime: "09:00", CloseTime: "13:00"},
		"sunday":    {IsOpen: false},
	}
}

func (ws WeekSchedule) Validate() error {
	if len(ws) != len(weekdayKeys) {
		return errors.New("расписание должно содержать все семь дней недели")
	}

	for _, key := range weekdayKeys {
		day, ok := ws[key]
		if !ok {
			return fmt.Errorf("в расписании отсутствует день %q", key)
		}

		if !day.IsOpen {
			continue
		}

		open, ok := MinutesOfDay(day.OpenTime)
		if !ok {
			return fmt.Errorf("неверное время открытия %q для дня %q", day.OpenTime, key)
		}

		closeAt, ok := MinutesOfDay(day.CloseTime)
		if !ok {
			return fmt.Errorf("неверное время закрытия %q для дня %q", day.CloseTime, key)
		}

		if open >= closeAt {
			return fmt.Errorf("время открытия должно быть раньше времени закрытия для дня %q", key)
		}
	}

	return nil
}

// BlockedPeriod — явное исключение из недельного шаблона (отпуск, выходной).
// Периоды хранятся отсортированным списком и могут пересекаться.
type BlockedPeriod struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Reason string `json:"reason,omitempty"`
}

func (p BlockedPeriod) Validate() error {
	if _, err := time.Parse(DateLayout, p.Start); err != nil {
		return errors.New("неверный формат даты начала, ожидается YYYY-MM-DD")
	}
	if _, err := time.Parse(DateLayout, p.End); err != nil {
		return errors.New("неверный формат даты окончания, ожидается YYYY-MM-DD")
	}
	if p.Start > p.End {
		return errors.New("дата начала не может быть позже даты окончания")
	}
	return nil
}

// ProviderSchedule — сохранённый шаблон мастера: неделя целиком плюс
// список заблокированных периодов. Сериализуется всегда целиком.
type ProviderSchedule struct {
	ProviderID     int64           `json:"provider_id"`
	Week           WeekSchedule    `json:"week"`
	BlockedPeriods []BlockedPeriod `json:"blocked_periods"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AvailabilitySlot — сгенерированный слот записи. Само существование строки
// означает доступность, отдельного флага нет.
type AvailabilitySlot struct {
	ID         int64     `json:"id"`
	ProviderID int64     `json:"provider_id"`
	Date       string    `json:"date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	CreatedAt  time.Time `json:"created_at"`
}

type SlotInterval struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type DayAvailability struct {
	IsAvailable bool           `json:"is_available"`
	Slots       []SlotInterval `json:"slots"`
}

type SaveScheduleDTO struct {
	Week WeekSchedule `json:"week" binding:"required"`
}

type AddBlockedPeriodDTO struct {
	Start  string `json:"start" binding:"required"`
	End    string `json:"end" binding:"required"`
	Reason string `json:"reason"`
}

// MinutesOfDay переводит строку HH:MM в минуты от начала суток.
func MinutesOfDay(s string) (int, bool) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// GenerateSlots разворачивает недельный шаблон в конкретные слоты на windowDays
// дней начиная со startDate. Каждая из windowDays дат рассматривается ровно один
// раз; закрытые и некорректно заполненные дни дают ноль слотов. Хвостовой
// неполный слот не выдаётся: слот попадает в результат только если его конец
// не позже времени закрытия. Результат отсортирован по (дата, время начала).
func GenerateSlots(week WeekSchedule, startDate time.Time, windowDays, slotMinutes int) []AvailabilitySlot {
	if windowDays <= 0 || slotMinutes <= 0 {
		return nil
	}

	var slots []AvailabilitySlot
	for i := 0; i < windowDays; i++ {
		date := startDate.AddDate(0, 0, i)

		key, err := WeekdayKey(date.Weekday())
		if err != nil {
			continue
		}

		day, ok := week[key]
		if !ok || !day.IsOpen || day.OpenTime == "" || day.CloseTime == "" {
			continue
		}

		open, ok := MinutesOfDay(day.OpenTime)
		if !ok {
			continue
		}
		closeAt, ok := MinutesOfDay(day.CloseTime)
		if !ok || open >= closeAt {
			continue
		}

		dateStr := date.Format(DateLayout)
		for t := open; t+slotMinutes <= closeAt; t += slotMinutes {
			slots = append(slots, AvailabilitySlot{
				Date:      dateStr,
				StartTime: FormatMinutes(t),
				EndTime:   FormatMinutes(t + slotMinutes),
			})
		}
	}

	return slots
}
