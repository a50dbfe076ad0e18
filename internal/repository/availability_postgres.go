package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"glow/internal/domain"
)

type AvailabilityRepo struct {
	db *pgxpool.Pool
}

func NewAvailabilityRepository(db *pgxpool.Pool) AvailabilityRepository {
	return &AvailabilityRepo{db: db}
}

func (r *AvailabilityRepo) GetSchedule(ctx context.Context, providerID int64) (*domain.ProviderSchedule, error) {
	query := `
		SELECT provider_id, week, blocked_periods, updated_at
		FROM weekly_schedules
		WHERE provider_id = $1
	`

	var schedule domain.ProviderSchedule
	var weekJSON, blockedJSON []byte

	err := r.db.QueryRow(ctx, query, providerID).Scan(
		&schedule.ProviderID,
		&weekJSON,
		&blockedJSON,
		&schedule.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения расписания: %w", err)
	}

	if err := json.Unmarshal(weekJSON, &schedule.Week); err != nil {
		return nil, fmt.Errorf("ошибка десериализации недельного шаблона: %w", err)
	}
	if err := json.Unmarshal(blockedJSON, &schedule.BlockedPeriods); err != nil {
		return nil, fmt.Errorf("ошибка десериализации заблокированных периодов: %w", err)
	}

	return &schedule, nil
}

func (r *AvailabilityRepo) SaveSchedule(ctx context.Context, schedule domain.ProviderSchedule) error {
	weekJSON, err := json.Marshal(schedule.Week)
	if err != nil {
		return fmt.Errorf("ошибка сериализации недельного шаблона: %w", err)
	}

	if schedule.BlockedPeriods == nil {
		schedule.BlockedPeriods = []domain.BlockedPeriod{}
	}
	blockedJSON, err := json.Marshal(schedule.BlockedPeriods)
	if err != nil {
		return fmt.Errorf("ошибка сериализации заблокированных периодов: %w", err)
	}

	query := `
		INSERT INTO weekly_schedules (provider_id, week, blocked_periods, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (provider_id) DO UPDATE
		SET week = EXCLUDED.week,
		    blocked_periods = EXCLUDED.blocked_periods,
		    updated_at = EXCLUDED.updated_at
	`

	_, err = r.db.Exec(ctx, query, schedule.ProviderID, weekJSON, blockedJSON, schedule.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка сохранения расписания: %w", err)
	}

	return nil
}

// DeleteSlotsFrom удаляет слоты мастера начиная с даты fromDate включительно.
// Слоты с датой раньше fromDate не затрагиваются — история сохраняется.
func (r *AvailabilityRepo) DeleteSlotsFrom(ctx context.Context, providerID int64, fromDate string) error {
	query := `DELETE FROM availability_slots WHERE provider_id = $1 AND date >= $2`

	_, err := r.db.Exec(ctx, query, providerID, fromDate)
	if err != nil {
		return fmt.Errorf("ошибка удаления слотов: %w", err)
	}

	return nil
}

func (r *AvailabilityRepo) InsertSlots(ctx context.Context, slots []domain.AvailabilitySlot) error {
	if len(slots) == 0 {
		return nil
	}

	valueStrings := make([]string, 0, len(slots))
	args := make([]interface{}, 0, len(slots)*4)
	argPos := 1

	for _, slot := range slots {
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d, $%d, $%d, $%d)", argPos, argPos+1, argPos+2, argPos+3))
		args = append(args, slot.ProviderID, slot.Date, slot.StartTime, slot.EndTime)
		argPos += 4
	}

	query := `
		INSERT INTO availability_slots (provider_id, date, start_time, end_time)
		VALUES ` + strings.Join(valueStrings, ", ")

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка вставки слотов: %w", err)
	}

	return nil
}

func (r *AvailabilityRepo) ListSlotsByRange(ctx context.Context, providerID int64, fromDate, toDate string) ([]domain.AvailabilitySlot, error) {
	query := `
		SELECT id, provider_id, TO_CHAR(date, 'YYYY-MM-DD'), start_time, end_time, created_at
		FROM availability_slots
		WHERE provider_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date, start_time
	`

	rows, err := r.db.Query(ctx, query, providerID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения слотов: %w", err)
	}
	defer rows.Close()

	var slots []domain.AvailabilitySlot
	for rows.Next() {
		var slot domain.AvailabilitySlot
		err := rows.Scan(
			&slot.ID,
			&slot.ProviderID,
			&slot.Date,
			&slot.StartTime,
			&slot.EndTime,
			&slot.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки слота: %w", err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return slots, nil
}

func (r *AvailabilityRepo) SlotExists(ctx context.Context, providerID int64, date, startTime string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM availability_slots
			WHERE provider_id = $1 AND date = $2 AND start_time = $3
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, providerID, date, startTime).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки слота: %w", err)
	}

	return exists, nil
}
