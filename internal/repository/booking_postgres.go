package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"glow/internal/domain"
)

type BookingRepo struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) Create(ctx context.Context, clientID int64, booking domain.CreateBookingDTO) (int64, error) {
	var id int64

	query := `
		INSERT INTO bookings (client_id, provider_id, offering_id, booking_date, start_time, status, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRow(
		ctx,
		query,
		clientID,
		booking.ProviderID,
		booking.OfferingID,
		booking.BookingDate,
		booking.StartTime,
		domain.BookingStatusPending,
		booking.Comment,
		now,
		now,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания брони: %w", err)
	}

	return id, nil
}

func (r *BookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query := `
		SELECT id, client_id, provider_id, offering_id, TO_CHAR(booking_date, 'YYYY-MM-DD'),
		       start_time, status, comment, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var booking domain.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.ClientID,
		&booking.ProviderID,
		&booking.OfferingID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.Status,
		&booking.Comment,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения брони: %w", err)
	}

	return &booking, nil
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	query := `UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3`

	_, err := r.db.Exec(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления статуса брони: %w", err)
	}

	return nil
}

func bookingFilterConditions(filter domain.BookingFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if filter.ClientID != nil {
		conditions = append(conditions, fmt.Sprintf("client_id = $%d", argPos))
		args = append(args, *filter.ClientID)
		argPos++
	}
	if filter.ProviderID != nil {
		conditions = append(conditions, fmt.Sprintf("provider_id = $%d", argPos))
		args = append(args, *filter.ProviderID)
		argPos++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("booking_date >= $%d", argPos))
		args = append(args, *filter.StartDate)
		argPos++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("booking_date <= $%d", argPos))
		args = append(args, *filter.EndDate)
		argPos++
	}

	if len(conditions) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *BookingRepo) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	where, args := bookingFilterConditions(filter)

	query := `
		SELECT id, client_id, provider_id, offering_id, TO_CHAR(booking_date, 'YYYY-MM-DD'),
		       start_time, status, comment, created_at, updated_at
		FROM bookings` + where

	argPos := len(args) + 1
	query += fmt.Sprintf(" ORDER BY booking_date, start_time LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка броней: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var booking domain.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.ClientID,
			&booking.ProviderID,
			&booking.OfferingID,
			&booking.BookingDate,
			&booking.StartTime,
			&booking.Status,
			&booking.Comment,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки брони: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return bookings, nil
}

func (r *BookingRepo) CountByFilter(ctx context.Context, filter domain.BookingFilter) (int, error) {
	where, args := bookingFilterConditions(filter)

	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("ошибка получения количества броней: %w", err)
	}

	return total, nil
}

// ListBlockedDates возвращает отсортированные даты, на которые у мастера есть
// брони в статусах pending или confirmed. Такие даты закрыты для новых записей.
func (r *BookingRepo) ListBlockedDates(ctx context.Context, providerID int64, fromDate, toDate string) ([]string, error) {
	query := `
		SELECT DISTINCT TO_CHAR(booking_date, 'YYYY-MM-DD') AS date
		FROM bookings
		WHERE provider_id = $1
		  AND booking_date >= $2 AND booking_date <= $3
		  AND status IN ('pending', 'confirmed')
		ORDER BY date
	`

	rows, err := r.db.Query(ctx, query, providerID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения занятых дат: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("ошибка сканирования даты: %w", err)
		}
		dates = append(dates, date)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return dates, nil
}
