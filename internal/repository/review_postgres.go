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

type ReviewRepo struct {
	db *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) ReviewRepository {
	return &ReviewRepo{db: db}
}

func (r *ReviewRepo) Create(ctx context.Context, clientID int64, review domain.CreateReviewDTO) (int64, error) {
	var id int64

	query := `
		INSERT INTO reviews (client_id, provider_id, booking_id, rating, text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRow(
		ctx,
		query,
		clientID,
		review.ProviderID,
		review.BookingID,
		review.Rating,
		review.Text,
		now,
		now,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания отзыва: %w", err)
	}

	return id, nil
}

func (r *ReviewRepo) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	query := `
		SELECT id, client_id, provider_id, booking_id, rating, text, created_at, updated_at
		FROM reviews
		WHERE id = $1
	`

	var review domain.Review
	err := r.db.QueryRow(ctx, query, id).Scan(
		&review.ID,
		&review.ClientID,
		&review.ProviderID,
		&review.BookingID,
		&review.Rating,
		&review.Text,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения отзыва: %w", err)
	}

	return &review, nil
}

func (r *ReviewRepo) Update(ctx context.Context, id int64, dto domain.UpdateReviewDTO) error {
	query := `UPDATE reviews SET updated_at = $1`
	args := []interface{}{time.Now()}
	argPos := 2

	if dto.Rating != nil {
		query += fmt.Sprintf(", rating = $%d", argPos)
		args = append(args, *dto.Rating)
		argPos++
	}
	if dto.Text != nil {
		query += fmt.Sprintf(", text = $%d", argPos)
		args = append(args, *dto.Text)
		argPos++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления отзыва: %w", err)
	}

	return nil
}

func (r *ReviewRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM reviews WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления отзыва: %w", err)
	}

	return nil
}

func reviewFilterConditions(filter domain.ReviewFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if filter.ProviderID != nil {
		conditions = append(conditions, fmt.Sprintf("provider_id = $%d", argPos))
		args = append(args, *filter.ProviderID)
		argPos++
	}
	if filter.ClientID != nil {
		conditions = append(conditions, fmt.Sprintf("client_id = $%d", argPos))
		args = append(args, *filter.ClientID)
		argPos++
	}
	if filter.MinRating != nil {
		conditions = append(conditions, fmt.Sprintf("rating >= $%d", argPos))
		args = append(args, *filter.MinRating)
		argPos++
	}

	if len(conditions) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *ReviewRepo) List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error) {
	where, args := reviewFilterConditions(filter)

	query := `
		SELECT id, client_id, provider_id, booking_id, rating, text, created_at, updated_at
		FROM reviews` + where

	argPos := len(args) + 1
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка отзывов: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var review domain.Review
		err := rows.Scan(
			&review.ID,
			&review.ClientID,
			&review.ProviderID,
			&review.BookingID,
			&review.Rating,
			&review.Text,
			&review.CreatedAt,
			&review.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки отзыва: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return reviews, nil
}

func (r *ReviewRepo) CountByFilter(ctx context.Context, filter domain.ReviewFilter) (int, error) {
	where, args := reviewFilterConditions(filter)

	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews`+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("ошибка получения количества отзывов: %w", err)
	}

	return total, nil
}

func (r *ReviewRepo) AverageByProvider(ctx context.Context, providerID int64) (float64, int, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM reviews
		WHERE provider_id = $1
	`

	var avg float64
	var count int
	err := r.db.QueryRow(ctx, query, providerID).Scan(&avg, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("ошибка расчёта рейтинга: %w", err)
	}

	return avg, count, nil
}
