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

type InspirationRepo struct {
	db *pgxpool.Pool
}

func NewInspirationRepository(db *pgxpool.Pool) InspirationRepository {
	return &InspirationRepo{db: db}
}

func (r *InspirationRepo) Create(ctx context.Context, providerID int64, imageURL string, dto domain.CreateInspirationDTO) (int64, error) {
	var id int64

	tags := dto.Tags
	if tags == nil {
		tags = []string{}
	}

	query := `
		INSERT INTO inspirations (provider_id, image_url, caption, tags, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, providerID, imageURL, dto.Caption, tags, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания публикации: %w", err)
	}

	return id, nil
}

func (r *InspirationRepo) GetByID(ctx context.Context, id int64) (*domain.Inspiration, error) {
	query := `
		SELECT id, provider_id, image_url, caption, tags, created_at
		FROM inspirations
		WHERE id = $1
	`

	var inspiration domain.Inspiration
	err := r.db.QueryRow(ctx, query, id).Scan(
		&inspiration.ID,
		&inspiration.ProviderID,
		&inspiration.ImageURL,
		&inspiration.Caption,
		&inspiration.Tags,
		&inspiration.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения публикации: %w", err)
	}

	return &inspiration, nil
}

func (r *InspirationRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM inspirations WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления публикации: %w", err)
	}

	return nil
}

func inspirationFilterConditions(filter domain.InspirationFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if filter.ProviderID != nil {
		conditions = append(conditions, fmt.Sprintf("provider_id = $%d", argPos))
		args = append(args, *filter.ProviderID)
		argPos++
	}
	if filter.Tag != nil {
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(tags)", argPos))
		args = append(args, *filter.Tag)
		argPos++
	}

	if len(conditions) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *InspirationRepo) List(ctx context.Context, filter domain.InspirationFilter) ([]domain.Inspiration, error) {
	where, args := inspirationFilterConditions(filter)

	query := `
		SELECT id, provider_id, image_url, caption, tags, created_at
		FROM inspirations` + where

	argPos := len(args) + 1
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения ленты: %w", err)
	}
	defer rows.Close()

	var inspirations []domain.Inspiration
	for rows.Next() {
		var inspiration domain.Inspiration
		err := rows.Scan(
			&inspiration.ID,
			&inspiration.ProviderID,
			&inspiration.ImageURL,
			&inspiration.Caption,
			&inspiration.Tags,
			&inspiration.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки публикации: %w", err)
		}
		inspirations = append(inspirations, inspiration)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return inspirations, nil
}

func (r *InspirationRepo) CountByFilter(ctx context.Context, filter domain.InspirationFilter) (int, error) {
	where, args := inspirationFilterConditions(filter)

	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM inspirations`+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("ошибка получения количества публикаций: %w", err)
	}

	return total, nil
}
