package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"glow/internal/domain"
)

type OfferingRepo struct {
	db *pgxpool.Pool
}

func NewOfferingRepository(db *pgxpool.Pool) OfferingRepository {
	return &OfferingRepo{db: db}
}

func (r *OfferingRepo) Create(ctx context.Context, providerID int64, offering domain.CreateOfferingDTO) (int64, error) {
	var id int64

	query := `
		INSERT INTO offerings (provider_id, name, description, price, duration_min, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, true, $6, $7)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRow(
		ctx,
		query,
		providerID,
		offering.Name,
		offering.Description,
		offering.Price,
		offering.DurationMin,
		now,
		now,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания услуги: %w", err)
	}

	return id, nil
}

func (r *OfferingRepo) GetByID(ctx context.Context, id int64) (*domain.Offering, error) {
	query := `
		SELECT id, provider_id, name, description, price, duration_min, is_active, created_at, updated_at
		FROM offerings
		WHERE id = $1
	`

	var offering domain.Offering
	err := r.db.QueryRow(ctx, query, id).Scan(
		&offering.ID,
		&offering.ProviderID,
		&offering.Name,
		&offering.Description,
		&offering.Price,
		&offering.DurationMin,
		&offering.IsActive,
		&offering.CreatedAt,
		&offering.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения услуги: %w", err)
	}

	return &offering, nil
}

func (r *OfferingRepo) Update(ctx context.Context, id int64, offering domain.UpdateOfferingDTO) error {
	query := `UPDATE offerings SET updated_at = $1`
	args := []interface{}{time.Now()}
	argPos := 2

	if offering.Name != nil {
		query += fmt.Sprintf(", name = $%d", argPos)
		args = append(args, *offering.Name)
		argPos++
	}
	if offering.Description != nil {
		query += fmt.Sprintf(", description = $%d", argPos)
		args = append(args, *offering.Description)
		argPos++
	}
	if offering.Price != nil {
		query += fmt.Sprintf(", price = $%d", argPos)
		args = append(args, *offering.Price)
		argPos++
	}
	if offering.DurationMin != nil {
		query += fmt.Sprintf(", duration_min = $%d", argPos)
		args = append(args, *offering.DurationMin)
		argPos++
	}
	if offering.IsActive != nil {
		query += fmt.Sprintf(", is_active = $%d", argPos)
		args = append(args, *offering.IsActive)
		argPos++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления услуги: %w", err)
	}

	return nil
}

func (r *OfferingRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM offerings WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления услуги: %w", err)
	}

	return nil
}

func (r *OfferingRepo) ListByProvider(ctx context.Context, providerID int64) ([]domain.Offering, error) {
	query := `
		SELECT id, provider_id, name, description, price, duration_min, is_active, created_at, updated_at
		FROM offerings
		WHERE provider_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, providerID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка услуг: %w", err)
	}
	defer rows.Close()

	var offerings []domain.Offering
	for rows.Next() {
		var offering domain.Offering
		err := rows.Scan(
			&offering.ID,
			&offering.ProviderID,
			&offering.Name,
			&offering.Description,
			&offering.Price,
			&offering.DurationMin,
			&offering.IsActive,
			&offering.CreatedAt,
			&offering.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки услуги: %w", err)
		}
		offerings = append(offerings, offering)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return offerings, nil
}
