package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"glow/internal/domain"
)

type ProviderRepo struct {
	db *pgxpool.Pool
}

func NewProviderRepository(db *pgxpool.Pool) ProviderRepository {
	return &ProviderRepo{db: db}
}

const providerColumns = `id, user_id, salon_name, bio, address, city, rating, reviews_count, is_verified, avatar_url, created_at, updated_at`

func scanProvider(row pgx.Row) (*domain.Provider, error) {
	var provider domain.Provider
	err := row.Scan(
		&provider.ID,
		&provider.UserID,
		&provider.SalonName,
		&provider.Bio,
		&provider.Address,
		&provider.City,
		&provider.Rating,
		&provider.ReviewsCount,
		&provider.IsVerified,
		&provider.AvatarURL,
		&provider.CreatedAt,
		&provider.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &provider, nil
}

func (r *ProviderRepo) Create(ctx context.Context, userID int64, provider domain.CreateProviderDTO) (int64, error) {
	var id int64

	query := `
		INSERT INTO providers (user_id, salon_name, bio, address, city, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRow(
		ctx,
		query,
		userID,
		provider.SalonName,
		provider.Bio,
		provider.Address,
		provider.City,
		now,
		now,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания профиля мастера: %w", err)
	}

	return id, nil
}

func (r *ProviderRepo) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers WHERE id = $1`

	provider, err := scanProvider(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения профиля мастера: %w", err)
	}

	return provider, nil
}

func (r *ProviderRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers WHERE user_id = $1`

	provider, err := scanProvider(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения профиля мастера: %w", err)
	}

	return provider, nil
}

func (r *ProviderRepo) Update(ctx context.Context, id int64, provider domain.UpdateProviderDTO) error {
	query := `UPDATE providers SET updated_at = $1`
	args := []interface{}{time.Now()}
	argPos := 2

	if provider.SalonName != nil {
		query += fmt.Sprintf(", salon_name = $%d", argPos)
		args = append(args, *provider.SalonName)
		argPos++
	}
	if provider.Bio != nil {
		query += fmt.Sprintf(", bio = $%d", argPos)
		args = append(args, *provider.Bio)
		argPos++
	}
	if provider.Address != nil {
		query += fmt.Sprintf(", address = $%d", argPos)
		args = append(args, *provider.Address)
		argPos++
	}
	if provider.City != nil {
		query += fmt.Sprintf(", city = $%d", argPos)
		args = append(args, *provider.City)
		argPos++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления профиля мастера: %w", err)
	}

	return nil
}

func (r *ProviderRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM providers WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления профиля мастера: %w", err)
	}

	return nil
}

func (r *ProviderRepo) List(ctx context.Context, filter domain.ProviderFilter) ([]domain.Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers WHERE 1=1`

	var args []interface{}
	argPos := 1

	if filter.City != nil {
		query += fmt.Sprintf(" AND city = $%d", argPos)
		args = append(args, *filter.City)
		argPos++
	}
	if filter.Search != nil {
		query += fmt.Sprintf(" AND salon_name ILIKE $%d", argPos)
		args = append(args, "%"+*filter.Search+"%")
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY rating DESC, id LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка мастеров: %w", err)
	}
	defer rows.Close()

	var providers []domain.Provider
	for rows.Next() {
		provider, err := scanProvider(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки мастера: %w", err)
		}
		providers = append(providers, *provider)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return providers, nil
}

func (r *ProviderRepo) CountByFilter(ctx context.Context, filter domain.ProviderFilter) (int, error) {
	query := `SELECT COUNT(*) FROM providers WHERE 1=1`

	var args []interface{}
	argPos := 1

	if filter.City != nil {
		query += fmt.Sprintf(" AND city = $%d", argPos)
		args = append(args, *filter.City)
		argPos++
	}
	if filter.Search != nil {
		query += fmt.Sprintf(" AND salon_name ILIKE $%d", argPos)
		args = append(args, "%"+*filter.Search+"%")
		argPos++
	}

	var total int
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("ошибка получения количества мастеров: %w", err)
	}

	return total, nil
}

func (r *ProviderRepo) UpdateRating(ctx context.Context, id int64, rating float64, reviewsCount int) error {
	query := `UPDATE providers SET rating = $1, reviews_count = $2, updated_at = $3 WHERE id = $4`

	_, err := r.db.Exec(ctx, query, rating, reviewsCount, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления рейтинга мастера: %w", err)
	}

	return nil
}

func (r *ProviderRepo) UpdateAvatar(ctx context.Context, id int64, avatarURL string) error {
	query := `UPDATE providers SET avatar_url = $1, updated_at = $2 WHERE id = $3`

	_, err := r.db.Exec(ctx, query, avatarURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления аватара мастера: %w", err)
	}

	return nil
}

func (r *ProviderRepo) AddPortfolioItem(ctx context.Context, providerID int64, imageURL, caption string) (int64, error) {
	var id int64

	query := `
		INSERT INTO portfolio_items (provider_id, image_url, caption, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, providerID, imageURL, caption, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка добавления работы в портфолио: %w", err)
	}

	return id, nil
}

func (r *ProviderRepo) GetPortfolioItem(ctx context.Context, id int64) (*domain.PortfolioItem, error) {
	query := `
		SELECT id, provider_id, image_url, caption, created_at
		FROM portfolio_items
		WHERE id = $1
	`

	var item domain.PortfolioItem
	err := r.db.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.ProviderID,
		&item.ImageURL,
		&item.Caption,
		&item.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения работы из портфолио: %w", err)
	}

	return &item, nil
}

func (r *ProviderRepo) DeletePortfolioItem(ctx context.Context, id int64) error {
	query := `DELETE FROM portfolio_items WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления работы из портфолио: %w", err)
	}

	return nil
}

func (r *ProviderRepo) ListPortfolio(ctx context.Context, providerID int64) ([]domain.PortfolioItem, error) {
	query := `
		SELECT id, provider_id, image_url, caption, created_at
		FROM portfolio_items
		WHERE provider_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, providerID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения портфолио: %w", err)
	}
	defer rows.Close()

	var items []domain.PortfolioItem
	for rows.Next() {
		var item domain.PortfolioItem
		err := rows.Scan(
			&item.ID,
			&item.ProviderID,
			&item.ImageURL,
			&item.Caption,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки портфолио: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return items, nil
}
