package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"glow/internal/domain"
	"glow/internal/repository"
	"glow/internal/storage"
)

type ProviderServiceImpl struct {
	repo        repository.ProviderRepository
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage
	logger      *zap.Logger
}

func NewProviderService(
	repo repository.ProviderRepository,
	userRepo repository.UserRepository,
	fileStorage storage.FileStorage,
	logger *zap.Logger,
) *ProviderServiceImpl {
	return &ProviderServiceImpl{
		repo:        repo,
		userRepo:    userRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

func (s *ProviderServiceImpl) Create(ctx context.Context, userID int64, dto domain.CreateProviderDTO) (int64, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || user == nil {
		s.logger.Error("ошибка получения пользователя", zap.Int64("userId", userID), zap.Error(err))
		return 0, errors.New("пользователь не найден")
	}

	if user.Role != domain.UserRoleProvider {
		return 0, errors.New("профиль мастера доступен только пользователям с ролью provider")
	}

	existing, err := s.repo.GetByUserID(ctx, userID)
	if err == nil && existing != nil {
		return 0, errors.New("профиль мастера уже существует")
	}

	id, err := s.repo.Create(ctx, userID, dto)
	if err != nil {
		s.logger.Error("ошибка создания профиля мастера", zap.Int64("userId", userID), zap.Error(err))
		return 0, errors.New("ошибка создания профиля мастера")
	}

	return id, nil
}

func (s *ProviderServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	provider, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения мастера", zap.Int64("providerId", id), zap.Error(err))
		return nil, errors.New("ошибка получения мастера")
	}
	if provider == nil {
		return nil, errors.New("мастер не найден")
	}

	portfolio, err := s.repo.ListPortfolio(ctx, id)
	if err != nil {
		s.logger.Warn("ошибка получения портфолио", zap.Int64("providerId", id), zap.Error(err))
	} else {
		provider.Portfolio = portfolio
	}

	return provider, nil
}

func (s *ProviderServiceImpl) GetByUserID(ctx context.Context, userID int64) (*domain.Provider, error) {
	provider, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("ошибка получения мастера", zap.Int64("userId", userID), zap.Error(err))
		return nil, errors.New("ошибка получения мастера")
	}
	if provider == nil {
		return nil, errors.New("мастер не найден")
	}
	return provider, nil
}

func (s *ProviderServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateProviderDTO) error {
	err := s.repo.Update(ctx, id, dto)
	if err != nil {
		s.logger.Error("ошибка обновления профиля мастера", zap.Int64("providerId", id), zap.Error(err))
		return errors.New("ошибка обновления профиля мастера")
	}
	return nil
}

func (s *ProviderServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("ошибка удаления профиля мастера", zap.Int64("providerId", id), zap.Error(err))
		return errors.New("ошибка удаления профиля мастера")
	}
	return nil
}

func (s *ProviderServiceImpl) List(ctx context.Context, filter domain.ProviderFilter) ([]domain.Provider, int, error) {
	providers, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка мастеров", zap.Error(err))
		return nil, 0, errors.New("ошибка получения списка мастеров")
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения количества мастеров", zap.Error(err))
		return nil, 0, errors.New("ошибка получения списка мастеров")
	}

	return providers, total, nil
}

func (s *ProviderServiceImpl) UploadAvatar(ctx context.Context, id int64, photo []byte, filename string) (string, error) {
	provider, err := s.repo.GetByID(ctx, id)
	if err != nil || provider == nil {
		return "", errors.New("мастер не найден")
	}

	url, err := s.fileStorage.UploadFile(ctx, storage.PrefixAvatars, photo, filename)
	if err != nil {
		s.logger.Error("ошибка загрузки аватара", zap.Int64("providerId", id), zap.Error(err))
		return "", errors.New("ошибка загрузки аватара")
	}

	if provider.AvatarURL != "" {
		if err := s.fileStorage.DeleteFile(ctx, provider.AvatarURL); err != nil {
			s.logger.Warn("ошибка удаления старого аватара", zap.Error(err))
		}
	}

	err = s.repo.UpdateAvatar(ctx, id, url)
	if err != nil {
		s.logger.Error("ошибка сохранения аватара", zap.Int64("providerId", id), zap.Error(err))
		return "", errors.New("ошибка сохранения аватара")
	}

	return url, nil
}

func (s *ProviderServiceImpl) AddPortfolioItem(ctx context.Context, providerID int64, dto domain.AddPortfolioItemDTO, filename string) (int64, error) {
	provider, err := s.repo.GetByID(ctx, providerID)
	if err != nil || provider == nil {
		return 0, errors.New("мастер не найден")
	}

	url, err := s.fileStorage.UploadFile(ctx, storage.PrefixPortfolio, dto.Image, filename)
	if err != nil {
		s.logger.Error("ошибка загрузки фото в портфолио", zap.Int64("providerId", providerID), zap.Error(err))
		return 0, errors.New("ошибка загрузки фото")
	}

	id, err := s.repo.AddPortfolioItem(ctx, providerID, url, dto.Caption)
	if err != nil {
		s.logger.Error("ошибка сохранения фото в портфолио", zap.Int64("providerId", providerID), zap.Error(err))
		return 0, errors.New("ошибка сохранения фото")
	}

	return id, nil
}

func (s *ProviderServiceImpl) DeletePortfolioItem(ctx context.Context, providerID, itemID int64) error {
	item, err := s.repo.GetPortfolioItem(ctx, itemID)
	if err != nil {
		s.logger.Error("ошибка получения фото портфолио", zap.Int64("itemId", itemID), zap.Error(err))
		return errors.New("ошибка удаления фото")
	}
	if item == nil || item.ProviderID != providerID {
		return errors.New("фото не найдено")
	}

	if err := s.fileStorage.DeleteFile(ctx, item.ImageURL); err != nil {
		s.logger.Warn("ошибка удаления файла портфолио", zap.Error(err))
	}

	err = s.repo.DeletePortfolioItem(ctx, itemID)
	if err != nil {
		s.logger.Error("ошибка удаления фото портфолио", zap.Int64("itemId", itemID), zap.Error(err))
		return errors.New("ошибка удаления фото")
	}

	return nil
}

func (s *ProviderServiceImpl) ListPortfolio(ctx context.Context, providerID int64) ([]domain.PortfolioItem, error) {
	items, err := s.repo.ListPortfolio(ctx, providerID)
	if err != nil {
		s.logger.Error("ошибка получения портфолио", zap.Int64("providerId", providerID), zap.Error(err))
		return nil, errors.New("ошибка получения портфолио")
	}
	return items, nil
}
