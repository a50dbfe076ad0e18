package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"glow/config"
	"glow/internal/cache"
	"glow/internal/domain"
	"glow/internal/repository"
	"glow/internal/storage"
)

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
	DraftCache  cache.DraftCache
}

type Services struct {
	User         UserService
	Auth         AuthService
	Provider     ProviderService
	Offering     OfferingService
	Availability AvailabilityService
	Booking      BookingService
	Review       ReviewService
	Message      MessageService
	Inspiration  InspirationService
}

func NewServices(deps Deps) *Services {
	return &Services{
		User:         NewUserService(deps.Repos.User, deps.FileStorage, deps.Logger),
		Auth:         NewAuthService(deps.Repos.Auth, deps.Repos.User, deps.Config.JWT, deps.Logger),
		Provider:     NewProviderService(deps.Repos.Provider, deps.Repos.User, deps.FileStorage, deps.Logger),
		Offering:     NewOfferingService(deps.Repos.Offering, deps.Repos.Provider, deps.Logger),
		Availability: NewAvailabilityService(deps.Repos.Availability, deps.Repos.Provider, deps.Repos.Booking, deps.DraftCache, deps.Logger),
		Booking:      NewBookingService(deps.Repos.Booking, deps.Repos.Availability, deps.Repos.Provider, deps.Repos.Offering, deps.Logger),
		Review:       NewReviewService(deps.Repos.Review, deps.Repos.Booking, deps.Repos.Provider, deps.Logger),
		Message:      NewMessageService(deps.Repos.Message, deps.Repos.Provider, deps.FileStorage, deps.Logger),
		Inspiration:  NewInspirationService(deps.Repos.Inspiration, deps.Repos.Provider, deps.FileStorage, deps.Logger),
	}
}

type UserService interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, dto domain.PasswordUpdateDTO) error
	UploadAvatar(ctx context.Context, id int64, photo []byte, filename string) (string, error)
	Delete(ctx context.Context, id int64) error
}

type AuthService interface {
	Register(ctx context.Context, dto domain.RegisterRequest) (int64, error)
	Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(ctx context.Context, token string) (int64, domain.UserRole, error)
}

type ProviderService interface {
	Create(ctx context.Context, userID int64, dto domain.CreateProviderDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Provider, error)
	Update(ctx context.Context, id int64, dto domain.UpdateProviderDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ProviderFilter) ([]domain.Provider, int, error)

	UploadAvatar(ctx context.Context, id int64, photo []byte, filename string) (string, error)
	AddPortfolioItem(ctx context.Context, providerID int64, dto domain.AddPortfolioItemDTO, filename string) (int64, error)
	DeletePortfolioItem(ctx context.Context, providerID, itemID int64) error
	ListPortfolio(ctx context.Context, providerID int64) ([]domain.PortfolioItem, error)
}

type OfferingService interface {
	Create(ctx context.Context, providerID int64, dto domain.CreateOfferingDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Offering, error)
	Update(ctx context.Context, providerID, id int64, dto domain.UpdateOfferingDTO) error
	Delete(ctx context.Context, providerID, id int64) error
	ListByProvider(ctx context.Context, providerID int64) ([]domain.Offering, error)
}

type AvailabilityService interface {
	GetSchedule(ctx context.Context, providerID int64) (*domain.ProviderSchedule, error)
	SaveSchedule(ctx context.Context, providerID int64, dto domain.SaveScheduleDTO) error
	SaveDraft(ctx context.Context, providerID int64, week domain.WeekSchedule) error

	AddBlockedPeriod(ctx context.Context, providerID int64, dto domain.AddBlockedPeriodDTO) error
	DeleteBlockedPeriod(ctx context.Context, providerID int64, index int) error

	Publish(ctx context.Context, providerID int64, referenceDate time.Time) error
	MonthAvailability(ctx context.Context, providerID int64, year int, month time.Month) (map[string]domain.DayAvailability, error)
}

type BookingService interface {
	Create(ctx context.Context, clientID int64, dto domain.CreateBookingDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id, actorID int64, role domain.UserRole, status domain.BookingStatus) error
	List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int, error)
}

type ReviewService interface {
	Create(ctx context.Context, clientID int64, dto domain.CreateReviewDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	Update(ctx context.Context, id, clientID int64, dto domain.UpdateReviewDTO) error
	Delete(ctx context.Context, id, clientID int64) error
	List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, int, error)
}

type MessageService interface {
	Send(ctx context.Context, senderID int64, dto domain.SendMessageDTO) (*domain.Message, error)
	ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error)
	ListMessages(ctx context.Context, userID int64, filter domain.MessageFilter) ([]domain.Message, error)
	MarkRead(ctx context.Context, userID, conversationID int64) error
}

type InspirationService interface {
	Create(ctx context.Context, userID int64, dto domain.CreateInspirationDTO, filename string) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Inspiration, error)
	Delete(ctx context.Context, userID, id int64) error
	List(ctx context.Context, filter domain.InspirationFilter) ([]domain.Inspiration, int, error)
}
