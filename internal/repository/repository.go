package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"glow/internal/domain"
)

type Repositories struct {
	User         UserRepository
	Auth         AuthRepository
	Provider     ProviderRepository
	Offering     OfferingRepository
	Availability AvailabilityRepository
	Booking      BookingRepository
	Review       ReviewRepository
	Message      MessageRepository
	Inspiration  InspirationRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Auth:         NewAuthRepository(db),
		Provider:     NewProviderRepository(db),
		Offering:     NewOfferingRepository(db),
		Availability: NewAvailabilityRepository(db),
		Booking:      NewBookingRepository(db),
		Review:       NewReviewRepository(db),
		Message:      NewMessageRepository(db),
		Inspiration:  NewInspirationRepository(db),
	}
}

type UserRepository interface {
	Create(ctx context.Context, user domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Update(ctx context.Context, id int64, user domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateAvatar(ctx context.Context, id int64, avatarURL string) error
	Delete(ctx context.Context, id int64) error
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByUserID(ctx context.Context, userID int64) error
}

type ProviderRepository interface {
	Create(ctx context.Context, userID int64, provider domain.CreateProviderDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Provider, error)
	Update(ctx context.Context, id int64, provider domain.UpdateProviderDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ProviderFilter) ([]domain.Provider, error)
	CountByFilter(ctx context.Context, filter domain.ProviderFilter) (int, error)
	UpdateRating(ctx context.Context, id int64, rating float64, reviewsCount int) error

	UpdateAvatar(ctx context.Context, id int64, avatarURL string) error
	AddPortfolioItem(ctx context.Context, providerID int64, imageURL, caption string) (int64, error)
	GetPortfolioItem(ctx context.Context, id int64) (*domain.PortfolioItem, error)
	DeletePortfolioItem(ctx context.Context, id int64) error
	ListPortfolio(ctx context.Context, providerID int64) ([]domain.PortfolioItem, error)
}

type OfferingRepository interface {
	Create(ctx context.Context, providerID int64, offering domain.CreateOfferingDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Offering, error)
	Update(ctx context.Context, id int64, offering domain.UpdateOfferingDTO) error
	Delete(ctx context.Context, id int64) error
	ListByProvider(ctx context.Context, providerID int64) ([]domain.Offering, error)
}

type AvailabilityRepository interface {
	GetSchedule(ctx context.Context, providerID int64) (*domain.ProviderSchedule, error)
	SaveSchedule(ctx context.Context, schedule domain.ProviderSchedule) error

	DeleteSlotsFrom(ctx context.Context, providerID int64, fromDate string) error
	InsertSlots(ctx context.Context, slots []domain.AvailabilitySlot) error
	ListSlotsByRange(ctx context.Context, providerID int64, fromDate, toDate string) ([]domain.AvailabilitySlot, error)
	SlotExists(ctx context.Context, providerID int64, date, startTime string) (bool, error)
}

type BookingRepository interface {
	Create(ctx context.Context, clientID int64, booking domain.CreateBookingDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error)
	CountByFilter(ctx context.Context, filter domain.BookingFilter) (int, error)
	ListBlockedDates(ctx context.Context, providerID int64, fromDate, toDate string) ([]string, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, clientID int64, review domain.CreateReviewDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	Update(ctx context.Context, id int64, dto domain.UpdateReviewDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error)
	CountByFilter(ctx context.Context, filter domain.ReviewFilter) (int, error)
	AverageByProvider(ctx context.Context, providerID int64) (float64, int, error)
}

type MessageRepository interface {
	GetOrCreateConversation(ctx context.Context, clientID, providerID int64) (int64, error)
	GetConversation(ctx context.Context, id int64) (*domain.Conversation, error)
	ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error)
	CreateMessage(ctx context.Context, conversationID, senderID int64, text string, imageURL *string) (*domain.Message, error)
	ListMessages(ctx context.Context, filter domain.MessageFilter) ([]domain.Message, error)
	MarkRead(ctx context.Context, conversationID, readerID int64) error
}

type InspirationRepository interface {
	Create(ctx context.Context, providerID int64, imageURL string, dto domain.CreateInspirationDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Inspiration, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.InspirationFilter) ([]domain.Inspiration, error)
	CountByFilter(ctx context.Context, filter domain.InspirationFilter) (int, error)
}
