package rest

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"glow/config"
	"glow/internal/service"
	"glow/internal/transport/websocket"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
	hub      *websocket.Hub
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config, hub *websocket.Hub) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
		hub:      hub,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())
	router.Use(h.corsMiddleware())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/refresh", h.refreshTokens)
			auth.POST("/logout", h.logout)
		}

		users := api.Group("/users")
		users.Use(h.authMiddleware())
		{
			users.GET("/me", h.getCurrentUser)
			users.GET("/:id", h.getUserByID)
			users.PUT("/me", h.updateUser)
			users.PUT("/me/password", h.updatePassword)
			users.POST("/me/avatar", h.uploadUserAvatar)
			users.DELETE("/me", h.deleteUser)
		}

		providers := api.Group("/providers")
		{
			providers.GET("/", h.getProviders)
			providers.GET("/me", h.authMiddleware(), h.providerMiddleware(), h.getMyProviderProfile)
			providers.GET("/:id", h.getProviderByID)
			providers.GET("/:id/offerings", h.getProviderOfferings)
			providers.GET("/:id/portfolio", h.getProviderPortfolio)
			providers.GET("/:id/availability", h.getMonthAvailability)

			owner := providers.Group("/", h.authMiddleware(), h.providerMiddleware())
			{
				owner.POST("/", h.createProvider)
				owner.PUT("/me", h.updateProvider)
				owner.POST("/me/avatar", h.uploadProviderAvatar)
				owner.POST("/me/portfolio", h.addPortfolioItem)
				owner.DELETE("/me/portfolio/:itemId", h.deletePortfolioItem)

				owner.POST("/me/offerings", h.createOffering)
				owner.PUT("/me/offerings/:id", h.updateOffering)
				owner.DELETE("/me/offerings/:id", h.deleteOffering)
			}
		}

		h.initScheduleRoutes(api)

		bookings := api.Group("/bookings")
		bookings.Use(h.authMiddleware())
		{
			bookings.POST("/", h.createBooking)
			bookings.GET("/", h.getBookings)
			bookings.GET("/:id", h.getBookingByID)
			bookings.PUT("/:id/status", h.updateBookingStatus)
		}

		reviews := api.Group("/reviews")
		{
			reviews.GET("/", h.getReviews)
			reviews.GET("/:id", h.getReviewByID)

			auth := reviews.Group("/", h.authMiddleware())
			{
				auth.POST("/", h.createReview)
				auth.PUT("/:id", h.updateReview)
				auth.DELETE("/:id", h.deleteReview)
			}
		}

		messages := api.Group("/messages")
		messages.Use(h.authMiddleware())
		{
			messages.GET("/conversations", h.getConversations)
			messages.GET("/conversations/:id", h.getMessages)
			messages.POST("/conversations/:id/read", h.markMessagesRead)
			messages.POST("/", h.sendMessage)
		}

		admin := api.Group("/admin")
		admin.Use(h.authMiddleware(), h.adminMiddleware())
		{
			admin.GET("/bookings", h.getAllBookings)
		}

		inspirations := api.Group("/inspirations")
		{
			inspirations.GET("/", h.getInspirations)
			inspirations.GET("/:id", h.getInspirationByID)

			auth := inspirations.Group("/", h.authMiddleware(), h.providerMiddleware())
			{
				auth.POST("/", h.createInspiration)
				auth.DELETE("/:id", h.deleteInspiration)
			}
		}
	}

	// Авторизация выполняется внутри обработчика по query-токену.
	router.GET("/ws/events", h.hub.HandleWebSocket)
}

func (h *Handler) initScheduleRoutes(api *gin.RouterGroup) {
	schedule := api.Group("/schedule")
	schedule.Use(h.authMiddleware(), h.providerMiddleware())
	{
		schedule.GET("/", h.getSchedule)
		schedule.PUT("/", h.saveSchedule)
		schedule.PUT("/draft", h.saveScheduleDraft)
		schedule.POST("/publish", h.publishSchedule)

		schedule.POST("/blocked-periods", h.addBlockedPeriod)
		schedule.DELETE("/blocked-periods/:index", h.deleteBlockedPeriod)
	}
}
