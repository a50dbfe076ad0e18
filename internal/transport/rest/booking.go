package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"glow/internal/domain"
	"glow/internal/transport/websocket"
)

// @Summary Создание записи
// @Description Записывает клиента к мастеру на свободный слот
// @Tags Записи
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateBookingDTO true "Данные записи"
// @Success 201 {object} successResponseBody "ID созданной записи"
// @Failure 400 {object} errorResponseBody "Слот недоступен или дата занята"
// @Router /bookings [post]
func (h *Handler) createBooking(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.CreateBookingDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Booking.Create(c.Request.Context(), userID, input)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.notifyProvider(c, input.ProviderID, websocket.Event{
		Type: websocket.EventBookingStatus,
		From: userID,
		Data: map[string]interface{}{"booking_id": id, "status": domain.BookingStatusPending},
	})

	createdResponse(c, map[string]interface{}{"id": id})
}

// @Summary Запись по ID
// @Tags Записи
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} domain.Booking
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Router /bookings/{id} [get]
func (h *Handler) getBookingByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID записи")
		return
	}

	booking, err := h.services.Booking.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	role, _ := getUserRole(c)
	if role == domain.UserRoleClient && booking.ClientID != userID {
		forbiddenResponse(c)
		return
	}

	successResponse(c, http.StatusOK, booking)
}

// @Summary Смена статуса записи
// @Description Подтверждение, завершение или отмена записи
// @Tags Записи
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Param input body domain.UpdateBookingDTO true "Новый статус"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Недопустимый переход статуса"
// @Router /bookings/{id}/status [put]
func (h *Handler) updateBookingStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	role, err := getUserRole(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID записи")
		return
	}

	var input domain.UpdateBookingDTO
	if err := c.ShouldBindJSON(&input); err != nil || input.Status == nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Booking.UpdateStatus(c.Request.Context(), id, userID, role, *input.Status); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := h.services.Booking.GetByID(c.Request.Context(), id)
	if err == nil {
		event := websocket.Event{
			Type: websocket.EventBookingStatus,
			From: userID,
			Data: map[string]interface{}{"booking_id": id, "status": *input.Status},
		}
		if role == domain.UserRoleClient {
			h.notifyProvider(c, booking.ProviderID, event)
		} else {
			h.hub.Notify(booking.ClientID, event)
		}
	}

	messageResponse(c, http.StatusOK, "статус записи обновлён")
}

// @Summary Список записей
// @Description Клиент видит свои записи, мастер записи к себе
// @Tags Записи
// @Security ApiKeyAuth
// @Produce json
// @Param status query string false "Статус" Enums(pending, confirmed, completed, cancelled)
// @Param start_date query string false "Дата с (YYYY-MM-DD)"
// @Param end_date query string false "Дата по (YYYY-MM-DD)"
// @Param limit query int false "Размер страницы" default(20)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} paginatedResponse
// @Router /bookings [get]
func (h *Handler) getBookings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	role, err := getUserRole(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	filter := domain.BookingFilter{
		Limit:  parseQueryInt(c, "limit", 20),
		Offset: parseQueryInt(c, "offset", 0),
	}

	switch role {
	case domain.UserRoleClient:
		filter.ClientID = &userID
	case domain.UserRoleProvider:
		provider, err := h.services.Provider.GetByUserID(c.Request.Context(), userID)
		if err != nil {
			notFoundResponse(c, "профиль мастера не найден")
			return
		}
		filter.ProviderID = &provider.ID
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.BookingStatus(statusStr)
		filter.Status = &status
	}
	if startDate := c.Query("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := c.Query("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	bookings, total, err := h.services.Booking.List(c.Request.Context(), filter)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	page := filter.Offset/filter.Limit + 1
	paginatedSuccessResponse(c, bookings, total, page, filter.Limit)
}

// @Summary Все записи (админ)
// @Description Список записей по всем клиентам и мастерам
// @Tags Админ
// @Security ApiKeyAuth
// @Produce json
// @Param client_id query int false "ID клиента"
// @Param provider_id query int false "ID мастера"
// @Param status query string false "Статус" Enums(pending, confirmed, completed, cancelled)
// @Param start_date query string false "Дата с (YYYY-MM-DD)"
// @Param end_date query string false "Дата по (YYYY-MM-DD)"
// @Param limit query int false "Размер страницы" default(20)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} paginatedResponse
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Router /admin/bookings [get]
func (h *Handler) getAllBookings(c *gin.Context) {
	filter := domain.BookingFilter{
		Limit:  parseQueryInt(c, "limit", 20),
		Offset: parseQueryInt(c, "offset", 0),
	}

	if clientIDStr := c.Query("client_id"); clientIDStr != "" {
		clientID, err := strconv.ParseInt(clientIDStr, 10, 64)
		if err != nil {
			badRequestResponse(c, "некорректный ID клиента")
			return
		}
		filter.ClientID = &clientID
	}
	if providerIDStr := c.Query("provider_id"); providerIDStr != "" {
		providerID, err := strconv.ParseInt(providerIDStr, 10, 64)
		if err != nil {
			badRequestResponse(c, "некорректный ID мастера")
			return
		}
		filter.ProviderID = &providerID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.BookingStatus(statusStr)
		filter.Status = &status
	}
	if startDate := c.Query("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := c.Query("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	bookings, total, err := h.services.Booking.List(c.Request.Context(), filter)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	page := filter.Offset/filter.Limit + 1
	paginatedSuccessResponse(c, bookings, total, page, filter.Limit)
}

// notifyProvider доставляет событие владельцу профиля мастера, если тот онлайн.
func (h *Handler) notifyProvider(c *gin.Context, providerID int64, event websocket.Event) {
	provider, err := h.services.Provider.GetByID(c.Request.Context(), providerID)
	if err != nil || provider == nil {
		return
	}
	h.hub.Notify(provider.UserID, event)
}
