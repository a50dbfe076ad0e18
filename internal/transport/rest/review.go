package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"glow/internal/domain"
)

// @Summary Список отзывов
// @Tags Отзывы
// @Produce json
// @Param provider_id query int false "ID мастера"
// @Param min_rating query int false "Минимальная оценка"
// @Param limit query int false "Размер страницы" default(20)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} paginatedResponse
// @Router /reviews [get]
func (h *Handler) getReviews(c *gin.Context) {
	filter := domain.ReviewFilter{
		Limit:  parseQueryInt(c, "limit", 20),
		Offset: parseQueryInt(c, "offset", 0),
	}

	if providerIDStr := c.Query("provider_id"); providerIDStr != "" {
		providerID, err := strconv.ParseInt(providerIDStr, 10, 64)
		if err != nil {
			badRequestResponse(c, "некорректный ID мастера")
			return
		}
		filter.ProviderID = &providerID
	}

	if minRatingStr := c.Query("min_rating"); minRatingStr != "" {
		minRating, err := strconv.Atoi(minRatingStr)
		if err != nil || minRating < 1 || minRating > 5 {
			badRequestResponse(c, "некорректная минимальная оценка")
			return
		}
		filter.MinRating = &minRating
	}

	reviews, total, err := h.services.Review.List(c.Request.Context(), filter)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	page := filter.Offset/filter.Limit + 1
	paginatedSuccessResponse(c, reviews, total, page, filter.Limit)
}

// @Summary Отзыв по ID
// @Tags Отзывы
// @Produce json
// @Param id path int true "ID отзыва"
// @Success 200 {object} domain.Review
// @Failure 404 {object} errorResponseBody "Отзыв не найден"
// @Router /reviews/{id} [get]
func (h *Handler) getReviewByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID отзыва")
		return
	}

	review, err := h.services.Review.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, review)
}

// @Summary Создание отзыва
// @Description Отзыв доступен только после завершённой записи
// @Tags Отзывы
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateReviewDTO true "Данные отзыва"
// @Success 201 {object} successResponseBody "ID созданного отзыва"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /reviews [post]
func (h *Handler) createReview(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.CreateReviewDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Review.Create(c.Request.Context(), userID, input)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{"id": id})
}

// @Summary Обновление отзыва
// @Tags Отзывы
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID отзыва"
// @Param input body domain.UpdateReviewDTO true "Изменяемые поля"
// @Success 200 {object} messageResponseType
// @Failure 404 {object} errorResponseBody "Отзыв не найден"
// @Router /reviews/{id} [put]
func (h *Handler) updateReview(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID отзыва")
		return
	}

	var input domain.UpdateReviewDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Review.Update(c.Request.Context(), id, userID, input); err != nil {
		errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "отзыв обновлён")
}

// @Summary Удаление отзыва
// @Tags Отзывы
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID отзыва"
// @Success 204 {object} nil
// @Failure 404 {object} errorResponseBody "Отзыв не найден"
// @Router /reviews/{id} [delete]
func (h *Handler) deleteReview(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID отзыва")
		return
	}

	if err := h.services.Review.Delete(c.Request.Context(), id, userID); err != nil {
		errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	noContentResponse(c)
}
