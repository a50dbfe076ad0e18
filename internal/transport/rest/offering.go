package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"glow/internal/domain"
)

// @Summary Прайс-лист мастера
// @Tags Услуги
// @Produce json
// @Param id path int true "ID мастера"
// @Success 200 {array} domain.Offering
// @Router /providers/{id}/offerings [get]
func (h *Handler) getProviderOfferings(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID мастера")
		return
	}

	offerings, err := h.services.Offering.ListByProvider(c.Request.Context(), id)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, offerings)
}

// @Summary Создание услуги
// @Tags Услуги
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateOfferingDTO true "Данные услуги"
// @Success 201 {object} successResponseBody "ID созданной услуги"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /providers/me/offerings [post]
func (h *Handler) createOffering(c *gin.Context) {
	provider, ok := h.currentProvider(c)
	if !ok {
		return
	}

	var input domain.CreateOfferingDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Offering.Create(c.Request.Context(), provider.ID, input)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{"id": id})
}

// @Summary Обновление услуги
// @Tags Услуги
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID услуги"
// @Param input body domain.UpdateOfferingDTO true "Изменяемые поля"
// @Success 200 {object} messageResponseType
// @Failure 404 {object} errorResponseBody "Услуга не найдена"
// @Router /providers/me/offerings/{id} [put]
func (h *Handler) updateOffering(c *gin.Context) {
	provider, ok := h.currentProvider(c)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID услуги")
		return
	}

	var input domain.UpdateOfferingDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Offering.Update(c.Request.Context(), provider.ID, id, input); err != nil {
		errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "услуга обновлена")
}

// @Summary Удаление услуги
// @Tags Услуги
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID услуги"
// @Success 204 {object} nil
// @Failure 404 {object} errorResponseBody "Услуга не найдена"
// @Router /providers/me/offerings/{id} [delete]
func (h *Handler) deleteOffering(c *gin.Context) {
	provider, ok := h.currentProvider(c)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID услуги")
		return
	}

	if err := h.services.Offering.Delete(c.Request.Context(), provider.ID, id); err != nil {
		errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	noContentResponse(c)
}
