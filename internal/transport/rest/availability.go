package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"glow/internal/domain"
)

// @Summary Расписание текущего мастера
// @Description Недельный шаблон с заблокированными периодами. Несохранённый черновик перекрывает недельную часть.
// @Tags Расписание
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} domain.ProviderSchedule
// @Router /schedule [get]
func (h *Handler) getSchedule(c *gin.Context) {
	provider, ok := h.currentProvider(c)
	if !ok {
		return
	}

	schedule, err := h.services.Availability.GetSchedule(c.Request.Context(), provider.ID)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, schedule)
}

// @Summary Сохранение расписания
// @Description Сохраняет недельный шаблон и сразу публикует слоты на 90 дней вперёд
// @Tags Расписание
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.SaveScheduleDTO true "Недельный шаблон"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /schedule [put]
func (h *Handler) saveSchedule(c *gin.Context) {
	provider, ok := h.currentProvider(c)
	if !ok {
		return
	}

	var input domain.SaveScheduleDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Availability.SaveSchedule(c.Request.Context(), provider.ID, input); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "расписание сохранено")
}

// @Summary Черновик расписания
// @Description Кладёт несохранённые правки недельного шаблона в кэш
// @Tags Расписание
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.SaveScheduleDTO true "Недельный шаблон"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /schedule/draft [put]
func (h *Handler) saveScheduleDraft(c *gin.Context) {
	provider, ok := h.currentProvider(c)
	if !ok {
		return
	}

	var input domain.SaveScheduleDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Availability.SaveDraft(c.Request.Context(), provider.ID, input.Week); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "черновик сохранён")
}

// @Summary Публикация слотов
// @Description Пересобирает слоты записи с завтрашнего дня по сохранённому шаблону
// @Tags Расписание
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} messageResponseType
// @Router /schedule/publish [post]
func (h *Handler) publishSchedule(c *gin.Context) {
	provider, ok := h.currentProvider(c)
	if !ok {
		return
	}

	if err := h.services.Availability.Publish(c.Request.Context(), provider.ID, time.Now()); err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "расписание опубликовано")
}

// @Summary Добавление заблокированного периода
// @Tags Расписание
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.AddBlockedPeriodDTO true "Период"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /schedule/blocked-periods [post]
func (h *Handler) addBlockedPeriod(c *gin.Context) {
	provider, ok := h.currentProvider(c)
	if !ok {
		return
	}

	var input domain.AddBlockedPeriodDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Availability.AddBlockedPeriod(c.Request.Context(), provider.ID, input); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "период добавлен")
}

// @Summary Удаление заблокированного периода
// @Tags Расписание
// @Security ApiKeyAuth
// @Produce json
// @Param index path int true "Порядковый номер периода"
// @Success 200 {object} messageResponseType
// @Failure 404 {object} errorResponseBody "Период не найден"
// @Router /schedule/blocked-periods/{index} [delete]
func (h *Handler) deleteBlockedPeriod(c *gin.Context) {
	provider, ok := h.currentProvider(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		badRequestResponse(c, "некорректный номер периода")
		return
	}

	if err := h.services.Availability.DeleteBlockedPeriod(c.Request.Context(), provider.ID, index); err != nil {
		errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "период удалён")
}

// @Summary Календарь доступности мастера
// @Description Слоты записи по датам месяца. Даты с активными бронями недоступны.
// @Tags Расписание
// @Produce json
// @Param id path int true "ID мастера"
// @Param year query int true "Год"
// @Param month query int true "Месяц (1-12)"
// @Success 200 {object} map[string]domain.DayAvailability
// @Failure 400 {object} errorResponseBody "Некорректные параметры"
// @Router /providers/{id}/availability [get]
func (h *Handler) getMonthAvailability(c *gin.Context) {
	providerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID мастера")
		return
	}

	now := time.Now()
	year := parseQueryInt(c, "year", now.Year())
	month := parseQueryInt(c, "month", int(now.Month()))
	if month < 1 || month > 12 {
		badRequestResponse(c, "месяц должен быть от 1 до 12")
		return
	}

	days, err := h.services.Availability.MonthAvailability(c.Request.Context(), providerID, year, time.Month(month))
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, days)
}
