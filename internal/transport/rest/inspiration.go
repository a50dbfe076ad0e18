package rest

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"glow/internal/domain"
)

// @Summary Лента идей
// @Description Публикации мастеров с фильтром по автору и тегу
// @Tags Лента
// @Produce json
// @Param provider_id query int false "ID мастера"
// @Param tag query string false "Тег"
// @Param limit query int false "Размер страницы" default(20)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} paginatedResponse
// @Router /inspirations [get]
func (h *Handler) getInspirations(c *gin.Context) {
	filter := domain.InspirationFilter{
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

	if tag := c.Query("tag"); tag != "" {
		filter.Tag = &tag
	}

	inspirations, total, err := h.services.Inspiration.List(c.Request.Context(), filter)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	page := filter.Offset/filter.Limit + 1
	paginatedSuccessResponse(c, inspirations, total, page, filter.Limit)
}

// @Summary Публикация по ID
// @Tags Лента
// @Produce json
// @Param id path int true "ID публикации"
// @Success 200 {object} domain.Inspiration
// @Failure 404 {object} errorResponseBody "Публикация не найдена"
// @Router /inspirations/{id} [get]
func (h *Handler) getInspirationByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID публикации")
		return
	}

	inspiration, err := h.services.Inspiration.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, inspiration)
}

// @Summary Создание публикации
// @Tags Лента
// @Security ApiKeyAuth
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "Файл изображения"
// @Param caption formData string false "Подпись"
// @Param tags formData string false "Теги через запятую"
// @Success 201 {object} successResponseBody "ID созданной публикации"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /inspirations [post]
func (h *Handler) createInspiration(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	data, filename, ok := h.readUploadedFile(c, "photo")
	if !ok {
		return
	}

	dto := domain.CreateInspirationDTO{
		Caption: c.PostForm("caption"),
		Image:   data,
	}

	if tags := c.PostForm("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			tag = strings.TrimSpace(tag)
			if tag != "" {
				dto.Tags = append(dto.Tags, tag)
			}
		}
	}

	id, err := h.services.Inspiration.Create(c.Request.Context(), userID, dto, filename)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{"id": id})
}

// @Summary Удаление публикации
// @Tags Лента
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID публикации"
// @Success 204 {object} nil
// @Failure 404 {object} errorResponseBody "Публикация не найдена"
// @Router /inspirations/{id} [delete]
func (h *Handler) deleteInspiration(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID публикации")
		return
	}

	if err := h.services.Inspiration.Delete(c.Request.Context(), userID, id); err != nil {
		errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	noContentResponse(c)
}
