package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"glow/internal/domain"
)

// @Summary Список мастеров
// @Description Каталог мастеров с фильтром по городу и поиском
// @Tags Мастера
// @Produce json
// @Param city query string false "Город"
// @Param search query string false "Поиск по имени салона и описанию"
// @Param limit query int false "Размер страницы" default(20)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} paginatedResponse
// @Router /providers [get]
func (h *Handler) getProviders(c *gin.Context) {
	filter := domain.ProviderFilter{
		Limit:  parseQueryInt(c, "limit", 20),
		Offset: parseQueryInt(c, "offset", 0),
	}

	if city := c.Query("city"); city != "" {
		filter.City = &city
	}
	if search := c.Query("search"); search != "" {
		filter.Search = &search
	}

	providers, total, err := h.services.Provider.List(c.Request.Context(), filter)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	page := filter.Offset/filter.Limit + 1
	paginatedSuccessResponse(c, providers, total, page, filter.Limit)
}

// @Summary Мастер по ID
// @Tags Мастера
// @Produce json
// @Param id path int true "ID мастера"
// @Success 200 {object} domain.Provider
// @Failure 404 {object} errorResponseBody "Мастер не найден"
// @Router /providers/{id} [get]
func (h *Handler) getProviderByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID мастера")
		return
	}

	provider, err := h.services.Provider.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, provider)
}

// @Summary Профиль текущего мастера
// @Tags Мастера
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} domain.Provider
// @Failure 404 {object} errorResponseBody "Профиль не найден"
// @Router /providers/me [get]
func (h *Handler) getMyProviderProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	provider, err := h.services.Provider.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, provider)
}

// @Summary Создание профиля мастера
// @Tags Мастера
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateProviderDTO true "Данные профиля"
// @Success 201 {object} successResponseBody "ID созданного профиля"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /providers [post]
func (h *Handler) createProvider(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.CreateProviderDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Provider.Create(c.Request.Context(), userID, input)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{"id": id})
}

// @Summary Обновление профиля мастера
// @Tags Мастера
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.UpdateProviderDTO true "Изменяемые поля"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /providers/me [put]
func (h *Handler) updateProvider(c *gin.Context) {
	provider, ok := h.currentProvider(c)
	if !ok {
		return
	}

	var input domain.UpdateProviderDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Provider.Update(c.Request.Context(), provider.ID, input); err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "профиль обновлён")
}

// @Summary Загрузка аватара мастера
// @Tags Мастера
// @Security ApiKeyAuth
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "Файл изображения"
// @Success 200 {object} successResponseBody "URL загруженного аватара"
// @Router /providers/me/avatar [post]
func (h *Handler) uploadProviderAvatar(c *gin.Context) {
	provider, ok := h.currentProvider(c)
	if !ok {
		return
	}

	data, filename, ok := h.readUploadedFile(c, "photo")
	if !ok {
		return
	}

	url, err := h.services.Provider.UploadAvatar(c.Request.Context(), provider.ID, data, filename)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, map[string]string{"avatar_url": url})
}

// @Summary Портфолио мастера
// @Tags Мастера
// @Produce json
// @Param id path int true "ID мастера"
// @Success 200 {array} domain.PortfolioItem
// @Router /providers/{id}/portfolio [get]
func (h *Handler) getProviderPortfolio(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID мастера")
		return
	}

	items, err := h.services.Provider.ListPortfolio(c.Request.Context(), id)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, items)
}

// @Summary Добавление фото в портфолио
// @Tags Мастера
// @Security ApiKeyAuth
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "Файл изображения"
// @Param caption formData string false "Подпись"
// @Success 201 {object} successResponseBody "ID добавленного фото"
// @Router /providers/me/portfolio [post]
func (h *Handler) addPortfolioItem(c *gin.Context) {
	provider, ok := h.currentProvider(c)
	if !ok {
		return
	}

	data, filename, ok := h.readUploadedFile(c, "photo")
	if !ok {
		return
	}

	dto := domain.AddPortfolioItemDTO{
		Caption: c.PostForm("caption"),
		Image:   data,
	}

	id, err := h.services.Provider.AddPortfolioItem(c.Request.Context(), provider.ID, dto, filename)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{"id": id})
}

// @Summary Удаление фото из портфолио
// @Tags Мастера
// @Security ApiKeyAuth
// @Produce json
// @Param itemId path int true "ID фото"
// @Success 204 {object} nil
// @Failure 404 {object} errorResponseBody "Фото не найдено"
// @Router /providers/me/portfolio/{itemId} [delete]
func (h *Handler) deletePortfolioItem(c *gin.Context) {
	provider, ok := h.currentProvider(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID фото")
		return
	}

	if err := h.services.Provider.DeletePortfolioItem(c.Request.Context(), provider.ID, itemID); err != nil {
		errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	noContentResponse(c)
}

// currentProvider достаёт профиль мастера текущего пользователя. При ошибке
// сам пишет ответ и возвращает ok=false.
func (h *Handler) currentProvider(c *gin.Context) (*domain.Provider, bool) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return nil, false
	}

	provider, err := h.services.Provider.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		notFoundResponse(c, "профиль мастера не найден")
		return nil, false
	}

	return provider, true
}

func parseQueryInt(c *gin.Context, name string, defaultValue int) int {
	value, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(defaultValue)))
	if err != nil || value < 0 {
		return defaultValue
	}
	return value
}
