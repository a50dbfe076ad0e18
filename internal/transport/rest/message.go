package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"glow/internal/domain"
	"glow/internal/transport/websocket"
)

// @Summary Список переписок
// @Tags Сообщения
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} domain.Conversation
// @Router /messages/conversations [get]
func (h *Handler) getConversations(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	conversations, err := h.services.Message.ListConversations(c.Request.Context(), userID)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, conversations)
}

// @Summary Сообщения переписки
// @Tags Сообщения
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID переписки"
// @Param limit query int false "Размер страницы" default(50)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {array} domain.Message
// @Failure 404 {object} errorResponseBody "Переписка не найдена"
// @Router /messages/conversations/{id} [get]
func (h *Handler) getMessages(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	conversationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID переписки")
		return
	}

	filter := domain.MessageFilter{
		ConversationID: conversationID,
		Limit:          parseQueryInt(c, "limit", 50),
		Offset:         parseQueryInt(c, "offset", 0),
	}

	messages, err := h.services.Message.ListMessages(c.Request.Context(), userID, filter)
	if err != nil {
		errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	successResponse(c, http.StatusOK, messages)
}

// @Summary Отправка сообщения
// @Description Отправляет сообщение в существующую переписку или открывает новую с мастером
// @Tags Сообщения
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.SendMessageDTO true "Сообщение"
// @Success 201 {object} domain.Message
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /messages [post]
func (h *Handler) sendMessage(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.SendMessageDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	message, err := h.services.Message.Send(c.Request.Context(), userID, input)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.notifyConversationPeer(c, message.ConversationID, userID, websocket.Event{
		Type: websocket.EventNewMessage,
		From: userID,
		Data: message,
	})

	createdResponse(c, message)
}

// @Summary Отметка о прочтении
// @Tags Сообщения
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID переписки"
// @Success 200 {object} messageResponseType
// @Failure 404 {object} errorResponseBody "Переписка не найдена"
// @Router /messages/conversations/{id}/read [post]
func (h *Handler) markMessagesRead(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	conversationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID переписки")
		return
	}

	if err := h.services.Message.MarkRead(c.Request.Context(), userID, conversationID); err != nil {
		errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	h.notifyConversationPeer(c, conversationID, userID, websocket.Event{
		Type: websocket.EventMessagesRead,
		From: userID,
		Data: map[string]interface{}{"conversation_id": conversationID},
	})

	messageResponse(c, http.StatusOK, "сообщения отмечены прочитанными")
}

// notifyConversationPeer доставляет событие второму участнику переписки.
func (h *Handler) notifyConversationPeer(c *gin.Context, conversationID, senderID int64, event websocket.Event) {
	conversations, err := h.services.Message.ListConversations(c.Request.Context(), senderID)
	if err != nil {
		return
	}

	for _, conv := range conversations {
		if conv.ID != conversationID {
			continue
		}

		if conv.ClientID != senderID {
			h.hub.Notify(conv.ClientID, event)
			return
		}

		h.notifyProvider(c, conv.ProviderID, event)
		return
	}
}
