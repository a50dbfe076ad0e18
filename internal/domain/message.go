package domain

import (
	"time"
)

// Conversation — переписка клиента с мастером. На пару (клиент, мастер)
// существует не более одной переписки.
type Conversation struct {
	ID            int64      `json:"id"`
	ClientID      int64      `json:"client_id"`
	ProviderID    int64      `json:"provider_id"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`

	ClientName   *string `json:"client_name,omitempty"`
	ProviderName *string `json:"provider_name,omitempty"`
	UnreadCount  int     `json:"unread_count"`
}

type Message struct {
	ID             int64      `json:"id"`
	ConversationID int64      `json:"conversation_id"`
	SenderID       int64      `json:"sender_id"`
	Text           string     `json:"text"`
	ImageURL       *string    `json:"image_url,omitempty"`
	IsRead         bool       `json:"is_read"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type SendMessageDTO struct {
	ConversationID int64   `json:"conversation_id"`
	RecipientID    *int64  `json:"recipient_id"`
	Text           string  `json:"text" binding:"required"`
	ImageURL       *string `json:"image_url"`
}

type MessageFilter struct {
	ConversationID int64 `json:"conversation_id"`
	Limit          int   `json:"limit"`
	Offset         int   `json:"offset"`
}
