package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"glow/internal/domain"
)

type MessageRepo struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) MessageRepository {
	return &MessageRepo{db: db}
}

func (r *MessageRepo) GetOrCreateConversation(ctx context.Context, clientID, providerID int64) (int64, error) {
	var id int64

	query := `SELECT id FROM conversations WHERE client_id = $1 AND provider_id = $2`
	err := r.db.QueryRow(ctx, query, clientID, providerID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != pgx.ErrNoRows {
		return 0, fmt.Errorf("ошибка поиска переписки: %w", err)
	}

	insert := `
		INSERT INTO conversations (client_id, provider_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err = r.db.QueryRow(ctx, insert, clientID, providerID, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания переписки: %w", err)
	}

	return id, nil
}

func (r *MessageRepo) GetConversation(ctx context.Context, id int64) (*domain.Conversation, error) {
	query := `
		SELECT id, client_id, provider_id, last_message_at, created_at
		FROM conversations
		WHERE id = $1
	`

	var conv domain.Conversation
	err := r.db.QueryRow(ctx, query, id).Scan(
		&conv.ID,
		&conv.ClientID,
		&conv.ProviderID,
		&conv.LastMessageAt,
		&conv.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения переписки: %w", err)
	}

	return &conv, nil
}

// ListConversations возвращает переписки, где пользователь участвует как клиент
// либо как владелец профиля мастера, свежие сверху.
func (r *MessageRepo) ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	query := `
		SELECT c.id, c.client_id, c.provider_id, c.last_message_at, c.created_at,
		       (SELECT COUNT(*) FROM messages m
		        WHERE m.conversation_id = c.id AND m.sender_id != $1 AND m.is_read = false) AS unread_count
		FROM conversations c
		LEFT JOIN providers p ON p.id = c.provider_id
		WHERE c.client_id = $1 OR p.user_id = $1
		ORDER BY c.last_message_at DESC NULLS LAST, c.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка переписок: %w", err)
	}
	defer rows.Close()

	var conversations []domain.Conversation
	for rows.Next() {
		var conv domain.Conversation
		err := rows.Scan(
			&conv.ID,
			&conv.ClientID,
			&conv.ProviderID,
			&conv.LastMessageAt,
			&conv.CreatedAt,
			&conv.UnreadCount,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки переписки: %w", err)
		}
		conversations = append(conversations, conv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return conversations, nil
}

func (r *MessageRepo) CreateMessage(ctx context.Context, conversationID, senderID int64, text string, imageURL *string) (*domain.Message, error) {
	query := `
		INSERT INTO messages (conversation_id, sender_id, text, image_url, is_read, created_at)
		VALUES ($1, $2, $3, $4, false, $5)
		RETURNING id, created_at
	`

	message := domain.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           text,
		ImageURL:       imageURL,
	}

	err := r.db.QueryRow(ctx, query, conversationID, senderID, text, imageURL, time.Now()).
		Scan(&message.ID, &message.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания сообщения: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`UPDATE conversations SET last_message_at = $1 WHERE id = $2`,
		message.CreatedAt, conversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка обновления переписки: %w", err)
	}

	return &message, nil
}

func (r *MessageRepo) ListMessages(ctx context.Context, filter domain.MessageFilter) ([]domain.Message, error) {
	query := `
		SELECT id, conversation_id, sender_id, text, image_url, is_read, read_at, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, filter.ConversationID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения сообщений: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var message domain.Message
		err := rows.Scan(
			&message.ID,
			&message.ConversationID,
			&message.SenderID,
			&message.Text,
			&message.ImageURL,
			&message.IsRead,
			&message.ReadAt,
			&message.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки сообщения: %w", err)
		}
		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return messages, nil
}

func (r *MessageRepo) MarkRead(ctx context.Context, conversationID, readerID int64) error {
	query := `
		UPDATE messages
		SET is_read = true, read_at = $1
		WHERE conversation_id = $2 AND sender_id != $3 AND is_read = false
	`

	_, err := r.db.Exec(ctx, query, time.Now(), conversationID, readerID)
	if err != nil {
		return fmt.Errorf("ошибка отметки сообщений прочитанными: %w", err)
	}

	return nil
}
