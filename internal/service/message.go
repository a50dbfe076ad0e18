package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"glow/internal/domain"
	"glow/internal/repository"
	"glow/internal/storage"
)

type MessageServiceImpl struct {
	repo         repository.MessageRepository
	providerRepo repository.ProviderRepository
	fileStorage  storage.FileStorage
	logger       *zap.Logger
}

func NewMessageService(
	repo repository.MessageRepository,
	providerRepo repository.ProviderRepository,
	fileStorage storage.FileStorage,
	logger *zap.Logger,
) *MessageServiceImpl {
	return &MessageServiceImpl{
		repo:         repo,
		providerRepo: providerRepo,
		fileStorage:  fileStorage,
		logger:       logger,
	}
}

// participates проверяет, что пользователь состоит в переписке: либо как
// клиент, либо как владелец профиля мастера.
func (s *MessageServiceImpl) participates(ctx context.Context, userID int64, conv *domain.Conversation) bool {
	if conv.ClientID == userID {
		return true
	}

	provider, err := s.providerRepo.GetByID(ctx, conv.ProviderID)
	if err != nil || provider == nil {
		return false
	}

	return provider.UserID == userID
}

func (s *MessageServiceImpl) Send(ctx context.Context, senderID int64, dto domain.SendMessageDTO) (*domain.Message, error) {
	conversationID := dto.ConversationID

	if conversationID == 0 {
		if dto.RecipientID == nil {
			return nil, errors.New("не указан получатель сообщения")
		}

		provider, err := s.providerRepo.GetByID(ctx, *dto.RecipientID)
		if err != nil || provider == nil {
			return nil, errors.New("мастер не найден")
		}
		if provider.UserID == senderID {
			return nil, errors.New("нельзя начать переписку с самим собой")
		}

		conversationID, err = s.repo.GetOrCreateConversation(ctx, senderID, provider.ID)
		if err != nil {
			s.logger.Error("ошибка создания переписки", zap.Int64("senderId", senderID), zap.Error(err))
			return nil, errors.New("ошибка отправки сообщения")
		}
	} else {
		conv, err := s.repo.GetConversation(ctx, conversationID)
		if err != nil {
			s.logger.Error("ошибка получения переписки", zap.Int64("conversationId", conversationID), zap.Error(err))
			return nil, errors.New("ошибка отправки сообщения")
		}
		if conv == nil || !s.participates(ctx, senderID, conv) {
			return nil, errors.New("переписка не найдена")
		}
	}

	message, err := s.repo.CreateMessage(ctx, conversationID, senderID, dto.Text, dto.ImageURL)
	if err != nil {
		s.logger.Error("ошибка создания сообщения", zap.Int64("conversationId", conversationID), zap.Error(err))
		return nil, errors.New("ошибка отправки сообщения")
	}

	return message, nil
}

func (s *MessageServiceImpl) ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	conversations, err := s.repo.ListConversations(ctx, userID)
	if err != nil {
		s.logger.Error("ошибка получения списка переписок", zap.Int64("userId", userID), zap.Error(err))
		return nil, errors.New("ошибка получения списка переписок")
	}
	return conversations, nil
}

func (s *MessageServiceImpl) ListMessages(ctx context.Context, userID int64, filter domain.MessageFilter) ([]domain.Message, error) {
	conv, err := s.repo.GetConversation(ctx, filter.ConversationID)
	if err != nil {
		s.logger.Error("ошибка получения переписки", zap.Int64("conversationId", filter.ConversationID), zap.Error(err))
		return nil, errors.New("ошибка получения сообщений")
	}
	if conv == nil || !s.participates(ctx, userID, conv) {
		return nil, errors.New("переписка не найдена")
	}

	messages, err := s.repo.ListMessages(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения сообщений", zap.Int64("conversationId", filter.ConversationID), zap.Error(err))
		return nil, errors.New("ошибка получения сообщений")
	}

	return messages, nil
}

func (s *MessageServiceImpl) MarkRead(ctx context.Context, userID, conversationID int64) error {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		s.logger.Error("ошибка получения переписки", zap.Int64("conversationId", conversationID), zap.Error(err))
		return errors.New("ошибка отметки сообщений")
	}
	if conv == nil || !s.participates(ctx, userID, conv) {
		return errors.New("переписка не найдена")
	}

	err = s.repo.MarkRead(ctx, conversationID, userID)
	if err != nil {
		s.logger.Error("ошибка отметки сообщений", zap.Int64("conversationId", conversationID), zap.Error(err))
		return errors.New("ошибка отметки сообщений")
	}

	return nil
}
