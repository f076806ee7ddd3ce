package marketplace

import (
	"context"
	"time"

	apperrors "propmarket/internal/errors"
	"propmarket/internal/events"
	"propmarket/internal/models"
	"propmarket/internal/repositories"
	"propmarket/internal/utils/pagination"
	"propmarket/internal/validation"
)

func (s *service) GetTransaction(ctx context.Context, viewer Viewer, transactionID string) (*models.MarketplaceTransaction, error) {
	mt, err := s.marketplace.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !viewer.IsAdmin && !mt.IsParticipant(viewer.UserID) {
		return nil, apperrors.ErrNotParticipant
	}
	return mt, nil
}

func (s *service) GetUserTransactions(ctx context.Context, userID, role string, page pagination.Params) (pagination.Page[models.MarketplaceTransaction], error) {
	if role == "" {
		role = repositories.RoleAll
	}
	v := validation.New()
	v.OneOf("role", role, repositories.RoleBuyer, repositories.RoleSeller, repositories.RoleAll)
	if err := v.Err(); err != nil {
		return pagination.Page[models.MarketplaceTransaction]{}, err
	}
	return pagination.Fetch(page,
		func() (int64, error) { return s.marketplace.CountUserTransactions(ctx, userID, role) },
		func(offset, limit int) ([]models.MarketplaceTransaction, error) {
			return s.marketplace.ListUserTransactions(ctx, userID, role, offset, limit)
		},
	)
}

func (s *service) SendMessage(ctx context.Context, senderID, transactionID, content string) (msg *models.MarketplaceMessage, err error) {
	start := time.Now()
	defer func() { s.observe(OpSendMessage, start, err) }()

	if err := validation.Message(content); err != nil {
		return nil, err
	}
	if _, err := s.GetTransaction(ctx, Viewer{UserID: senderID}, transactionID); err != nil {
		return nil, err
	}

	msg = &models.MarketplaceMessage{
		TransactionID: transactionID,
		SenderID:      senderID,
		Content:       content,
	}
	if err := s.marketplace.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	events.PublishLogged(ctx, s.events, s.logger, events.New(events.TypeMessageSent, transactionID, msg))
	return msg, nil
}

func (s *service) GetMessages(ctx context.Context, viewer Viewer, transactionID string) ([]models.MarketplaceMessage, error) {
	if _, err := s.GetTransaction(ctx, viewer, transactionID); err != nil {
		return nil, err
	}
	msgs, err := s.marketplace.ListMessages(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []models.MarketplaceMessage{}
	}
	return msgs, nil
}

// MarkMessageAsRead is allowed only for the participant who did not send
// the message. Marking an already read message is a no-op.
func (s *service) MarkMessageAsRead(ctx context.Context, userID, messageID string) (*models.MarketplaceMessage, error) {
	msg, err := s.marketplace.GetMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}
	mt, err := s.marketplace.GetTransaction(ctx, msg.TransactionID)
	if err != nil {
		return nil, err
	}
	if !mt.IsParticipant(userID) || msg.SenderID == userID {
		return nil, apperrors.ErrNotMessageRecipient
	}
	if msg.IsRead {
		return msg, nil
	}
	if err := s.marketplace.MarkMessageRead(ctx, messageID); err != nil {
		return nil, err
	}
	msg.IsRead = true
	return msg, nil
}
