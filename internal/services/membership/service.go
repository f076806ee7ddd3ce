// Package membership answers whether a user holds a paid plan.
package membership

import (
	"context"
	"fmt"

	"propmarket/internal/models"
	"propmarket/internal/repositories"
)

type Service interface {
	// IsPaidMember is true when the user has an active subscription on
	// any plan other than free. A user without subscriptions is not a
	// member; that is never an error.
	IsPaidMember(ctx context.Context, userID string) (bool, error)
	GetStatus(ctx context.Context, userID string) (*Status, error)
}

// Status is the membership view returned to clients.
type Status struct {
	UserID        string                `json:"user_id"`
	IsPaidMember  bool                  `json:"is_paid_member"`
	Subscriptions []models.Subscription `json:"subscriptions"`
}

type service struct {
	repo repositories.SubscriptionRepository
}

func NewService(repo repositories.SubscriptionRepository) Service {
	if repo == nil {
		panic("subscription repository is required")
	}
	return &service{repo: repo}
}

func (s *service) IsPaidMember(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	paid, err := s.repo.IsPaidMember(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return paid, nil
}

func (s *service) GetStatus(ctx context.Context, userID string) (*Status, error) {
	subs, err := s.repo.GetActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}
	status := &Status{UserID: userID, Subscriptions: subs}
	if status.Subscriptions == nil {
		status.Subscriptions = []models.Subscription{}
	}
	for i := range subs {
		if subs[i].IsPaid() {
			status.IsPaidMember = true
			break
		}
	}
	return status, nil
}
