package membership

import (
	"context"
	"errors"
	"testing"

	"propmarket/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSubscriptionRepo struct {
	mock.Mock
}

func (m *MockSubscriptionRepo) IsPaidMember(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubscriptionRepo) GetActive(ctx context.Context, userID string) ([]models.Subscription, error) {
	args := m.Called(ctx, userID)
	subs, _ := args.Get(0).([]models.Subscription)
	return subs, args.Error(1)
}

func (m *MockSubscriptionRepo) Create(ctx context.Context, sub *models.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

func TestService_IsPaidMember(t *testing.T) {
	tests := []struct {
		name      string
		userID    string
		setupMock func(*MockSubscriptionRepo)
		want      bool
		wantErr   bool
	}{
		{
			name:   "paid member",
			userID: "u1",
			setupMock: func(r *MockSubscriptionRepo) {
				r.On("IsPaidMember", mock.Anything, "u1").Return(true, nil)
			},
			want: true,
		},
		{
			name:   "no subscription",
			userID: "u2",
			setupMock: func(r *MockSubscriptionRepo) {
				r.On("IsPaidMember", mock.Anything, "u2").Return(false, nil)
			},
			want: false,
		},
		{
			name:   "empty user id short circuits",
			userID: "",
			want:   false,
		},
		{
			name:   "repository failure",
			userID: "u3",
			setupMock: func(r *MockSubscriptionRepo) {
				r.On("IsPaidMember", mock.Anything, "u3").Return(false, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockSubscriptionRepo)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := NewService(repo).IsPaidMember(context.Background(), tt.userID)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_GetStatus(t *testing.T) {
	repo := new(MockSubscriptionRepo)
	repo.On("GetActive", mock.Anything, "u1").Return([]models.Subscription{
		{UserID: "u1", Status: models.SubscriptionStatusActive, PlanID: models.PlanFree},
		{UserID: "u1", Status: models.SubscriptionStatusActive, PlanID: "gold"},
	}, nil)
	repo.On("GetActive", mock.Anything, "u2").Return(nil, nil)

	svc := NewService(repo)

	status, err := svc.GetStatus(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, status.IsPaidMember)
	assert.Len(t, status.Subscriptions, 2)

	status, err = svc.GetStatus(context.Background(), "u2")
	require.NoError(t, err)
	assert.False(t, status.IsPaidMember)
	assert.NotNil(t, status.Subscriptions)
}
