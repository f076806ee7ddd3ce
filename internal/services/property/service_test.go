package property

import (
	"context"
	"testing"

	apperrors "propmarket/internal/errors"
	"propmarket/internal/repositories"
	"propmarket/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingInvalidator struct {
	ids []string
}

func (r *recordingInvalidator) InvalidateListings(_ context.Context, propertyIDs ...string) {
	r.ids = append(r.ids, propertyIDs...)
}

func TestNewService_RequiresRepository(t *testing.T) {
	assert.Panics(t, func() { NewService(nil, nil) })
}

func TestService_UpdateProperty(t *testing.T) {
	db := testutil.NewDB(t)
	listings := &recordingInvalidator{}
	svc := NewService(repositories.NewPropertyRepository(db), listings)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "owner", false)
	other := testutil.CreateUser(t, db, "other", false)
	prop := testutil.CreateProperty(t, db, owner, "Old Title")

	tests := []struct {
		name    string
		userID  string
		fields  map[string]interface{}
		wantErr error
	}{
		{name: "not owner", userID: other, fields: map[string]interface{}{"title": "Mine"}, wantErr: apperrors.ErrForbidden},
		{name: "listing column", userID: owner, fields: map[string]interface{}{"is_in_marketplace": true}, wantErr: apperrors.ErrValidation},
		{name: "ownership column", userID: owner, fields: map[string]interface{}{"user_id": other}, wantErr: apperrors.ErrValidation},
		{name: "title", userID: owner, fields: map[string]interface{}{"title": "New Title"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.UpdateProperty(ctx, tt.userID, prop.ID, tt.fields)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "New Title", got.Title)
		})
	}
	assert.Equal(t, []string{prop.ID}, listings.ids, "only the applied update drops the cached listing")

	_, err := svc.GetProperty(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrPropertyNotFound)

	mine, err := svc.GetPropertiesByUserID(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	none, err := svc.GetPropertiesByUserID(ctx, other)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
