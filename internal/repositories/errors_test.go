package repositories

import (
	"errors"
	"testing"

	apperrors "propmarket/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	infra := errors.New("connection reset")

	tests := []struct {
		name   string
		err    error
		want   error
		errMsg string
	}{
		{name: "nil", err: nil, want: nil},
		{name: "record not found", err: gorm.ErrRecordNotFound, want: apperrors.ErrWalletNotFound},
		{name: "domain error passes through", err: apperrors.ErrInsufficientFunds, want: apperrors.ErrInsufficientFunds},
		{name: "serialization failure", err: &pgconn.PgError{Code: "40001"}, want: apperrors.ErrConcurrentUpdate},
		{name: "deadlock", err: &pgconn.PgError{Code: "40P01"}, want: apperrors.ErrConcurrentUpdate},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: ErrDuplicate},
		{name: "infrastructure", err: infra, want: infra, errMsg: "failed to load wallet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.err, "load wallet", apperrors.ErrWalletNotFound)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
			if tt.errMsg != "" {
				assert.Contains(t, got.Error(), tt.errMsg)
			}
		})
	}
}
