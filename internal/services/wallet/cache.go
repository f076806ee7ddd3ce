package wallet

import (
	"context"

	"propmarket/internal/models"
	keys "propmarket/internal/utils/cache"

	"go.uber.org/zap"
)

func (s *service) cachedSummary(ctx context.Context, userID string) (*models.WalletSummary, bool) {
	var summary models.WalletSummary
	found, err := s.cache.Get(ctx, keys.WalletSummaryKey(userID), &summary)
	if err != nil {
		s.logger.Warn("wallet summary cache read failed", zap.String("user_id", userID), zap.Error(err))
		return nil, false
	}
	if !found {
		return nil, false
	}
	return &summary, true
}

func (s *service) storeSummary(ctx context.Context, summary *models.WalletSummary) {
	if err := s.cache.Set(ctx, keys.WalletSummaryKey(summary.UserID), summary); err != nil {
		s.logger.Warn("wallet summary cache write failed", zap.String("user_id", summary.UserID), zap.Error(err))
	}
}

// InvalidateCache invalidates all cache entries for the users' wallets
func (s *service) InvalidateCache(ctx context.Context, userIDs ...string) {
	if len(userIDs) == 0 {
		return
	}
	cacheKeys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		cacheKeys = append(cacheKeys, keys.WalletSummaryKey(id))
	}
	if err := s.cache.Delete(ctx, cacheKeys...); err != nil {
		s.logger.Warn("wallet cache invalidation failed", zap.Strings("keys", cacheKeys), zap.Error(err))
	}
}
