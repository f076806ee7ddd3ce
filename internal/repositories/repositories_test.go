package repositories_test

import (
	"context"
	"testing"
	"time"

	apperrors "propmarket/internal/errors"
	"propmarket/internal/models"
	"propmarket/internal/repositories"
	"propmarket/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletRepository_Transactions(t *testing.T) {
	procs, db, _ := newProcedures(t)
	ctx := context.Background()
	repo := repositories.NewWalletRepository(db)
	user := testutil.CreateUser(t, db, "maya", false)

	_, err := repo.GetByUserID(ctx, user)
	assert.ErrorIs(t, err, apperrors.ErrWalletNotFound)

	for _, amount := range []string{"10", "20", "30"} {
		deposit(t, procs, user, amount)
	}

	total, err := repo.CountTransactions(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	page, err := repo.ListTransactions(ctx, user, 0, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.True(t, page[0].Amount.Equal(testutil.Money("30")), "newest first")

	sum, err := repo.SumCompleted(ctx, user)
	require.NoError(t, err)
	assert.True(t, sum.Equal(testutil.Money("60")))

	byType, err := repo.SumCompletedByType(ctx, user)
	require.NoError(t, err)
	assert.True(t, byType[models.TransactionTypeDeposit].Equal(testutil.Money("60")))
}

func TestWalletRepository_ListTransactions_StableAcrossPages(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := repositories.NewWalletRepository(db)
	user := testutil.CreateUser(t, db, "maya", false)

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, id := range []string{"tx-b", "tx-d", "tx-a", "tx-c"} {
		require.NoError(t, db.Create(&models.WalletTransaction{
			ID:        id,
			UserID:    user,
			Type:      models.TransactionTypeDeposit,
			Amount:    testutil.Money("10"),
			Status:    models.TransactionStatusCompleted,
			CreatedAt: at,
		}).Error)
	}

	var seen []string
	for offset := 0; offset < 4; offset++ {
		page, err := repo.ListTransactions(ctx, user, offset, 1)
		require.NoError(t, err)
		require.Len(t, page, 1)
		seen = append(seen, page[0].ID)
	}
	assert.Equal(t, []string{"tx-d", "tx-c", "tx-b", "tx-a"}, seen)
}

func TestPropertyRepository_ActiveListings(t *testing.T) {
	procs, db, clk := newProcedures(t)
	ctx := context.Background()
	repo := repositories.NewPropertyRepository(db)
	owner := testutil.CreateUser(t, db, "owner", true)

	cheap := testutil.CreateProperty(t, db, owner, "Cheap Studio")
	require.NoError(t, repo.Update(ctx, cheap.ID, map[string]interface{}{"type": "apartment", "location": "JLT_Cluster, Dubai", "bedrooms": 1}))
	listProperty(t, procs, owner, cheap.ID, "500", 30)

	clk.Advance(time.Minute)
	villa := testutil.CreateProperty(t, db, owner, "Big Villa")
	listProperty(t, procs, owner, villa.ID, "5000", 30)

	testutil.CreateProperty(t, db, owner, "Unlisted")
	now := clk.Now()

	tests := []struct {
		name   string
		filter repositories.ListingFilter
		want   []string
	}{
		{name: "all newest first", filter: repositories.ListingFilter{}, want: []string{villa.ID, cheap.ID}},
		{name: "min price", filter: repositories.ListingFilter{MinPrice: decimal.NewNullDecimal(testutil.Money("1000"))}, want: []string{villa.ID}},
		{name: "max price", filter: repositories.ListingFilter{MaxPrice: decimal.NewNullDecimal(testutil.Money("1000"))}, want: []string{cheap.ID}},
		{name: "type", filter: repositories.ListingFilter{Type: "apartment"}, want: []string{cheap.ID}},
		{name: "location is case insensitive", filter: repositories.ListingFilter{Location: "palm"}, want: []string{villa.ID}},
		{name: "location underscore is literal", filter: repositories.ListingFilter{Location: "t_c"}, want: []string{cheap.ID}},
		{name: "location wildcards do not match", filter: repositories.ListingFilter{Location: "m_j"}, want: []string{}},
		{name: "location percent does not match", filter: repositories.ListingFilter{Location: "%"}, want: []string{}},
		{name: "bedrooms", filter: repositories.ListingFilter{MinBedrooms: 3}, want: []string{villa.ID}},
		{name: "bathrooms", filter: repositories.ListingFilter{MinBathrooms: 4}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := repo.CountActiveListings(ctx, tt.filter, now)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), total)

			listings, err := repo.ListActiveListings(ctx, tt.filter, now, 0, 10)
			require.NoError(t, err)
			ids := make([]string, 0, len(listings))
			for _, l := range listings {
				ids = append(ids, l.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	_, err := repo.GetActiveListing(ctx, villa.ID, now.Add(31*24*time.Hour))
	assert.ErrorIs(t, err, apperrors.ErrListingNotFound, "expired listings are hidden")

	listing, err := repo.GetActiveListing(ctx, villa.ID, now)
	require.NoError(t, err)
	require.NotNil(t, listing.Owner)
	assert.Equal(t, "owner", listing.Owner.Name)
}

func TestPropertyRepository_UpdateRejectsListingColumns(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewPropertyRepository(db)
	owner := testutil.CreateUser(t, db, "owner", true)
	prop := testutil.CreateProperty(t, db, owner, "Loft")

	err := repo.Update(context.Background(), prop.ID, map[string]interface{}{"user_id": "someone-else"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = repo.Update(context.Background(), "missing", map[string]interface{}{"title": "x"})
	assert.ErrorIs(t, err, apperrors.ErrPropertyNotFound)
}

func TestSubscriptionRepository_IsPaidMember(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewSubscriptionRepository(db)
	ctx := context.Background()

	paid := testutil.CreateUser(t, db, "paid", true)
	free := testutil.CreateUser(t, db, "free", false)
	lapsed := testutil.CreateUser(t, db, "lapsed", false)
	require.NoError(t, repo.Create(ctx, &models.Subscription{UserID: lapsed, Status: "canceled", PlanID: "premium"}))

	for user, want := range map[string]bool{paid: true, free: false, lapsed: false, "nobody": false} {
		got, err := repo.IsPaidMember(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, want, got, user)
	}
}

func TestWithdrawalRepository_List(t *testing.T) {
	procs, db, _ := newProcedures(t)
	ctx := context.Background()
	repo := repositories.NewWithdrawalRepository(db)
	user := testutil.CreateUser(t, db, "karim", false)
	deposit(t, procs, user, "1000")

	first, err := procs.RequestWithdrawal(ctx, repositories.WithdrawalParams{UserID: user, Amount: testutil.Money("100"), Method: models.WithdrawalMethodBank})
	require.NoError(t, err)
	_, err = procs.RequestWithdrawal(ctx, repositories.WithdrawalParams{UserID: user, Amount: testutil.Money("200"), Method: models.WithdrawalMethodBank})
	require.NoError(t, err)
	_, err = procs.RejectWithdrawal(ctx, first.ID, "admin", "duplicate")
	require.NoError(t, err)

	pending := repositories.WithdrawalFilter{Status: models.WithdrawalStatusPending}
	total, err := repo.Count(ctx, pending)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	reqs, err := repo.List(ctx, repositories.WithdrawalFilter{UserID: user}, 0, 10)
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	require.NotNil(t, reqs[0].User)
	assert.Equal(t, "karim@example.com", reqs[0].User.Email)

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalStatusRejected, got.Status)
}

func TestMarketplaceRepository_Messages(t *testing.T) {
	procs, db, _ := newProcedures(t)
	ctx := context.Background()
	repo := repositories.NewMarketplaceRepository(db)
	seller := testutil.CreateUser(t, db, "seller", true)
	buyer := testutil.CreateUser(t, db, "buyer", true)
	prop := testutil.CreateProperty(t, db, seller, "Canal View")
	deposit(t, procs, buyer, "100")
	listProperty(t, procs, seller, prop.ID, "100", 7)

	result, err := procs.PurchaseMarketplaceListing(ctx, repositories.PurchaseParams{BuyerID: buyer, PropertyID: prop.ID})
	require.NoError(t, err)
	txID := result.Transaction.ID

	for i, sender := range []string{buyer, seller, buyer, seller} {
		require.NoError(t, repo.CreateMessage(ctx, &models.MarketplaceMessage{
			TransactionID: txID,
			SenderID:      sender,
			Content:       []string{"hi", "hello", "keys?", "tomorrow"}[i],
		}))
	}

	msgs, err := repo.ListMessages(ctx, txID)
	require.NoError(t, err)
	require.Len(t, msgs, 4)
	for i := 1; i < len(msgs); i++ {
		assert.True(t, msgs[i].CreatedAt.After(msgs[i-1].CreatedAt), "strictly increasing")
	}
	assert.Equal(t, "hi", msgs[0].Content)

	require.NoError(t, repo.MarkMessageRead(ctx, msgs[0].ID))
	read, err := repo.GetMessage(ctx, msgs[0].ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	assert.ErrorIs(t, repo.MarkMessageRead(ctx, "missing"), apperrors.ErrMessageNotFound)
	assert.ErrorIs(t, repo.CreateMessage(ctx, &models.MarketplaceMessage{TransactionID: "missing", SenderID: buyer, Content: "x"}), apperrors.ErrTransactionNotFound)

	for role, want := range map[string]int64{repositories.RoleBuyer: 1, repositories.RoleSeller: 0, repositories.RoleAll: 1} {
		n, err := repo.CountUserTransactions(ctx, buyer, role)
		require.NoError(t, err)
		assert.Equal(t, want, n, role)
	}

	mt, err := repo.GetTransaction(ctx, txID)
	require.NoError(t, err)
	require.NotNil(t, mt.Property)
	assert.Equal(t, buyer, mt.Property.UserID)
	require.NotNil(t, mt.Seller)
	assert.Equal(t, "seller", mt.Seller.Name)
}
