// Command seed creates an admin, demo users with subscriptions, properties
// and an opening balance, then prints development tokens for each account.
package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"propmarket/internal/config"
	applogger "propmarket/internal/logger"
	"propmarket/internal/models"
	"propmarket/internal/repositories"
	"propmarket/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type demoUser struct {
	name   string
	email  string
	plan   string
	funds  string
	titles []string
}

var demoUsers = []demoUser{
	{name: "Layla Haddad", email: "layla@example.com", plan: "premium", titles: []string{"Marina Gate Penthouse", "Arabian Ranches Villa"}},
	{name: "Omar Farouk", email: "omar@example.com", plan: "premium", funds: "2500000", titles: []string{"Downtown Loft"}},
	{name: "Sara Nasser", email: "sara@example.com", plan: models.PlanFree, funds: "1000"},
}

func main() {
	config.LoadEnv()
	cfg := config.Load()

	log, err := applogger.New(false)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	adminEmail := config.GetEnv("ADMIN_EMAIL", "")
	if adminEmail == "" || cfg.JWTSecret == "" {
		log.Fatal("ADMIN_EMAIL and JWT_SECRET must be set in environment")
	}

	if err := repositories.InitDB(cfg); err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
		if repositories.CacheService != nil {
			_ = repositories.CacheService.Close()
		}
	}()

	ctx := context.Background()
	db := repositories.DB
	procs := repositories.NewProcedures(db, repositories.ProceduresConfig{
		Currency:        cfg.Marketplace.Currency,
		PlatformFeeRate: decimal.NewNullDecimal(cfg.Marketplace.PlatformFeeRate),
	})
	subscriptions := repositories.NewSubscriptionRepository(db)
	properties := repositories.NewPropertyRepository(db)

	admin, _, err := ensureProfile(ctx, db, config.GetEnv("ADMIN_NAME", "Admin"), adminEmail, models.RoleAdmin)
	if err != nil {
		log.Fatal("failed to seed admin", zap.Error(err))
	}
	accounts := []*models.Profile{admin}

	for _, u := range demoUsers {
		profile, created, err := ensureProfile(ctx, db, u.name, u.email, models.RoleUser)
		if err != nil {
			log.Fatal("failed to seed user", zap.String("email", u.email), zap.Error(err))
		}
		accounts = append(accounts, profile)
		if !created {
			log.Info("user already seeded", zap.String("email", u.email))
			continue
		}

		if err := subscriptions.Create(ctx, &models.Subscription{
			UserID: profile.ID,
			Status: models.SubscriptionStatusActive,
			PlanID: u.plan,
		}); err != nil {
			log.Fatal("failed to seed subscription", zap.String("email", u.email), zap.Error(err))
		}

		for i, title := range u.titles {
			if err := properties.Create(ctx, &models.Property{
				UserID:    profile.ID,
				Title:     title,
				Type:      "apartment",
				Status:    "sale",
				Price:     decimal.NewFromInt(int64(1500000 + i*750000)),
				Location:  "Dubai",
				Bedrooms:  2 + i,
				Bathrooms: 2 + i,
				Area:      float64(140 + i*90),
			}); err != nil {
				log.Fatal("failed to seed property", zap.String("title", title), zap.Error(err))
			}
		}

		if u.funds != "" {
			if _, err := procs.ProcessWalletDeposit(ctx, repositories.DepositParams{
				UserID:      profile.ID,
				Amount:      decimal.RequireFromString(u.funds),
				Description: "Opening balance",
				Metadata:    models.JSON{"source": "seed"},
			}); err != nil {
				log.Fatal("failed to seed balance", zap.String("email", u.email), zap.Error(err))
			}
		}
		log.Info("seeded user", zap.String("email", u.email), zap.String("id", profile.ID))
	}

	for _, p := range accounts {
		tok, err := utils.GenerateToken(&models.UserClaims{
			UserID: p.ID,
			Email:  p.Email,
			Name:   p.Name,
			Role:   p.Role,
		}, cfg.JWTSecret, 24*time.Hour)
		if err != nil {
			log.Fatal("failed to sign token", zap.Error(err))
		}
		fmt.Printf("%-8s %-22s %s\n", p.Role, p.Email, tok)
	}
}

// ensureProfile returns the profile with the given email, creating it when
// missing. created reports whether a row was inserted.
func ensureProfile(ctx context.Context, db *gorm.DB, name, email, role string) (*models.Profile, bool, error) {
	var existing models.Profile
	err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	profile := &models.Profile{Name: name, Email: email, Role: role}
	if err := db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, false, err
	}
	return profile, true, nil
}
