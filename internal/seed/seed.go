package seed

import (
	"context"
	"errors"
	"log/slog"

	"francium/internal/domain/model"
	"francium/internal/repository"
	"francium/internal/usecase"
	auth "francium/internal/usecase/auth_usecase"

	"github.com/shopspring/decimal"
)

const (
	adminEmail    = "admin@francium.com"
	adminPassword = "admin123"
)

// Run は初回起動時のデータ投入。
// 管理者ユーザーが無ければ作り、商品が1件も無ければサンプルを入れる。
func Run(
	ctx context.Context,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	hasher auth.PasswordHasher,
	idGen usecase.IDGenerator,
	clock usecase.Clock,
	log *slog.Logger,
) error {
	if err := seedAdmin(ctx, userRepo, hasher, idGen, clock, log); err != nil {
		return err
	}
	return seedProducts(ctx, productRepo, idGen, clock, log)
}

func seedAdmin(
	ctx context.Context,
	userRepo repository.UserRepository,
	hasher auth.PasswordHasher,
	idGen usecase.IDGenerator,
	clock usecase.Clock,
	log *slog.Logger,
) error {
	_, err := userRepo.FindByEmail(ctx, adminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}

	hash, err := hasher.Hash(adminPassword)
	if err != nil {
		return err
	}

	admin := &model.User{
		ID:           idGen.NewID(),
		Email:        adminEmail,
		PasswordHash: hash,
		FullName:     "Admin User",
		Role:         model.RoleAdmin,
		CreatedAt:    clock.Now(),
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return err
	}

	log.Info("admin user created", "email", adminEmail)
	return nil
}

func seedProducts(
	ctx context.Context,
	productRepo repository.ProductRepository,
	idGen usecase.IDGenerator,
	clock usecase.Clock,
	log *slog.Logger,
) error {
	count, err := productRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := clock.Now()
	samples := []model.Product{
		{
			Name:        "Wireless Bluetooth Headphones",
			Description: "Premium wireless headphones with noise cancellation and 24-hour battery life",
			Price:       decimal.RequireFromString("2999.00"),
			Category:    "Electronics",
			Stock:       50,
		},
		{
			Name:        "Smart Watch Pro",
			Description: "Advanced fitness tracking smartwatch with heart rate monitor and GPS",
			Price:       decimal.RequireFromString("4999.00"),
			Category:    "Electronics",
			Stock:       30,
		},
		{
			Name:        "Premium Blue Shirt",
			Description: "High-quality cotton shirt perfect for formal and casual occasions",
			Price:       decimal.RequireFromString("1299.00"),
			Category:    "Fashion",
			Stock:       100,
		},
		{
			Name:        "Leather Laptop Bag",
			Description: "Stylish and durable leather laptop bag for professionals",
			Price:       decimal.RequireFromString("3499.00"),
			Category:    "Accessories",
			Stock:       25,
		},
		{
			Name:        "Designer Glasses",
			Description: "Trendy designer glasses with UV protection and lightweight frame",
			Price:       decimal.RequireFromString("1899.00"),
			Category:    "Accessories",
			Stock:       40,
		},
		{
			Name:        "Yoga Mat Premium",
			Description: "High-density yoga mat with excellent grip and cushioning",
			Price:       decimal.RequireFromString("899.00"),
			Category:    "Sports",
			Stock:       60,
		},
	}

	for _, p := range samples {
		p.ID = idGen.NewID()
		p.CreatedAt = now
		p.UpdatedAt = now
		if _, err := productRepo.Create(ctx, p); err != nil {
			return err
		}
	}

	log.Info("sample products created", "count", len(samples))
	return nil
}
