package usecase

import (
	"context"
	"net/http"

	"francium/internal/domain/model"
	repo "francium/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	adminOrderListLimit = 100
	// 売上集計の走査上限。これを超える支払済み注文は集計に入らない。
	revenueScanLimit = 1000
)

// 管理者用の読み取り専用集計
type AdminUsecase struct {
	orderRepo   repo.OrderRepository
	productRepo repo.ProductRepository
	userRepo    repo.UserRepository
}

// DI
func NewAdminUsecase(
	orderRepo repo.OrderRepository,
	productRepo repo.ProductRepository,
	userRepo repo.UserRepository,
) *AdminUsecase {
	return &AdminUsecase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

type StatsOutput struct {
	TotalProducts int64           `json:"total_products"`
	TotalOrders   int64           `json:"total_orders"`
	TotalUsers    int64           `json:"total_users"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

func (u *AdminUsecase) Stats(ctx context.Context) (StatsOutput, error) {
	var out StatsOutput

	products, err := u.productRepo.Count(ctx)
	if err != nil {
		return out, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	orders, err := u.orderRepo.Count(ctx)
	if err != nil {
		return out, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// total_users は管理者を含めない
	users, err := u.userRepo.CountCustomers(ctx)
	if err != nil {
		return out, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	totals, err := u.orderRepo.PaidTotals(ctx, revenueScanLimit)
	if err != nil {
		return out, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	revenue := decimal.Zero
	for _, t := range totals {
		revenue = revenue.Add(t)
	}

	out = StatsOutput{
		TotalProducts: products,
		TotalOrders:   orders,
		TotalUsers:    users,
		TotalRevenue:  revenue,
	}
	return out, nil
}

// 全注文（新しい順）
func (u *AdminUsecase) ListAllOrders(ctx context.Context) ([]model.Order, error) {
	orders, err := u.orderRepo.ListAll(ctx, adminOrderListLimit)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return orders, nil
}

// Excelエクスポート用。画面の一覧より広い範囲を取る。
func (u *AdminUsecase) ExportOrders(ctx context.Context) ([]model.Order, error) {
	orders, err := u.orderRepo.ListAll(ctx, revenueScanLimit)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return orders, nil
}
