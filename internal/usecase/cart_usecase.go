package usecase

import (
	"context"
	"errors"
	"net/http"

	"francium/internal/domain/model"
	repo "francium/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジックです。
type CartUsecase struct {
	cartRepo    repo.CartRepository
	productRepo repo.ProductRepository
	idGen       IDGenerator
	clock       Clock
}

// DI
func NewCartUsecase(
	cartRepo repo.CartRepository,
	productRepo repo.ProductRepository,
	idGen IDGenerator,
	clock Clock,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		idGen:       idGen,
		clock:       clock,
	}
}

// GetCart はカート取得（無ければ空のカートを作って保存してから返す）。
// 初回のGETでも書き込みが1回発生する。
func (u *CartUsecase) GetCart(ctx context.Context, userID string) (model.Cart, error) {
	if userID == "" {
		return model.Cart{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return u.createEmptyCart(ctx, userID)
	}
	if err != nil {
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return cart, nil
}

// AddItem はカートに追加（同一商品は数量加算、新規明細は現在価格をスナップショット）。
func (u *CartUsecase) AddItem(ctx context.Context, userID string, productID string, quantity int64) (model.Cart, error) {
	if userID == "" {
		return model.Cart{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID == "" {
		return model.Cart{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	// 0や負の数量は受け付けない
	if quantity < 1 {
		return model.Cart{}, NewHTTPError(http.StatusBadRequest, "quantity must be a positive integer")
	}

	// 商品チェック
	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Cart{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// カート取得（無ければ作成）
	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		cart = model.Cart{
			ID:     u.idGen.NewID(),
			UserID: userID,
			Items:  []model.CartItem{},
			Total:  decimal.Zero,
		}
	} else if err != nil {
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 既存明細があれば数量加算、無ければ現在価格で新規行
	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, model.CartItem{
			ProductID: productID,
			Quantity:  quantity,
			Price:     p.Price,
		})
	}

	cart.Total = recomputeTotal(cart.Items)
	cart.UpdatedAt = u.clock.Now()

	if err := u.cartRepo.Save(ctx, &cart); err != nil {
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return cart, nil
}

// RemoveItem は明細削除。カートに無い商品の削除は成功扱い（何も変わらない）。
func (u *CartUsecase) RemoveItem(ctx context.Context, userID string, productID string) (model.Cart, error) {
	if userID == "" {
		return model.Cart{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID == "" {
		return model.Cart{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Cart{}, NewHTTPError(http.StatusNotFound, "cart not found")
	}
	if err != nil {
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	kept := make([]model.CartItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	cart.Items = kept
	cart.Total = recomputeTotal(cart.Items)
	cart.UpdatedAt = u.clock.Now()

	if err := u.cartRepo.Save(ctx, &cart); err != nil {
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return cart, nil
}

func (u *CartUsecase) createEmptyCart(ctx context.Context, userID string) (model.Cart, error) {
	cart := model.Cart{
		ID:        u.idGen.NewID(),
		UserID:    userID,
		Items:     []model.CartItem{},
		Total:     decimal.Zero,
		UpdatedAt: u.clock.Now(),
	}
	if err := u.cartRepo.Save(ctx, &cart); err != nil {
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return cart, nil
}

// total = Σ quantity×price を毎回計算し直す
func recomputeTotal(items []model.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return total
}
