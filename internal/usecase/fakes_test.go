package usecase_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"francium/internal/domain/model"
	repo "francium/internal/repository"
	"francium/internal/usecase"

	"github.com/shopspring/decimal"
)

// =====================
// テスト用のインメモリ実装
// =====================

type seqIDGen struct{ n int }

func (g *seqIDGen) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type memCartRepo struct {
	carts map[string]model.Cart
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: map[string]model.Cart{}}
}

func (r *memCartRepo) FindByUserID(ctx context.Context, userID string) (model.Cart, error) {
	c, ok := r.carts[userID]
	if !ok {
		return model.Cart{}, repo.ErrNotFound
	}
	return c, nil
}

func (r *memCartRepo) Save(ctx context.Context, cart *model.Cart) error {
	items := make([]model.CartItem, len(cart.Items))
	copy(items, cart.Items)
	saved := *cart
	saved.Items = items
	r.carts[cart.UserID] = saved
	return nil
}

type memProductRepo struct {
	products map[string]model.Product
}

func newMemProductRepo(products ...model.Product) *memProductRepo {
	m := &memProductRepo{products: map[string]model.Product{}}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (r *memProductRepo) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	out := []model.Product{}
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *memProductRepo) FindByID(ctx context.Context, id string) (model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (r *memProductRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	r.products[p.ID] = p
	return p, nil
}

func (r *memProductRepo) Update(ctx context.Context, p model.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return repo.ErrNotFound
	}
	r.products[p.ID] = p
	return nil
}

func (r *memProductRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *memProductRepo) CountByCategory(ctx context.Context) ([]repo.CategoryCount, error) {
	byCat := map[string]int64{}
	for _, p := range r.products {
		byCat[p.Category]++
	}
	out := []repo.CategoryCount{}
	for name, n := range byCat {
		out = append(out, repo.CategoryCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}

type memOrderRepo struct {
	orders []model.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{}
}

func (r *memOrderRepo) Create(ctx context.Context, order *model.Order) error {
	r.orders = append(r.orders, *order)
	return nil
}

func (r *memOrderRepo) ListByUserID(ctx context.Context, userID string, limit int) ([]model.Order, error) {
	out := []model.Order{}
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memOrderRepo) ListAll(ctx context.Context, limit int) ([]model.Order, error) {
	out := make([]model.Order, len(r.orders))
	copy(out, r.orders)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memOrderRepo) MarkPaid(ctx context.Context, razorpayOrderID string, userID string, razorpayPaymentID string) error {
	for i := range r.orders {
		if r.orders[i].RazorpayOrderID == razorpayOrderID && r.orders[i].UserID == userID {
			r.orders[i].PaymentStatus = model.PaymentStatusPaid
			r.orders[i].OrderStatus = model.OrderStatusProcessing
			r.orders[i].RazorpayPaymentID = razorpayPaymentID
			return nil
		}
	}
	return repo.ErrNotFound
}

func (r *memOrderRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *memOrderRepo) PaidTotals(ctx context.Context, limit int) ([]decimal.Decimal, error) {
	out := []decimal.Decimal{}
	for _, o := range r.orders {
		if o.PaymentStatus == model.PaymentStatusPaid {
			out = append(out, o.Total)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// 本物のゲートウェイと同じ署名方式（HMAC-SHA256のhex）で動くフェイク
type fakeGateway struct {
	secret    string
	createErr error
	created   int
}

func (g *fakeGateway) CreateOrder(ctx context.Context, amount int64, currency string, receipt string) (usecase.GatewayOrder, error) {
	if g.createErr != nil {
		return usecase.GatewayOrder{}, g.createErr
	}
	g.created++
	return usecase.GatewayOrder{
		ID:       fmt.Sprintf("rzp_order_%d", g.created),
		Amount:   amount,
		Currency: currency,
	}, nil
}

func (g *fakeGateway) VerifySignature(orderID string, paymentID string, signature string) bool {
	expected := signPayment(g.secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (g *fakeGateway) KeyID() string { return "rzp_test_key" }

func signPayment(secret string, orderID string, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
