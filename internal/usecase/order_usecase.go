package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"francium/internal/domain/model"
	repo "francium/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	orderCurrency = "INR"
	// 一覧の固定ページサイズ
	orderListLimit = 100
)

type OrderUsecase struct {
	orderRepo repo.OrderRepository
	cartRepo  repo.CartRepository
	gateway   PaymentGateway
	idGen     IDGenerator
	clock     Clock
}

// DI
func NewOrderUsecase(
	orderRepo repo.OrderRepository,
	cartRepo repo.CartRepository,
	gateway PaymentGateway,
	idGen IDGenerator,
	clock Clock,
) *OrderUsecase {
	return &OrderUsecase{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		gateway:   gateway,
		idGen:     idGen,
		clock:     clock,
	}
}

// チェックアウトのレスポンス。フロントがゲートウェイの支払フローを
// 開くのに必要な値を返す。
type CreateOrderOutput struct {
	OrderID         string `json:"order_id"`
	RazorpayOrderID string `json:"razorpay_order_id"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	Key             string `json:"key"`
}

type VerifyPaymentInput struct {
	RazorpayOrderID   string
	RazorpayPaymentID string
	RazorpaySignature string
}

// 署名が不正でもHTTPエラーにはせず、この形で返す。
// フロントが「支払失敗」画面を出せるようにするため。
type VerifyPaymentOutput struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// CreateOrder はカートを注文に変換してゲートウェイに引き渡す。
// カートは支払確認前にここで空にする（支払が失敗しても戻さない）。
func (u *OrderUsecase) CreateOrder(ctx context.Context, userID string, shippingAddress string) (CreateOrderOutput, error) {
	var out CreateOrderOutput

	if userID == "" {
		return out, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(shippingAddress) == "" {
		return out, NewHTTPError(http.StatusBadRequest, "shipping_address is required")
	}

	// カート取得。無い/空なら注文は作らない。
	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return out, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}
	if err != nil {
		return out, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(cart.Items) == 0 {
		return out, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}

	orderID := u.idGen.NewID()

	// 金額は最小通貨単位（パイサ）に変換してゲートウェイへ
	amount := cart.Total.Mul(decimal.NewFromInt(100)).IntPart()

	gwOrder, err := u.gateway.CreateOrder(ctx, amount, orderCurrency, orderID)
	if err != nil {
		//ゲートウェイ障害はバリデーションエラーと区別できるようにする
		return out, NewHTTPError(http.StatusBadGateway, "payment gateway unavailable")
	}

	// カート明細のスナップショットで注文を作成
	now := u.clock.Now()
	items := make([]model.OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, model.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	order := model.Order{
		ID:              orderID,
		UserID:          userID,
		Items:           items,
		Total:           cart.Total,
		PaymentStatus:   model.PaymentStatusPending,
		OrderStatus:     model.OrderStatusPlaced,
		RazorpayOrderID: gwOrder.ID,
		ShippingAddress: strings.TrimSpace(shippingAddress),
		CreatedAt:       now,
	}

	if err := u.orderRepo.Create(ctx, &order); err != nil {
		return out, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// カートを空にする（明細なし・合計0）
	cart.Items = []model.CartItem{}
	cart.Total = decimal.Zero
	cart.UpdatedAt = now
	if err := u.cartRepo.Save(ctx, &cart); err != nil {
		return out, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out = CreateOrderOutput{
		OrderID:         order.ID,
		RazorpayOrderID: gwOrder.ID,
		Amount:          gwOrder.Amount,
		Currency:        gwOrder.Currency,
		Key:             u.gateway.KeyID(),
	}
	return out, nil
}

// VerifyPayment は支払確認。署名が正しいときだけ
// payment_status=paid / order_status=processing に進める。
// 2回呼ばれても同じ終端値を書くだけなのでそのまま許す。
func (u *OrderUsecase) VerifyPayment(ctx context.Context, userID string, in VerifyPaymentInput) (VerifyPaymentOutput, error) {
	if userID == "" {
		return VerifyPaymentOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.RazorpayOrderID == "" || in.RazorpayPaymentID == "" || in.RazorpaySignature == "" {
		return VerifyPaymentOutput{}, NewHTTPError(http.StatusBadRequest, "missing payment fields")
	}

	if !u.gateway.VerifySignature(in.RazorpayOrderID, in.RazorpayPaymentID, in.RazorpaySignature) {
		return VerifyPaymentOutput{
			Status:  "failure",
			Message: "payment verification failed",
		}, nil
	}

	err := u.orderRepo.MarkPaid(ctx, in.RazorpayOrderID, userID, in.RazorpayPaymentID)
	if errors.Is(err, repo.ErrNotFound) {
		// 署名は正しいが本人の注文が見つからない＝他人の注文IDなど
		return VerifyPaymentOutput{
			Status:  "failure",
			Message: "payment verification failed",
		}, nil
	}
	if err != nil {
		return VerifyPaymentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return VerifyPaymentOutput{
		Status:  "success",
		Message: "payment verified successfully",
	}, nil
}

// 自分の注文一覧（新しい順）
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID string) ([]model.Order, error) {
	if userID == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := u.orderRepo.ListByUserID(ctx, userID, orderListLimit)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return orders, nil
}
