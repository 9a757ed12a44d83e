package repository

import (
	"context"

	"francium/internal/domain/model"
	"github.com/shopspring/decimal"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	//新しい順
	ListByUserID(ctx context.Context, userID string, limit int) ([]model.Order, error)
	//管理者用の注文一覧（新しい順）
	ListAll(ctx context.Context, limit int) ([]model.Order, error)
	// 決済ゲートウェイの注文IDとユーザーIDの両方で照合して支払済みにする。
	// 他人の注文は更新できない。
	MarkPaid(ctx context.Context, razorpayOrderID string, userID string, razorpayPaymentID string) error

	Count(ctx context.Context) (int64, error)
	//支払済み注文の合計金額（走査上限つき）
	PaidTotals(ctx context.Context, limit int) ([]decimal.Decimal, error)
}
