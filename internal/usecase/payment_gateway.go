package usecase

import "context"

// 決済ゲートウェイ側で作った注文
type GatewayOrder struct {
	ID       string
	Amount   int64 // 最小通貨単位（パイサ）
	Currency string
}

// 決済ゲートウェイとのやり取りを約束
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency string, receipt string) (GatewayOrder, error)
	// (orderID, paymentID) に対する署名を共有シークレットで検証する
	VerifySignature(orderID string, paymentID string, signature string) bool
	// フロントのチェックアウトに渡す公開キー
	KeyID() string
}
