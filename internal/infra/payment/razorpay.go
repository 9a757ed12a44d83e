package payment

import (
	"context"
	"errors"

	"francium/internal/usecase"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

// ゲートウェイ側の注文IDが返ってこなかった等
var ErrBadGatewayResponse = errors.New("unexpected gateway response")

type RazorpayGateway struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
}

// DI
func NewRazorpayGateway(keyID string, keySecret string, timeoutSec int64) *RazorpayGateway {
	client := razorpay.NewClient(keyID, keySecret)
	//外部呼び出しなのでタイムアウトを必ず設定する（秒）
	client.SetTimeout(int16(timeoutSec))

	return &RazorpayGateway{
		client:    client,
		keyID:     keyID,
		keySecret: keySecret,
	}
}

// Razorpay側に注文を作る。amountはパイサ。
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, currency string, receipt string) (usecase.GatewayOrder, error) {
	data := map[string]interface{}{
		"amount":          amount,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return usecase.GatewayOrder{}, err
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return usecase.GatewayOrder{}, ErrBadGatewayResponse
	}

	return usecase.GatewayOrder{
		ID:       id,
		Amount:   amount,
		Currency: currency,
	}, nil
}

// 支払確認の署名チェック（HMAC-SHA256）
func (g *RazorpayGateway) VerifySignature(orderID string, paymentID string, signature string) bool {
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	return utils.VerifyPaymentSignature(params, signature, g.keySecret)
}

func (g *RazorpayGateway) KeyID() string {
	return g.keyID
}
