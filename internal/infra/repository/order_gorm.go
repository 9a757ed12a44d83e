package repository

import (
	"context"

	"francium/internal/domain/model"
	repo "francium/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

// DI
func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// 注文と明細をまとめて作成
func (r *OrderGormRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// 自分の注文を新しい順に返す
func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

// 全注文を新しい順に返す（管理者用）
func (r *OrderGormRepository) ListAll(ctx context.Context, limit int) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at desc").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

// razorpay_order_id と user_id の両方で絞る。
// 他アカウントの注文を書き換えられないようにするため。
func (r *OrderGormRepository) MarkPaid(ctx context.Context, razorpayOrderID string, userID string, razorpayPaymentID string) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("razorpay_order_id = ? AND user_id = ?", razorpayOrderID, userID).
		Updates(map[string]interface{}{
			"payment_status":      model.PaymentStatusPaid,
			"order_status":        model.OrderStatusProcessing,
			"razorpay_payment_id": razorpayPaymentID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// 支払済み注文のtotalを走査上限つきで返す。
// 集計はDB側のSUMではなく件数上限つきの走査（上限を超えた分は含まれない）。
func (r *OrderGormRepository) PaidTotals(ctx context.Context, limit int) ([]decimal.Decimal, error) {
	var totals []decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("payment_status = ?", model.PaymentStatusPaid).
		Limit(limit).
		Pluck("total", &totals).Error
	if err != nil {
		return []decimal.Decimal{}, err
	}
	return totals, nil
}
