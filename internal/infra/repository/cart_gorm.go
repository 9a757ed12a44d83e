package repository

import (
	"context"
	"errors"

	"francium/internal/domain/model"
	repo "francium/internal/repository"

	"gorm.io/gorm"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// ユーザーIDでカートを取得（明細も一緒に）
func (r *CartGormRepository) FindByUserID(ctx context.Context, userID string) (model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// カート本体をupsertし、明細は全部消してから入れ直す。
// 丸ごと差し替えなので途中状態が見えないようにトランザクションで囲む。
func (r *CartGormRepository) Save(ctx context.Context, cart *model.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//カート行のupsert
		res := tx.Model(&model.Cart{}).Where("id = ?", cart.ID).Updates(map[string]interface{}{
			"user_id":    cart.UserID,
			"total":      cart.Total,
			"updated_at": cart.UpdatedAt,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			row := model.Cart{
				ID:        cart.ID,
				UserID:    cart.UserID,
				Total:     cart.Total,
				UpdatedAt: cart.UpdatedAt,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		//明細の入れ直し
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		for i := range cart.Items {
			cart.Items[i].ID = 0
			cart.Items[i].CartID = cart.ID
		}
		if len(cart.Items) > 0 {
			if err := tx.Create(&cart.Items).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
