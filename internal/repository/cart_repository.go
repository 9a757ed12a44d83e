package repository

import (
	"context"

	"francium/internal/domain/model"
)

// カートはユーザーIDをキーに丸ごと差し替える（明細も含めて保存）。
type CartRepository interface {
	FindByUserID(ctx context.Context, userID string) (model.Cart, error)
	// 無ければ作成、あれば明細ごと置き換えるupsert
	Save(ctx context.Context, cart *model.Cart) error
}
