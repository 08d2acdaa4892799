package repository

import (
	"app/internal/domain/model"
	"context"
)

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。見つからなければnil, nil。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//メールからユーザーを1件取得する。見つからなければnil, nil。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// 最終ログイン時刻などの更新
	Update(ctx context.Context, user *model.User) error
}
