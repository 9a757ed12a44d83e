package server

import (
	"francium/internal/config"
	"francium/internal/handler"
	"francium/internal/repository"

	"github.com/labstack/echo/v4"
)

// すべて /api 配下に載せる
func RegisterRoutes(
	e *echo.Echo,
	cfg config.Config,
	userRepo repository.UserRepository,
	authH *handler.AuthHandler,
	productH *handler.ProductHandler,
	adminProductH *handler.AdminProductHandler,
	cartH *handler.CartHandler,
	orderH *handler.OrderHandler,
	adminH *handler.AdminHandler,
) {
	api := e.Group("/api")

	//公開
	authH.RegisterRoutes(api)
	productH.RegisterRoutes(api)

	//要ログイン
	cartH.RegisterRoutes(api, cfg.JWTSecret, userRepo)
	orderH.RegisterRoutes(api, cfg.JWTSecret, userRepo)

	//管理者のみ
	adminProductH.RegisterRoutes(api, cfg.JWTSecret, userRepo)
	adminH.RegisterRoutes(api, cfg.JWTSecret, userRepo)
}
