package middleware

import (
	"errors"
	"net/http"

	"francium/internal/repository"

	"github.com/labstack/echo/v4"
)

// トークンのuser_idが実在するユーザーに解決できるかを確認する。
// roleはトークンの値ではなくDBの値を信じる。
func UserGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawID := c.Get(CtxUserIDKey)
			userID, ok := rawID.(string)
			if !ok || userID == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if errors.Is(err, repository.ErrUserNotFound) {
				//削除済み等、ユーザーに解決できないトークンは401
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			if err != nil {
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}

			c.Set(CtxUserRoleKey, user.Role)

			return next(c)
		}
	}
}
