package handler

import (
	"net/http"

	"francium/internal/middleware"
	"francium/internal/repository"
	"francium/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 商品の作成/更新/削除（管理者のみ）
type AdminProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewAdminProductHandler(uc *usecase.ProductUsecase) *AdminProductHandler {
	return &AdminProductHandler{uc: uc}
}

// 認証＋管理者ガード付きでルートを登録
func (h *AdminProductHandler) RegisterRoutes(g *echo.Group, jwtSecret string, userRepo repository.UserRepository) {
	grp := g.Group("/products")
	grp.Use(middleware.AuthJWT(jwtSecret))
	grp.Use(middleware.UserGuard(userRepo))
	grp.Use(middleware.AdminRoleGuard())

	grp.POST("", h.create)
	grp.PUT("/:id", h.update)
	grp.DELETE("/:id", h.delete)
}

func (h *AdminProductHandler) create(c echo.Context) error {
	var req usecase.ProductInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Create(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) update(c echo.Context) error {
	var req usecase.ProductInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "product deleted successfully"})
}
