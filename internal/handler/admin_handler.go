package handler

import (
	"net/http"

	"francium/internal/middleware"
	"francium/internal/repository"
	"francium/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/tealeg/xlsx"
)

// /admin 配下の読み取り専用API
type AdminHandler struct {
	uc *usecase.AdminUsecase
}

// DI
func NewAdminHandler(uc *usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// 認証＋管理者ガード付きでルートを登録
func (h *AdminHandler) RegisterRoutes(g *echo.Group, jwtSecret string, userRepo repository.UserRepository) {
	grp := g.Group("/admin")
	grp.Use(middleware.AuthJWT(jwtSecret))
	grp.Use(middleware.UserGuard(userRepo))
	grp.Use(middleware.AdminRoleGuard())

	grp.GET("/orders", h.listOrders)
	grp.GET("/orders/export", h.exportOrders)
	grp.GET("/stats", h.stats)
}

func (h *AdminHandler) listOrders(c echo.Context) error {
	out, err := h.uc.ListAllOrders(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) stats(c echo.Context) error {
	out, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// 全注文をxlsxでダウンロードさせる
func (h *AdminHandler) exportOrders(c echo.Context) error {
	orders, err := h.uc.ExportOrders(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create sheet"})
	}

	headers := []string{
		"ID", "UserID", "Total", "PaymentStatus", "OrderStatus",
		"RazorpayOrderID", "RazorpayPaymentID", "ShippingAddress", "CreatedAt",
	}
	headerRow := sheet.AddRow()
	for _, hd := range headers {
		headerRow.AddCell().SetValue(hd)
	}

	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetValue(o.ID)
		row.AddCell().SetValue(o.UserID)
		row.AddCell().SetValue(o.Total.String())
		row.AddCell().SetValue(string(o.PaymentStatus))
		row.AddCell().SetValue(string(o.OrderStatus))
		row.AddCell().SetValue(o.RazorpayOrderID)
		row.AddCell().SetValue(o.RazorpayPaymentID)
		row.AddCell().SetValue(o.ShippingAddress)
		row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	res := c.Response()
	res.Header().Set("Content-Disposition", "attachment; filename=orders.xlsx")
	res.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	res.WriteHeader(http.StatusOK)

	return file.Write(res)
}
