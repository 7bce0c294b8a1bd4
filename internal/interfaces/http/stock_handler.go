package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

// StockHandler consultas de stock a nivel empresa y ajustes de umbrales (protegido).
type StockHandler struct {
	uc *inventory.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Summary godoc
// @Summary      Rollup de stock por artículo
// @Description  Cantidad y valor totales por artículo a través de todas las bodegas.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockSummaryResponse
// @Router       /api/stock/summary [get]
func (h *StockHandler) Summary(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	out, err := h.uc.Summary(c.Context(), companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Alerts godoc
// @Summary      Alertas de stock bajo
// @Description  Filas con cantidad <= mínimo, ordenadas por severidad y faltante.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockAlertDTO
// @Router       /api/stock/alerts [get]
func (h *StockHandler) Alerts(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	out, err := h.uc.Alerts(c.Context(), companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(out), "alerts": out})
}

// UpdateSettings godoc
// @Summary      Configurar umbrales y ubicación de un agregado
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Param        warehouse_id  path  string  true  "ID de la bodega"
// @Param        article_id    path  string  true  "ID del artículo"
// @Param        body  body  dto.UpdateStockSettingsRequest  true  "Umbrales y ubicación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{warehouse_id}/stock/{article_id}/settings [put]
func (h *StockHandler) UpdateSettings(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	warehouseID := c.Params("warehouse_id")
	articleID := c.Params("article_id")
	var in dto.UpdateStockSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateSettings(c.Context(), companyID, warehouseID, articleID, in); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo o bodega no encontrado"})
		}
		if err == domain.ErrCrossTenantReference {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el recurso pertenece a otra empresa"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
