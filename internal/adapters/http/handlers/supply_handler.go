package handlers

import (
	"procurehub/internal/core/domain"
	"procurehub/internal/core/services"
	"procurehub/internal/pkg/pagination"
	"procurehub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SupplyHandler handles inventory and order endpoints
type SupplyHandler struct {
	supplyService *services.SupplyService
}

// NewSupplyHandler creates a new supply handler
func NewSupplyHandler(supplyService *services.SupplyService) *SupplyHandler {
	return &SupplyHandler{supplyService: supplyService}
}

// StockRequest adjusts an item's stock by Delta
type StockRequest struct {
	Delta int `json:"delta"`
}

// OrderStatusRequest moves an order to Status
type OrderStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

// ListInventory lists inventory items
// @Summary List inventory
// @Tags Supply
// @Produce json
// @Security BearerAuth
// @Param supplierId query string false "Supplier filter"
// @Param lowStock query bool false "Only items at or below reorder level"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /inventory [get]
func (h *SupplyHandler) ListInventory(c *fiber.Ctx) error {
	items, err := h.supplyService.GetInventory(c.Context(), services.InventoryFilter{
		SupplierID:   c.Query("supplierId"),
		LowStockOnly: c.QueryBool("lowStock"),
	})
	if err != nil {
		return handleError(c, err, "Failed to list inventory")
	}

	return response.Success(c, "Inventory retrieved successfully", pagination.Paginate(items, pagination.GetParams(c)))
}

// UpsertInventoryItem creates or replaces one of the calling supplier's items
// @Summary Create or update inventory item
// @Tags Supply
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.InventoryInput true "Item"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /inventory [post]
func (h *SupplyHandler) UpsertInventoryItem(c *fiber.Ctx) error {
	userID, _, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.InventoryInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.SupplierID = userID

	item, err := h.supplyService.UpsertInventoryItem(c.Context(), req)
	if err != nil {
		return handleError(c, err, "Failed to save inventory item")
	}

	return response.Success(c, "Inventory item saved", item)
}

// AdjustStock changes the stock of one of the calling supplier's items
// @Summary Adjust stock
// @Tags Supply
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param body body StockRequest true "Delta"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /inventory/{id}/stock [put]
func (h *SupplyHandler) AdjustStock(c *fiber.Ctx) error {
	userID, role, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req StockRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	items, err := h.supplyService.GetInventory(c.Context(), services.InventoryFilter{SupplierID: userID})
	if err != nil {
		return handleError(c, err, "Failed to adjust stock")
	}
	owned := role == domain.RoleAdmin
	for _, i := range items {
		if i.ID == c.Params("id") {
			owned = true
			break
		}
	}
	if !owned {
		return response.Forbidden(c, "You can only adjust your own inventory")
	}

	item, err := h.supplyService.AdjustStock(c.Context(), c.Params("id"), req.Delta)
	if err != nil {
		return handleError(c, err, "Failed to adjust stock")
	}

	return response.Success(c, "Stock adjusted", item)
}

// ListOrders lists orders visible to the caller
// @Summary List orders
// @Tags Supply
// @Produce json
// @Security BearerAuth
// @Param status query string false "Comma separated statuses"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /orders [get]
func (h *SupplyHandler) ListOrders(c *fiber.Ctx) error {
	userID, role, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	filter := services.OrderFilter{Statuses: statusesOf[domain.OrderStatus](c.Query("status"))}
	switch role {
	case domain.RoleAdmin:
	case domain.RoleSupplier:
		filter.SupplierID = userID
	default:
		filter.BuyerID = userID
	}

	orders, err := h.supplyService.GetOrders(c.Context(), filter)
	if err != nil {
		return handleError(c, err, "Failed to list orders")
	}

	return response.Success(c, "Orders retrieved successfully", pagination.Paginate(orders, pagination.GetParams(c)))
}

// PlaceOrder places an order as the caller
// @Summary Place order
// @Tags Supply
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.PlaceOrderInput true "Order"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /orders [post]
func (h *SupplyHandler) PlaceOrder(c *fiber.Ctx) error {
	userID, _, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.PlaceOrderInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.BuyerID = userID

	order, err := h.supplyService.PlaceOrder(c.Context(), req)
	if err != nil {
		return handleError(c, err, "Failed to place order")
	}

	return response.Created(c, "Order placed successfully", order)
}

// UpdateOrderStatus moves an order along. Suppliers drive fulfilment; buyers may only cancel.
// @Summary Update order status
// @Tags Supply
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param body body OrderStatusRequest true "Status"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /orders/{id}/status [put]
func (h *SupplyHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	userID, role, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req OrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	order, err := h.supplyService.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err, "Failed to update order")
	}
	switch {
	case role == domain.RoleAdmin, order.SupplierID == userID:
	case order.BuyerID == userID && req.Status == domain.OrderCancelled:
	default:
		return response.Forbidden(c, "You don't have permission to change this order")
	}

	updated, err := h.supplyService.UpdateOrderStatus(c.Context(), order.ID, req.Status)
	if err != nil {
		return handleError(c, err, "Failed to update order")
	}

	return response.Success(c, "Order updated successfully", updated)
}
