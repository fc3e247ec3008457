package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinema-app/shop-api/internal/core/ports"
)

// OrderHandler handles CRUD for orders. Creation attributes the order to the
// authenticated account.
type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) bindInput(c echo.Context, accountID string) (ports.OrderInput, error) {
	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return ports.OrderInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.OrderInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return ports.OrderInput{
		AccountID:  accountID,
		ProductIDs: req.Products,
		Phone:      req.Phone,
		Address:    req.Address,
		Comment:    req.Comment,
	}, nil
}

// List handles GET /orders.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Param        deleted  query    string  false  "Soft-delete filter: only or all"
// @Success      200      {array}  orderResponse
// @Router       /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	filter, err := queryDeletedFilter(c)
	if err != nil {
		return err
	}
	items, err := h.orders.ListOrders(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	out := make([]orderResponse, 0, len(items))
	for _, o := range items {
		out = append(out, toOrderResponse(o))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /orders/:id.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  orderResponse
// @Failure      404  {object}  map[string]string
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	filter, err := queryDeletedFilter(c)
	if err != nil {
		return err
	}
	detail, err := h.orders.GetOrder(c.Request().Context(), c.Param("id"), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(detail))
}

// Create handles POST /orders.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      orderRequest  true  "Order details"
// @Success      201   {object}  orderResponse
// @Failure      400   {object}  map[string]string
// @Router       /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}
	input, err := h.bindInput(c, account.ID)
	if err != nil {
		return err
	}
	detail, err := h.orders.CreateOrder(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toOrderResponse(detail))
}

// Update handles PUT and PATCH /orders/:id.
//
// @Summary      Update an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Order id"
// @Param        body  body      orderRequest  true  "Order details"
// @Success      200   {object}  orderResponse
// @Failure      404   {object}  map[string]string
// @Router       /orders/{id} [put]
func (h *OrderHandler) Update(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}
	input, err := h.bindInput(c, account.ID)
	if err != nil {
		return err
	}
	detail, err := h.orders.UpdateOrder(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(detail))
}

// Delete handles DELETE /orders/:id.
//
// @Summary      Soft-delete an order
// @Tags         orders
// @Security     BearerAuth
// @Param        id  path  string  true  "Order id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	if err := h.orders.DeleteOrder(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
