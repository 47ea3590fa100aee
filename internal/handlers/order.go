package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/middleware"
	"storefront-api/internal/models"
	"storefront-api/internal/services"
)

type OrderHandler struct {
	orders *services.OrderService
	resp   *Responder
}

func NewOrderHandler(orders *services.OrderService, resp *Responder) *OrderHandler {
	return &OrderHandler{orders: orders, resp: resp}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if !h.resp.bind(c, &req) {
		return
	}
	order, err := h.orders.Place(c.Request.Context(), middleware.CurrentUser(c).ID, &req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		h.resp.fail(c, err)
		return
	}
	h.resp.ok(c, http.StatusCreated, order)
}

func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	orders, err := h.orders.ListForUser(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		h.resp.fail(c, err)
		return
	}
	h.resp.list(c, orders, len(orders))
}

func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	orders, err := h.orders.ListAll(c.Request.Context())
	if err != nil {
		h.resp.fail(c, err)
		return
	}
	h.resp.list(c, orders, len(orders))
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orders.Get(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		h.resp.fail(c, err)
		return
	}
	h.resp.ok(c, http.StatusOK, order)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if !h.resp.bind(c, &req) {
		return
	}
	order, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.resp.fail(c, err)
		return
	}
	h.resp.ok(c, http.StatusOK, order)
}
