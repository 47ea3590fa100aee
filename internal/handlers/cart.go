package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/middleware"
	"storefront-api/internal/models"
	"storefront-api/internal/services"
)

type CartHandler struct {
	carts *services.CartService
	resp  *Responder
}

func NewCartHandler(carts *services.CartService, resp *Responder) *CartHandler {
	return &CartHandler{carts: carts, resp: resp}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.carts.Get(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		h.resp.fail(c, err)
		return
	}
	h.resp.ok(c, http.StatusOK, cart)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if !h.resp.bind(c, &req) {
		return
	}
	// quantity is optional and defaults to one
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.carts.AddItem(c.Request.Context(), middleware.CurrentUser(c).ID, req.ProductID, req.Quantity)
	if err != nil {
		h.resp.fail(c, err)
		return
	}
	h.resp.ok(c, http.StatusOK, cart)
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req models.UpdateCartItemRequest
	if !h.resp.bind(c, &req) {
		return
	}
	cart, err := h.carts.UpdateItem(c.Request.Context(), middleware.CurrentUser(c).ID, c.Param("productId"), req.Quantity)
	if err != nil {
		h.resp.fail(c, err)
		return
	}
	h.resp.ok(c, http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	cart, err := h.carts.RemoveItem(c.Request.Context(), middleware.CurrentUser(c).ID, c.Param("productId"))
	if err != nil {
		h.resp.fail(c, err)
		return
	}
	h.resp.ok(c, http.StatusOK, cart)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.carts.Clear(c.Request.Context(), middleware.CurrentUser(c).ID); err != nil {
		h.resp.fail(c, err)
		return
	}
	h.resp.message(c, http.StatusOK, "Cart cleared", nil)
}
