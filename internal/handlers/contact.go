package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/models"
	"storefront-api/internal/services"
)

type ContactHandler struct {
	contacts *services.ContactService
	resp     *Responder
}

func NewContactHandler(contacts *services.ContactService, resp *Responder) *ContactHandler {
	return &ContactHandler{contacts: contacts, resp: resp}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req models.CreateContactRequest
	if !h.resp.bind(c, &req) {
		return
	}
	m, err := h.contacts.Create(c.Request.Context(), req)
	if err != nil {
		h.resp.fail(c, err)
		return
	}
	h.resp.message(c, http.StatusCreated, "Your message has been received. We will get back to you soon!", m)
}

func (h *ContactHandler) List(c *gin.Context) {
	messages, err := h.contacts.List(c.Request.Context())
	if err != nil {
		h.resp.fail(c, err)
		return
	}
	h.resp.list(c, messages, len(messages))
}

func (h *ContactHandler) Get(c *gin.Context) {
	m, err := h.contacts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.resp.fail(c, err)
		return
	}
	h.resp.ok(c, http.StatusOK, m)
}

func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateContactStatusRequest
	if !h.resp.bind(c, &req) {
		return
	}
	m, err := h.contacts.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.resp.fail(c, err)
		return
	}
	h.resp.message(c, http.StatusOK, "Contact status updated", m)
}
