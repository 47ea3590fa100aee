package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/middleware"
	"storefront-api/internal/models"
	"storefront-api/internal/services"
)

type AuthHandler struct {
	users *services.UserService
	resp  *Responder
}

func NewAuthHandler(users *services.UserService, resp *Responder) *AuthHandler {
	return &AuthHandler{users: users, resp: resp}
}

// sessionResponse flattens an account and its token for the client.
type sessionResponse struct {
	ID      string          `json:"_id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Phone   string          `json:"phone,omitempty"`
	Address *models.Address `json:"address,omitempty"`
	IsAdmin bool            `json:"isAdmin"`
	Token   string          `json:"token"`
}

func newSessionResponse(s *services.Session) sessionResponse {
	return sessionResponse{
		ID:      s.User.ID,
		Name:    s.User.Name,
		Email:   s.User.Email,
		Phone:   s.User.Phone,
		Address: s.User.Address,
		IsAdmin: s.User.IsAdmin,
		Token:   s.Token,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !h.resp.bind(c, &req) {
		return
	}
	session, err := h.users.Register(c.Request.Context(), req)
	if err != nil {
		h.resp.fail(c, err)
		return
	}
	h.resp.ok(c, http.StatusCreated, newSessionResponse(session))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !h.resp.bind(c, &req) {
		return
	}
	session, err := h.users.Login(c.Request.Context(), req)
	if err != nil {
		h.resp.fail(c, err)
		return
	}
	h.resp.ok(c, http.StatusOK, newSessionResponse(session))
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.users.Me(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		h.resp.fail(c, err)
		return
	}
	h.resp.ok(c, http.StatusOK, user)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if !h.resp.bind(c, &req) {
		return
	}
	session, err := h.users.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c).ID, req)
	if err != nil {
		h.resp.fail(c, err)
		return
	}
	h.resp.ok(c, http.StatusOK, newSessionResponse(session))
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.resp.fail(c, err)
		return
	}
	h.resp.list(c, users, len(users))
}
