package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/apperrors"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success     bool     `json:"success"`
	Data        any      `json:"data,omitempty"`
	Message     string   `json:"message,omitempty"`
	Error       string   `json:"error,omitempty"`
	Fields      []string `json:"fields,omitempty"`
	Count       *int     `json:"count,omitempty"`
	TotalCount  *int64   `json:"totalCount,omitempty"`
	TotalPages  *int     `json:"totalPages,omitempty"`
	CurrentPage *int     `json:"currentPage,omitempty"`
}

// Responder writes envelopes. In production error detail is withheld.
type Responder struct {
	production bool
}

func NewResponder(production bool) *Responder {
	return &Responder{production: production}
}

func (r *Responder) ok(c *gin.Context, status int, data any) {
	c.JSON(status, Response{Success: true, Data: data})
}

func (r *Responder) list(c *gin.Context, data any, count int) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data, Count: &count})
}

func (r *Responder) message(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func (r *Responder) fail(c *gin.Context, err error) {
	status := apperrors.StatusCode(err)
	resp := Response{
		Success: false,
		Message: apperrors.PublicMessage(err),
		Fields:  apperrors.FieldsOf(err),
	}
	if status >= http.StatusInternalServerError {
		log.Printf("[API] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		if !r.production {
			resp.Error = err.Error()
		}
	}
	c.AbortWithStatusJSON(status, resp)
}

// bind decodes a JSON body, reporting malformed input as a validation error.
func (r *Responder) bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		r.fail(c, apperrors.Validation("Invalid request body: "+err.Error()))
		return false
	}
	return true
}
