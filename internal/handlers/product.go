package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"storefront-api/internal/apperrors"
	"storefront-api/internal/models"
	"storefront-api/internal/services"
)

type ProductHandler struct {
	catalog *services.CatalogService
	resp    *Responder
}

func NewProductHandler(catalog *services.CatalogService, resp *Responder) *ProductHandler {
	return &ProductHandler{catalog: catalog, resp: resp}
}

// GetProducts serves the filtered, sorted and paginated catalog.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	q := models.ParseProductQuery(c.Request.URL.Query())

	page, err := h.catalog.List(c.Request.Context(), q)
	if err != nil {
		h.resp.fail(c, err)
		return
	}

	count := len(page.Products)
	c.JSON(http.StatusOK, Response{
		Success:     true,
		Data:        page.Products,
		Count:       &count,
		TotalCount:  &page.TotalCount,
		TotalPages:  &page.TotalPages,
		CurrentPage: &page.CurrentPage,
	})
}

func (h *ProductHandler) GetNewArrivals(c *gin.Context) {
	products, err := h.catalog.NewArrivals(c.Request.Context())
	if err != nil {
		h.resp.fail(c, err)
		return
	}
	h.resp.list(c, products, len(products))
}

func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		h.resp.fail(c, err)
		return
	}
	h.resp.ok(c, http.StatusOK, categories)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.resp.fail(c, err)
		return
	}
	h.resp.ok(c, http.StatusOK, h.catalog.View(p))
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var p models.Product
	if !h.resp.bind(c, &p) {
		return
	}
	if err := h.catalog.Create(c.Request.Context(), &p); err != nil {
		h.resp.fail(c, err)
		return
	}
	h.resp.ok(c, http.StatusCreated, h.catalog.View(&p))
}

// UpdateProduct applies the body on top of the stored product, so fields
// left out of the request keep their values. Stock is written only when the
// body names it.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	p, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		h.resp.fail(c, err)
		return
	}
	// the body is read twice: once onto the product, once to see which
	// keys were sent
	if err := c.ShouldBindBodyWith(p, binding.JSON); err != nil {
		h.resp.fail(c, apperrors.Validation("Invalid request body: "+err.Error()))
		return
	}
	var sent map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&sent, binding.JSON); err != nil {
		h.resp.fail(c, apperrors.Validation("Invalid request body: "+err.Error()))
		return
	}
	_, setStock := sent["stock"]
	p.ID = id

	if err := h.catalog.Update(c.Request.Context(), p, setStock); err != nil {
		h.resp.fail(c, err)
		return
	}
	h.resp.ok(c, http.StatusOK, h.catalog.View(p))
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.resp.fail(c, err)
		return
	}
	h.resp.message(c, http.StatusOK, "Product deleted successfully", nil)
}

func (h *ProductHandler) DeleteProducts(c *gin.Context) {
	var req models.BulkDeleteRequest
	if !h.resp.bind(c, &req) {
		return
	}
	n, err := h.catalog.DeleteMany(c.Request.Context(), req.IDs)
	if err != nil {
		h.resp.fail(c, err)
		return
	}
	h.resp.message(c, http.StatusOK, "Products deleted successfully", gin.H{"deletedCount": n})
}
