package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/casa-moreno/catalog-system/internal/core/ports"
)

type ProductHandler struct {
	productService ports.ProductService
}

func NewProductHandler(productService ports.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create adds a catalog entry, scraping missing fields from the listing.
//
// @Summary      Create a product from a listing
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  productResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Security     BearerAuth
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.productService.Create(c.Request().Context(), principal, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toProductResponse(product))
}

// GetByID returns a single product. Public.
//
// @Summary      Find a product by id
// @Tags         products
// @Produce      json
// @Param        id  path      string  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [get]
func (h *ProductHandler) GetByID(c echo.Context) error {
	product, err := h.productService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// FindByCategory returns one page of a category listing. Public.
//
// @Summary      Find products by category
// @Tags         products
// @Produce      json
// @Param        category   query     string  true   "Category"
// @Param        page       query     int     false  "Page (1-based)"
// @Param        page_size  query     int     false  "Page size"
// @Success      200        {object}  ports.ProductPage
// @Router       /products/find-by-category [get]
func (h *ProductHandler) FindByCategory(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))

	result, err := h.productService.FindByCategory(c.Request().Context(), c.QueryParam("category"), page, pageSize)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// ListAll returns the whole catalog. Admin only.
//
// @Summary      List all products
// @Tags         products
// @Produce      json
// @Success      200  {array}   productResponse
// @Failure      403  {object}  map[string]string
// @Security     BearerAuth
// @Router       /products/list-all [get]
func (h *ProductHandler) ListAll(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	products, err := h.productService.ListAll(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponses(products))
}

// ListPromotional returns products flagged as promotional. Public.
//
// @Summary      List promotional products
// @Tags         products
// @Produce      json
// @Success      200  {array}  productResponse
// @Router       /products/promotional [get]
func (h *ProductHandler) ListPromotional(c echo.Context) error {
	products, err := h.productService.ListPromotional(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponses(products))
}

// ListCategories returns the distinct category names. Public.
//
// @Summary      List categories
// @Tags         products
// @Produce      json
// @Success      200  {array}  string
// @Router       /products/categories [get]
func (h *ProductHandler) ListCategories(c echo.Context) error {
	categories, err := h.productService.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// Update applies a partial product update. Admin only.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Product id"
// @Param        body  body      updateProductRequest  true  "Fields to update"
// @Success      200   {object}  productResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	product, err := h.productService.Update(c.Request().Context(), principal, req.toInput(c.Param("id")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Delete removes a product. Admin only.
//
// @Summary      Delete a product
// @Tags         products
// @Param        id  path  string  true  "Product id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.productService.Delete(c.Request().Context(), principal, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SetPromotional flips the promotional flag. Admin only.
//
// @Summary      Set a product's promotional flag
// @Tags         products
// @Param        id      path   string  true  "Product id"
// @Param        status  query  bool    true  "Promotional status"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /products/{id}/promotional [patch]
func (h *ProductHandler) SetPromotional(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	status, err := strconv.ParseBool(c.QueryParam("status"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "status must be true or false")
	}

	if err := h.productService.SetPromotional(c.Request().Context(), principal, c.Param("id"), status); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// StartSync submits a full catalog sync and returns the task id immediately.
//
// @Summary      Start a full catalog sync
// @Tags         products
// @Produce      json
// @Success      202  {object}  syncSubmitResponse
// @Failure      403  {object}  map[string]string
// @Security     BearerAuth
// @Router       /products/sync [post]
func (h *ProductHandler) StartSync(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	taskID, err := h.productService.StartCatalogSync(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, syncSubmitResponse{TaskID: taskID})
}

// SyncStatus polls a sync task. A terminal status is delivered exactly once;
// polling the same id again returns NOT_FOUND.
//
// @Summary      Poll a catalog sync task
// @Tags         products
// @Produce      json
// @Param        taskId  path      string  true  "Task id"
// @Success      200     {object}  ports.TaskStatus
// @Failure      403     {object}  map[string]string
// @Security     BearerAuth
// @Router       /products/sync/{taskId} [get]
func (h *ProductHandler) SyncStatus(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	status, err := h.productService.SyncStatus(principal, c.Param("taskId"))
	if err != nil {
		return err
	}

	code := http.StatusOK
	if status.State == ports.TaskNotFound {
		code = http.StatusNotFound
	}
	return c.JSON(code, status)
}
