package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinema-app/shop-api/internal/core/ports"
)

// CategoryHandler handles CRUD for product categories.
type CategoryHandler struct {
	catalog ports.CatalogService
}

func NewCategoryHandler(catalog ports.CatalogService) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

func (h *CategoryHandler) bindInput(c echo.Context) (ports.CategoryInput, error) {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return ports.CategoryInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.CategoryInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return ports.CategoryInput{Name: req.Name, Description: req.Description}, nil
}

// List handles GET /categories.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Param        deleted  query    string  false  "Soft-delete filter: only or all"
// @Success      200      {array}  categoryResponse
// @Router       /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	filter, err := queryDeletedFilter(c)
	if err != nil {
		return err
	}
	items, err := h.catalog.ListCategories(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	out := make([]categoryResponse, 0, len(items))
	for _, cat := range items {
		out = append(out, toCategoryResponse(cat))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /categories/:id.
//
// @Summary      Get a category
// @Tags         categories
// @Produce      json
// @Param        id   path      string  true  "Category id"
// @Success      200  {object}  categoryResponse
// @Failure      404  {object}  map[string]string
// @Router       /categories/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	filter, err := queryDeletedFilter(c)
	if err != nil {
		return err
	}
	cat, err := h.catalog.GetCategory(c.Request().Context(), c.Param("id"), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCategoryResponse(cat))
}

// Create handles POST /categories.
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      categoryRequest  true  "Category details"
// @Success      201   {object}  categoryResponse
// @Failure      400   {object}  map[string]string
// @Router       /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	input, err := h.bindInput(c)
	if err != nil {
		return err
	}
	cat, err := h.catalog.CreateCategory(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCategoryResponse(cat))
}

// Update handles PUT and PATCH /categories/:id.
//
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Category id"
// @Param        body  body      categoryRequest  true  "Category details"
// @Success      200   {object}  categoryResponse
// @Failure      404   {object}  map[string]string
// @Router       /categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	input, err := h.bindInput(c)
	if err != nil {
		return err
	}
	cat, err := h.catalog.UpdateCategory(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCategoryResponse(cat))
}

// Delete handles DELETE /categories/:id.
//
// @Summary      Soft-delete a category
// @Tags         categories
// @Security     BearerAuth
// @Param        id  path  string  true  "Category id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	if err := h.catalog.DeleteCategory(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
