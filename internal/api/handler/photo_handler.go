package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinema-app/shop-api/internal/core/ports"
)

// PhotoHandler handles CRUD for product photos.
type PhotoHandler struct {
	catalog ports.CatalogService
}

func NewPhotoHandler(catalog ports.CatalogService) *PhotoHandler {
	return &PhotoHandler{catalog: catalog}
}

func (h *PhotoHandler) bindInput(c echo.Context) (ports.PhotoInput, error) {
	var req photoRequest
	if err := c.Bind(&req); err != nil {
		return ports.PhotoInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.PhotoInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return ports.PhotoInput{ProductID: req.Product, URL: req.URL}, nil
}

// List handles GET /photos.
//
// @Summary      List photos
// @Tags         photos
// @Produce      json
// @Param        deleted  query    string  false  "Soft-delete filter: only or all"
// @Success      200      {array}  photoResponse
// @Router       /photos [get]
func (h *PhotoHandler) List(c echo.Context) error {
	filter, err := queryDeletedFilter(c)
	if err != nil {
		return err
	}
	items, err := h.catalog.ListPhotos(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	out := make([]photoResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPhotoResponse(p))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /photos/:id.
//
// @Summary      Get a photo
// @Tags         photos
// @Produce      json
// @Param        id   path      string  true  "Photo id"
// @Success      200  {object}  photoResponse
// @Failure      404  {object}  map[string]string
// @Router       /photos/{id} [get]
func (h *PhotoHandler) Get(c echo.Context) error {
	filter, err := queryDeletedFilter(c)
	if err != nil {
		return err
	}
	photo, err := h.catalog.GetPhoto(c.Request().Context(), c.Param("id"), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPhotoResponse(photo))
}

// Create handles POST /photos.
//
// @Summary      Attach a photo to a product
// @Tags         photos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      photoRequest  true  "Photo details"
// @Success      201   {object}  photoResponse
// @Failure      400   {object}  map[string]string
// @Router       /photos [post]
func (h *PhotoHandler) Create(c echo.Context) error {
	input, err := h.bindInput(c)
	if err != nil {
		return err
	}
	photo, err := h.catalog.CreatePhoto(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPhotoResponse(photo))
}

// Update handles PUT and PATCH /photos/:id.
//
// @Summary      Update a photo
// @Tags         photos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Photo id"
// @Param        body  body      photoRequest  true  "Photo details"
// @Success      200   {object}  photoResponse
// @Failure      404   {object}  map[string]string
// @Router       /photos/{id} [put]
func (h *PhotoHandler) Update(c echo.Context) error {
	input, err := h.bindInput(c)
	if err != nil {
		return err
	}
	photo, err := h.catalog.UpdatePhoto(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPhotoResponse(photo))
}

// Delete handles DELETE /photos/:id.
//
// @Summary      Soft-delete a photo
// @Tags         photos
// @Security     BearerAuth
// @Param        id  path  string  true  "Photo id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /photos/{id} [delete]
func (h *PhotoHandler) Delete(c echo.Context) error {
	if err := h.catalog.DeletePhoto(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
