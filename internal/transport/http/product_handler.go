package http

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/domain"
	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/service"
	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/util"
)

type ProductHandler struct {
	products *service.ProductService
}

func RegisterProducts(e *echo.Echo, auth *service.AuthService, products *service.ProductService) {
	handler := &ProductHandler{products: products}

	group := e.Group("/api/v1/products", RequireAuth(auth))
	group.POST("", handler.create)
	group.GET("", handler.list)
	group.GET("/:id", handler.get)
	group.PATCH("/:id", handler.update)
	group.DELETE("/:id", handler.remove)
}

func (h *ProductHandler) create(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	input := service.ProductInput{
		Name:        c.FormValue("name"),
		SKU:         c.FormValue("sku"),
		Category:    c.FormValue("category"),
		Quantity:    c.FormValue("quantity"),
		Price:       c.FormValue("price"),
		Description: c.FormValue("description"),
	}

	image, closeImage, err := formImage(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid image upload"))
	}
	if closeImage != nil {
		defer closeImage()
	}
	input.Image = image

	product, err := h.products.Create(c.Request().Context(), user.ID, input)
	if err != nil {
		return writeProductError(c, err)
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) list(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	categories := c.QueryParams()["category"]
	products, err := h.products.List(c.Request().Context(), user.ID, categories)
	if err != nil {
		return writeProductError(c, err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) get(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid product id"))
	}

	product, err := h.products.Get(c.Request().Context(), user.ID, productID)
	if err != nil {
		return writeProductError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) update(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid product id"))
	}

	input := service.ProductUpdateInput{
		Name:        formValuePtr(c, "name"),
		Category:    formValuePtr(c, "category"),
		Quantity:    formValuePtr(c, "quantity"),
		Price:       formValuePtr(c, "price"),
		Description: formValuePtr(c, "description"),
	}

	image, closeImage, err := formImage(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid image upload"))
	}
	if closeImage != nil {
		defer closeImage()
	}
	input.Image = image

	product, err := h.products.Update(c.Request().Context(), user.ID, productID, input)
	if err != nil {
		return writeProductError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) remove(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid product id"))
	}

	if err := h.products.Delete(c.Request().Context(), user.ID, productID); err != nil {
		return writeProductError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "product deleted"})
}

// formImage extracts the optional "image" file from the multipart form. A
// missing file is not an error; form updates without a new image are common.
func formImage(c echo.Context) (*service.ProductImage, func(), error) {
	header, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, nil
		}
		// echo wraps the missing-file case from multipart forms too.
		if strings.Contains(err.Error(), "no such file") {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	return openFormImage(header)
}

func openFormImage(header *multipart.FileHeader) (*service.ProductImage, func(), error) {
	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	image := &service.ProductImage{
		Reader:      file,
		Size:        header.Size,
		FileName:    header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
	}
	return image, func() { _ = file.Close() }, nil
}

func formValuePtr(c echo.Context, name string) *string {
	values, err := c.FormParams()
	if err != nil {
		return nil
	}
	if vals, ok := values[name]; ok && len(vals) > 0 {
		return &vals[0]
	}
	return nil
}

func writeProductError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrNotAuthorized):
		return c.JSON(http.StatusNotFound, util.Error("product not found"))
	default:
		c.Logger().Errorf("product request failed: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("something went wrong"))
	}
}
