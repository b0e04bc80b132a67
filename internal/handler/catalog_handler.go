package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// middlewareが入れたuser_idを取り出す
func getUserIDFromContext(c echo.Context) (int64, bool) {
	raw := c.Get(middleware.CtxUserIDKey)
	id, ok := raw.(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}

func getRoleFromContext(c echo.Context) (model.Role, bool) {
	raw := c.Get(middleware.CtxUserRoleKey)
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", false
	}
	return model.Role(s), true
}

func getActorFromContext(c echo.Context) (usecase.Actor, bool) {
	id, ok := getUserIDFromContext(c)
	if !ok {
		return usecase.Actor{}, false
	}
	role, ok := getRoleFromContext(c)
	if !ok {
		return usecase.Actor{}, false
	}
	return usecase.Actor{ID: id, Role: role}, true
}

// /catalog と /distributor/products のAPI
type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

// DI
func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	//公開カタログ
	e.GET("/catalog", h.listCatalog)

	g := e.Group("/distributor/products")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.RoleGuard(model.RoleDistributor, model.RoleAdmin))

	g.GET("", h.listMine)
	g.POST("", h.create)
	g.PATCH("/:id", h.update)
}

func (h *CatalogHandler) listCatalog(c echo.Context) error {
	rows, err := h.uc.ListCatalog(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *CatalogHandler) listMine(c echo.Context) error {
	actor, ok := getActorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	rows, err := h.uc.ListDistributorProducts(c.Request().Context(), actor.ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

type ProductCreateRequest struct {
	CategoryName   string  `json:"category_name"`
	ProductName    string  `json:"product_name"`
	SubProductName string  `json:"subproduct_name"`
	Brand          string  `json:"brand"`
	Unit           string  `json:"unit"`
	Price          float64 `json:"price"`
	Stock          int64   `json:"stock"`
	ImageURL       string  `json:"image_url"`
}

func (h *CatalogHandler) create(c echo.Context) error {
	actor, ok := getActorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ProductCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	variantID, err := h.uc.AddProduct(c.Request().Context(), actor, usecase.AddProductInput{
		CategoryName:   req.CategoryName,
		ProductName:    req.ProductName,
		SubProductName: req.SubProductName,
		Brand:          req.Brand,
		Unit:           req.Unit,
		Price:          req.Price,
		Stock:          req.Stock,
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]int64{"variant_id": variantID})
}

type VariantUpdateRequest struct {
	Price *float64 `json:"price"`
	Stock *int64   `json:"stock"`
}

func (h *CatalogHandler) update(c echo.Context) error {
	actor, ok := getActorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	variantID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || variantID <= 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req VariantUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.UpdateVariant(c.Request().Context(), actor, variantID, usecase.UpdateVariantInput{
		Price: req.Price,
		Stock: req.Stock,
	}); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "updated"})
}
