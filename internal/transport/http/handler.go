// Package http exposes the catalog over a fiber HTTP server.
package http

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/light-bringer/storefront-catalog/internal/app/product/domain"
	"github.com/light-bringer/storefront-catalog/internal/app/product/filter"
	"github.com/light-bringer/storefront-catalog/internal/app/product/pagination"
	"github.com/light-bringer/storefront-catalog/internal/app/product/queries/get_product"
	"github.com/light-bringer/storefront-catalog/internal/app/product/queries/list_products"
	"github.com/light-bringer/storefront-catalog/internal/app/product/queries/lookup"
	"github.com/light-bringer/storefront-catalog/internal/app/product/usecases/create_product"
	"github.com/light-bringer/storefront-catalog/internal/app/product/usecases/delete_product"
	"github.com/light-bringer/storefront-catalog/internal/app/product/usecases/update_product"
	"github.com/light-bringer/storefront-catalog/internal/transport/dto"
)

// Handler serves the catalog routes.
// It's a thin coordinator that delegates to use cases and queries.
type Handler struct {
	// Commands
	createProduct *create_product.Interactor
	updateProduct *update_product.Interactor
	deleteProduct *delete_product.Interactor

	// Queries
	getProduct   *get_product.Query
	listProducts *list_products.Query
	lookup       *lookup.Query

	ping   func(context.Context) error
	logger *slog.Logger
}

// NewHandler creates a new HTTP catalog handler. ping backs /healthz and
// may be nil.
func NewHandler(
	createProduct *create_product.Interactor,
	updateProduct *update_product.Interactor,
	deleteProduct *delete_product.Interactor,
	getProduct *get_product.Query,
	listProducts *list_products.Query,
	lookupQuery *lookup.Query,
	ping func(context.Context) error,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		createProduct: createProduct,
		updateProduct: updateProduct,
		deleteProduct: deleteProduct,
		getProduct:    getProduct,
		listProducts:  listProducts,
		lookup:        lookupQuery,
		ping:          ping,
		logger:        logger,
	}
}

// ListProducts handles GET /products.
func (h *Handler) ListProducts(c *fiber.Ctx) error {
	ctx := c.UserContext()

	req := &list_products.Request{
		PageNo:   pagination.ParsePageNo(c.Query("page")),
		PageSize: c.QueryInt("pageSize", 0),
		SortBy:   c.Query("sortBy"),
		Filter: &filter.Request{
			BrandID:      c.Query("brandId"),
			CategoryID:   c.Query("categoryId"),
			Gender:       c.Query("gender"),
			Occasions:    c.Query("occasions"),
			Discount:     c.Query("discount"),
			PriceRangeTo: c.Query("priceRangeTo"),
		},
	}

	expand, err := parseExpand(c.Query("expand"))
	if err != nil {
		return err
	}

	res, err := h.listProducts.Execute(ctx, req)
	if err != nil {
		return err
	}

	resp := dto.FromListResult(res)
	if err := h.expandProducts(ctx, expand, resp.Products); err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetProduct handles GET /products/:id.
func (h *Handler) GetProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	product, err := h.getProduct.Execute(c.UserContext(), &get_product.Request{ProductID: id})
	if err != nil {
		return err
	}
	return c.JSON(dto.FromProduct(product))
}

// CreateProduct handles POST /products.
func (h *Handler) CreateProduct(c *fiber.Ctx) error {
	var body dto.ProductInput
	if err := c.BodyParser(&body); err != nil {
		return domain.NewValidationError("body", "", err.Error())
	}

	product, err := h.createProduct.Execute(c.UserContext(), &create_product.Request{Input: body.ToDomain()})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromProduct(product))
}

// UpdateProduct handles PUT /products/:id. Every attribute is replaced.
func (h *Handler) UpdateProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	var body dto.ProductInput
	if err := c.BodyParser(&body); err != nil {
		return domain.NewValidationError("body", "", err.Error())
	}

	product, err := h.updateProduct.Execute(c.UserContext(), &update_product.Request{
		ProductID: id,
		Input:     body.ToDomain(),
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.FromProduct(product))
}

// DeleteProduct handles DELETE /products/:id.
func (h *Handler) DeleteProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	if err := h.deleteProduct.Execute(c.UserContext(), &delete_product.Request{ProductID: id}); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ProductCategories handles GET /products/:id/categories.
func (h *Handler) ProductCategories(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	resolved, err := h.lookup.ResolveProductCategories(c.UserContext(), []int64{id})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"categories": dto.FromCategories(resolved[id].Value)})
}

// BrandNames handles GET /brands/names?ids=1,2.
func (h *Handler) BrandNames(c *fiber.Ctx) error {
	ids, err := parseIDs(c.Query("ids"))
	if err != nil {
		return err
	}

	resolved, err := h.lookup.ResolveBrandNames(c.UserContext(), ids)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"brands": dto.FromBrandNames(resolved)})
}

// CategoriesByProduct handles GET /categories/by-product?ids=1,2.
func (h *Handler) CategoriesByProduct(c *fiber.Ctx) error {
	ids, err := parseIDs(c.Query("ids"))
	if err != nil {
		return err
	}

	resolved, err := h.lookup.ResolveProductCategories(c.UserContext(), ids)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"products": dto.FromProductCategories(resolved)})
}

// Health handles GET /healthz.
func (h *Handler) Health(c *fiber.Ctx) error {
	if h.ping != nil {
		if err := h.ping(c.UserContext()); err != nil {
			h.logger.WarnContext(c.UserContext(), "health check failed", "error", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func productID(c *fiber.Ctx) (int64, error) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError("id", raw, "must be an integer")
	}
	return id, nil
}

func parseIDs(raw string) ([]int64, error) {
	ids := []int64{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, domain.NewValidationError("ids", part, "must be an integer")
		}
		ids = append(ids, id)
	}
	return ids, nil
}
