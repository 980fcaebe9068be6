package catalog

import (
	"context"
	"log/slog"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/storefront-catalog/internal/app/product/filter"
	"github.com/light-bringer/storefront-catalog/internal/app/product/queries/get_product"
	"github.com/light-bringer/storefront-catalog/internal/app/product/queries/list_products"
	"github.com/light-bringer/storefront-catalog/internal/app/product/queries/lookup"
	"github.com/light-bringer/storefront-catalog/internal/app/product/usecases/create_product"
	"github.com/light-bringer/storefront-catalog/internal/app/product/usecases/delete_product"
	"github.com/light-bringer/storefront-catalog/internal/app/product/usecases/update_product"
	"github.com/light-bringer/storefront-catalog/internal/transport/dto"
)

// Server implements CatalogServiceServer.
// It's a thin coordinator that delegates to use cases and queries.
type Server struct {
	// Commands
	createProduct *create_product.Interactor
	updateProduct *update_product.Interactor
	deleteProduct *delete_product.Interactor

	// Queries
	getProduct   *get_product.Query
	listProducts *list_products.Query
	lookup       *lookup.Query

	logger *slog.Logger
}

var _ CatalogServiceServer = (*Server)(nil)

// NewServer creates a new gRPC catalog server.
func NewServer(
	createProduct *create_product.Interactor,
	updateProduct *update_product.Interactor,
	deleteProduct *delete_product.Interactor,
	getProduct *get_product.Query,
	listProducts *list_products.Query,
	lookupQuery *lookup.Query,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		createProduct: createProduct,
		updateProduct: updateProduct,
		deleteProduct: deleteProduct,
		getProduct:    getProduct,
		listProducts:  listProducts,
		lookup:        lookupQuery,
		logger:        logger,
	}
}

type listRequest struct {
	Page         int    `json:"page"`
	PageSize     int    `json:"pageSize"`
	SortBy       string `json:"sortBy"`
	BrandID      string `json:"brandId"`
	CategoryID   string `json:"categoryId"`
	Gender       string `json:"gender"`
	Occasions    string `json:"occasions"`
	Discount     string `json:"discount"`
	PriceRangeTo string `json:"priceRangeTo"`
}

type idRequest struct {
	ID id `json:"id"`
}

type updateRequest struct {
	ID      id               `json:"id"`
	Product dto.ProductInput `json:"product"`
}

type idsRequest struct {
	IDs []id `json:"ids"`
}

// ListProducts returns one page of products.
func (s *Server) ListProducts(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req listRequest
	if err := decode(in, &req); err != nil {
		return nil, toStatus(err)
	}

	res, err := s.listProducts.Execute(ctx, &list_products.Request{
		PageNo:   req.Page,
		PageSize: req.PageSize,
		SortBy:   req.SortBy,
		Filter: &filter.Request{
			BrandID:      req.BrandID,
			CategoryID:   req.CategoryID,
			Gender:       req.Gender,
			Occasions:    req.Occasions,
			Discount:     req.Discount,
			PriceRangeTo: req.PriceRangeTo,
		},
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return reply(dto.FromListResult(res))
}

// GetProduct returns one product.
func (s *Server) GetProduct(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req idRequest
	if err := decode(in, &req); err != nil {
		return nil, toStatus(err)
	}

	product, err := s.getProduct.Execute(ctx, &get_product.Request{ProductID: int64(req.ID)})
	if err != nil {
		return nil, toStatus(err)
	}
	return reply(dto.FromProduct(product))
}

// CreateProduct creates a product from the request fields.
func (s *Server) CreateProduct(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req dto.ProductInput
	if err := decode(in, &req); err != nil {
		return nil, toStatus(err)
	}

	product, err := s.createProduct.Execute(ctx, &create_product.Request{Input: req.ToDomain()})
	if err != nil {
		return nil, toStatus(err)
	}
	return reply(dto.FromProduct(product))
}

// UpdateProduct replaces every attribute of {id} with {product}.
func (s *Server) UpdateProduct(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req updateRequest
	if err := decode(in, &req); err != nil {
		return nil, toStatus(err)
	}

	product, err := s.updateProduct.Execute(ctx, &update_product.Request{
		ProductID: int64(req.ID),
		Input:     req.Product.ToDomain(),
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return reply(dto.FromProduct(product))
}

// DeleteProduct removes a product and its dependents.
func (s *Server) DeleteProduct(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req idRequest
	if err := decode(in, &req); err != nil {
		return nil, toStatus(err)
	}

	if err := s.deleteProduct.Execute(ctx, &delete_product.Request{ProductID: int64(req.ID)}); err != nil {
		return nil, toStatus(err)
	}
	return reply(map[string]interface{}{"deleted": true})
}

// ResolveBrandNames maps brand ids to names.
func (s *Server) ResolveBrandNames(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req idsRequest
	if err := decode(in, &req); err != nil {
		return nil, toStatus(err)
	}

	resolved, err := s.lookup.ResolveBrandNames(ctx, ids(req.IDs))
	if err != nil {
		return nil, toStatus(err)
	}
	return reply(map[string]interface{}{"brands": dto.FromBrandNames(resolved)})
}

// ResolveProductCategories maps product ids to their categories.
func (s *Server) ResolveProductCategories(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req idsRequest
	if err := decode(in, &req); err != nil {
		return nil, toStatus(err)
	}

	resolved, err := s.lookup.ResolveProductCategories(ctx, ids(req.IDs))
	if err != nil {
		return nil, toStatus(err)
	}
	return reply(map[string]interface{}{"products": dto.FromProductCategories(resolved)})
}

func reply(v interface{}) (*structpb.Struct, error) {
	out, err := encode(v)
	if err != nil {
		return nil, toStatus(err)
	}
	return out, nil
}
