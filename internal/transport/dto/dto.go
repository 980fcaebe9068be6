// Package dto holds the wire representation of catalog resources shared by
// the HTTP and gRPC transports.
package dto

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/storefront-catalog/internal/app/product/domain"
	"github.com/light-bringer/storefront-catalog/internal/app/product/queries/list_products"
	"github.com/light-bringer/storefront-catalog/internal/app/product/queries/lookup"
)

// Product is a product as returned to clients.
type Product struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	OldPrice    decimal.Decimal  `json:"old_price"`
	Discount    int64            `json:"discount"`
	Rating      float64          `json:"rating"`
	Colors      []string         `json:"colors"`
	Brands      []int64          `json:"brands"`
	Gender      string           `json:"gender"`
	Occasion    []string         `json:"occasion"`
	ImageURL    string           `json:"image_url"`
	CreatedAt   time.Time        `json:"created_at"`
	BrandNames  map[int64]string `json:"brand_names,omitempty"`
	Categories  []Category       `json:"categories,omitempty"`
}

// Category is a category reference.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductInput is the body of create and update requests.
type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	OldPrice    decimal.Decimal `json:"old_price"`
	Discount    int64           `json:"discount"`
	Rating      float64         `json:"rating"`
	Colors      []string        `json:"colors"`
	Brands      []int64         `json:"brands"`
	Gender      string          `json:"gender"`
	Occasion    []string        `json:"occasion"`
	ImageURL    string          `json:"image_url"`
}

// ToDomain converts the body to a domain input.
func (in *ProductInput) ToDomain() domain.ProductInput {
	return domain.ProductInput{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		OldPrice:    in.OldPrice,
		Discount:    in.Discount,
		Rating:      in.Rating,
		Colors:      in.Colors,
		BrandIDs:    in.Brands,
		Gender:      in.Gender,
		Occasions:   in.Occasion,
		ImageURL:    in.ImageURL,
	}
}

// ListResponse is one page of products.
type ListResponse struct {
	Products              []Product `json:"products"`
	Count                 int64     `json:"count"`
	LastPage              int64     `json:"lastPage"`
	NumOfResultsOnCurPage int       `json:"numOfResultsOnCurPage"`
	PageNo                int       `json:"pageNo"`
	PageSize              int       `json:"pageSize"`
}

// Resolved is one lookup result. Found is false for unknown ids.
type Resolved[T any] struct {
	ID    int64 `json:"id"`
	Value T     `json:"value,omitempty"`
	Found bool  `json:"found"`
}

// FromProduct maps a domain product.
func FromProduct(p *domain.Product) Product {
	return Product{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price(),
		OldPrice:    p.OldPrice(),
		Discount:    p.Discount(),
		Rating:      p.Rating(),
		Colors:      p.Colors(),
		Brands:      p.BrandIDs(),
		Gender:      p.Gender(),
		Occasion:    p.Occasions(),
		ImageURL:    p.ImageURL(),
		CreatedAt:   p.CreatedAt(),
	}
}

// FromListResult maps a page of products.
func FromListResult(res *list_products.Result) ListResponse {
	products := make([]Product, 0, len(res.Items))
	for _, p := range res.Items {
		products = append(products, FromProduct(p))
	}
	return ListResponse{
		Products:              products,
		Count:                 res.TotalCount,
		LastPage:              res.LastPage,
		NumOfResultsOnCurPage: res.NumOfResultsOnCurPage,
		PageNo:                res.PageNo,
		PageSize:              res.PageSize,
	}
}

// FromCategories maps domain categories.
func FromCategories(in []domain.Category) []Category {
	out := make([]Category, 0, len(in))
	for _, c := range in {
		out = append(out, Category{ID: c.ID, Name: c.Name})
	}
	return out
}

// FromBrandNames flattens lookup results, ordered by id.
func FromBrandNames(in map[int64]lookup.Resolved[string]) []Resolved[string] {
	out := make([]Resolved[string], 0, len(in))
	for id, r := range in {
		out = append(out, Resolved[string]{ID: id, Value: r.Value, Found: r.Found})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// FromProductCategories flattens lookup results, ordered by product id.
func FromProductCategories(in map[int64]lookup.Resolved[[]domain.Category]) []Resolved[[]Category] {
	out := make([]Resolved[[]Category], 0, len(in))
	for id, r := range in {
		out = append(out, Resolved[[]Category]{ID: id, Value: FromCategories(r.Value), Found: r.Found})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Error codes reported to clients.
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeNotFound    = "NOT_FOUND"
	CodeConstraint  = "CONSTRAINT_VIOLATION"
	CodeTransaction = "TRANSACTION_FAILED"
	CodeUnavailable = "STORAGE_UNAVAILABLE"
	CodeInternal    = "INTERNAL"
)

// ErrorCode classifies err by its domain category.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return CodeValidation
	case errors.Is(err, domain.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, domain.ErrConstraint):
		return CodeConstraint
	case errors.Is(err, domain.ErrTransaction):
		return CodeTransaction
	case errors.Is(err, domain.ErrTransientStorage):
		return CodeUnavailable
	default:
		return CodeInternal
	}
}

// ErrorBody is the error envelope: {"error": {"code": ..., "message": ...}}.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorBody builds the envelope for err. Internal errors get a generic
// message.
func NewErrorBody(err error) ErrorBody {
	code := ErrorCode(err)
	msg := err.Error()
	if code == CodeInternal {
		msg = "internal server error"
	}
	return ErrorBody{Error: ErrorDetail{Code: code, Message: msg}}
}
