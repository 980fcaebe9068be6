package http

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/light-bringer/storefront-catalog/internal/app/product/domain"
	"github.com/light-bringer/storefront-catalog/internal/app/product/queries/lookup"
	"github.com/light-bringer/storefront-catalog/internal/transport/dto"
)

type expansion struct {
	brands     bool
	categories bool
}

func parseExpand(raw string) (expansion, error) {
	var e expansion
	for _, part := range strings.Split(raw, ",") {
		switch strings.TrimSpace(part) {
		case "":
		case "brands":
			e.brands = true
		case "categories":
			e.categories = true
		default:
			return e, domain.NewValidationError("expand", part, "must be brands or categories")
		}
	}
	return e, nil
}

// expandProducts attaches brand names and categories to a page. The two
// lookups run concurrently; each is one batched query per 500 ids.
func (h *Handler) expandProducts(ctx context.Context, e expansion, products []dto.Product) error {
	if len(products) == 0 || (!e.brands && !e.categories) {
		return nil
	}

	var (
		brandNames map[int64]lookup.Resolved[string]
		categories map[int64]lookup.Resolved[[]domain.Category]
	)

	g, gctx := errgroup.WithContext(ctx)
	if e.brands {
		var ids []int64
		for _, p := range products {
			ids = append(ids, p.Brands...)
		}
		g.Go(func() error {
			var err error
			brandNames, err = h.lookup.ResolveBrandNames(gctx, ids)
			return err
		})
	}
	if e.categories {
		ids := make([]int64, 0, len(products))
		for _, p := range products {
			ids = append(ids, p.ID)
		}
		g.Go(func() error {
			var err error
			categories, err = h.lookup.ResolveProductCategories(gctx, ids)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range products {
		p := &products[i]
		if e.brands {
			p.BrandNames = make(map[int64]string, len(p.Brands))
			for _, id := range p.Brands {
				if r := brandNames[id]; r.Found {
					p.BrandNames[id] = r.Value
				}
			}
		}
		if e.categories {
			p.Categories = dto.FromCategories(categories[p.ID].Value)
		}
	}
	return nil
}
