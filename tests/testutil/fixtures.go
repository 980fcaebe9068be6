package testutil

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-catalog/internal/app/product/domain"
	"github.com/light-bringer/storefront-catalog/internal/models/m_brand"
	"github.com/light-bringer/storefront-catalog/internal/models/m_category"
	"github.com/light-bringer/storefront-catalog/internal/models/m_comment"
	"github.com/light-bringer/storefront-catalog/internal/models/m_product_category"
	"github.com/light-bringer/storefront-catalog/internal/models/m_review"
)

// ProductInput returns a valid input; opts tweak it.
func ProductInput(name string, opts ...func(*domain.ProductInput)) domain.ProductInput {
	in := domain.ProductInput{
		Name:      name,
		Price:     decimal.NewFromInt(100),
		OldPrice:  decimal.NewFromInt(120),
		Rating:    4,
		Colors:    []string{"black"},
		BrandIDs:  []int64{},
		Gender:    "unisex",
		Occasions: []string{"casual"},
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in
}

// CreateBrands inserts brands keyed by id.
func CreateBrands(t *testing.T, client *spanner.Client, brands map[int64]string) {
	t.Helper()

	mutations := make([]*spanner.Mutation, 0, len(brands))
	for id, name := range brands {
		mutations = append(mutations, spanner.Insert(m_brand.TableName,
			[]string{m_brand.ID, m_brand.Name}, []interface{}{id, name}))
	}
	_, err := client.Apply(context.Background(), mutations)
	require.NoError(t, err, "failed to create brands")
}

// CreateCategory inserts a category and links it to productIDs.
func CreateCategory(t *testing.T, client *spanner.Client, id int64, name string, productIDs ...int64) {
	t.Helper()

	mutations := []*spanner.Mutation{
		spanner.Insert(m_category.TableName, []string{m_category.ID, m_category.Name}, []interface{}{id, name}),
	}
	for _, pid := range productIDs {
		mutations = append(mutations, spanner.Insert(m_product_category.TableName,
			[]string{m_product_category.ProductID, m_product_category.CategoryID}, []interface{}{pid, id}))
	}
	_, err := client.Apply(context.Background(), mutations)
	require.NoError(t, err, "failed to create category")
}

// CreateDependents inserts reviews and comments for productID. ids must be
// unique across calls.
func CreateDependents(t *testing.T, client *spanner.Client, productID int64, ids ...int64) {
	t.Helper()

	now := time.Now().UTC()
	mutations := make([]*spanner.Mutation, 0, 2*len(ids))
	for _, id := range ids {
		mutations = append(mutations,
			spanner.Insert(m_review.TableName,
				[]string{m_review.ID, m_review.ProductID, m_review.Author, m_review.Rating, m_review.Body, m_review.CreatedAt},
				[]interface{}{id, productID, "tester", int64(5), "great", now}),
			spanner.Insert(m_comment.TableName,
				[]string{m_comment.ID, m_comment.ProductID, m_comment.Author, m_comment.Body, m_comment.CreatedAt},
				[]interface{}{id, productID, "tester", "nice", now}),
		)
	}
	_, err := client.Apply(context.Background(), mutations)
	require.NoError(t, err, "failed to create dependents")
}
