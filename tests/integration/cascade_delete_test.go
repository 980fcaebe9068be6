//go:build integration

package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-catalog/internal/app/product/domain"
	"github.com/light-bringer/storefront-catalog/internal/app/product/repo/spannerstore"
	"github.com/light-bringer/storefront-catalog/internal/app/product/usecases/delete_product"
	"github.com/light-bringer/storefront-catalog/internal/models/m_comment"
	"github.com/light-bringer/storefront-catalog/internal/models/m_product"
	"github.com/light-bringer/storefront-catalog/internal/models/m_product_category"
	"github.com/light-bringer/storefront-catalog/internal/models/m_review"
	"github.com/light-bringer/storefront-catalog/tests/testutil"
)

func TestCascadeDelete_RemovesProductAndDependents(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	store := spannerstore.New(client, nil)

	keep := insert(t, store, testutil.ProductInput("Keep"))
	drop := insert(t, store, testutil.ProductInput("Drop"))
	testutil.CreateCategory(t, client, 1, "Shoes", keep.ID(), drop.ID())
	testutil.CreateDependents(t, client, drop.ID(), 1, 2)
	testutil.CreateDependents(t, client, keep.ID(), 3)

	interactor := delete_product.NewInteractor(store, 10*time.Second, nil)
	require.NoError(t, interactor.Execute(ctx, &delete_product.Request{ProductID: drop.ID()}))

	testutil.AssertRowCount(t, client, m_product.TableName, 1)
	testutil.AssertRowCount(t, client, m_product_category.TableName, 1)
	testutil.AssertRowCount(t, client, m_review.TableName, 1)
	testutil.AssertRowCount(t, client, m_comment.TableName, 1)
}

func TestCascadeDelete_MissingProduct(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	store := spannerstore.New(client, nil)
	keep := insert(t, store, testutil.ProductInput("Keep"))
	testutil.CreateDependents(t, client, keep.ID(), 1)

	err := delete_product.NewInteractor(store, 10*time.Second, nil).
		Execute(context.Background(), &delete_product.Request{ProductID: keep.ID() + 1})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	var cascadeErr *domain.CascadeError
	require.True(t, errors.As(err, &cascadeErr))
	assert.Equal(t, domain.CascadeDependentsCleared, cascadeErr.State)

	testutil.AssertRowCount(t, client, m_review.TableName, 1)
}
