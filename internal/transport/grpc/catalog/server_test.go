package catalog

import (
	"context"
	"io"
	"log/slog"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/storefront-catalog/internal/app/product/queries/get_product"
	"github.com/light-bringer/storefront-catalog/internal/app/product/queries/list_products"
	"github.com/light-bringer/storefront-catalog/internal/app/product/queries/lookup"
	"github.com/light-bringer/storefront-catalog/internal/app/product/repo/sqlstore"
	"github.com/light-bringer/storefront-catalog/internal/app/product/usecases/create_product"
	"github.com/light-bringer/storefront-catalog/internal/app/product/usecases/delete_product"
	"github.com/light-bringer/storefront-catalog/internal/app/product/usecases/update_product"
	"github.com/light-bringer/storefront-catalog/internal/pkg/clock"
)

type testEnv struct {
	client *Client
	store  *sqlstore.Store
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := sqlstore.Open(ctx, sqlstore.DriverSQLite, filepath.Join(t.TempDir(), "catalog.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Migrate(ctx))

	clk := clock.NewMockClock(time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))
	srv := NewServer(
		create_product.NewInteractor(store, clk),
		update_product.NewInteractor(store),
		delete_product.NewInteractor(store, time.Second, logger),
		get_product.NewQuery(store),
		list_products.NewQuery(store, 0, 0),
		lookup.NewQuery(store),
		logger,
	)

	lis := bufconn.Listen(1 << 20)
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(RequestScopeInterceptor(logger)))
	RegisterCatalogServiceServer(grpcServer, srv)
	go func() { _ = grpcServer.Serve(lis) }()
	t.Cleanup(grpcServer.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &testEnv{client: NewClient(conn), store: store}
}

func mustStruct(t *testing.T, m map[string]interface{}) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

func (e *testEnv) create(t *testing.T, fields map[string]interface{}) float64 {
	t.Helper()
	out, err := e.client.Call(context.Background(), "CreateProduct", mustStruct(t, fields))
	require.NoError(t, err)
	return out.Fields["id"].GetNumberValue()
}

func TestServer_CreateGetUpdate(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	id := env.create(t, map[string]interface{}{
		"name":     "Rain Jacket",
		"price":    "120.00",
		"brands":   []interface{}{1.0},
		"occasion": []interface{}{"outdoor"},
	})
	require.NotZero(t, id)

	out, err := env.client.Call(ctx, "GetProduct", mustStruct(t, map[string]interface{}{"id": id}))
	require.NoError(t, err)
	assert.Equal(t, "Rain Jacket", out.Fields["name"].GetStringValue())
	assert.Equal(t, "120", out.Fields["price"].GetStringValue())

	out, err = env.client.Call(ctx, "UpdateProduct", mustStruct(t, map[string]interface{}{
		"id":      id,
		"product": map[string]interface{}{"name": "Shell Jacket", "price": "99.99"},
	}))
	require.NoError(t, err)
	assert.Equal(t, "Shell Jacket", out.Fields["name"].GetStringValue())
}

func TestServer_ErrorCodes(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	_, err := env.client.Call(ctx, "GetProduct", mustStruct(t, map[string]interface{}{"id": 404.0}))
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = env.client.Call(ctx, "CreateProduct", mustStruct(t, map[string]interface{}{"name": "", "price": "1"}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = env.client.Call(ctx, "ListProducts", mustStruct(t, map[string]interface{}{"sortBy": "name-asc"}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = env.client.Call(ctx, "GetProduct", mustStruct(t, map[string]interface{}{"id": "abc"}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestServer_ListProducts(t *testing.T) {
	env := setup(t)

	for _, price := range []string{"30", "10", "20"} {
		env.create(t, map[string]interface{}{"name": "Sock " + price, "price": price, "discount": 25.0})
	}

	out, err := env.client.Call(context.Background(), "ListProducts", mustStruct(t, map[string]interface{}{
		"sortBy":   "price-asc",
		"pageSize": 2.0,
		"discount": "20-30",
	}))
	require.NoError(t, err)

	assert.Equal(t, 3.0, out.Fields["count"].GetNumberValue())
	assert.Equal(t, 2.0, out.Fields["lastPage"].GetNumberValue())
	products := out.Fields["products"].GetListValue().GetValues()
	require.Len(t, products, 2)
	assert.Equal(t, "Sock 10", products[0].GetStructValue().Fields["name"].GetStringValue())
}

func TestServer_DeleteAndLookups(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	id := env.create(t, map[string]interface{}{"name": "Glove", "price": "9"})
	_, err := env.store.DB().ExecContext(ctx, "INSERT INTO brands (id, name) VALUES (3, 'Acme')")
	require.NoError(t, err)

	out, err := env.client.Call(ctx, "ResolveBrandNames", mustStruct(t, map[string]interface{}{"ids": []interface{}{3.0, "4"}}))
	require.NoError(t, err)
	brands := out.Fields["brands"].GetListValue().GetValues()
	require.Len(t, brands, 2)
	assert.True(t, brands[0].GetStructValue().Fields["found"].GetBoolValue())
	assert.False(t, brands[1].GetStructValue().Fields["found"].GetBoolValue())

	out, err = env.client.Call(ctx, "ResolveProductCategories", mustStruct(t, map[string]interface{}{"ids": []interface{}{id}}))
	require.NoError(t, err)
	assert.Len(t, out.Fields["products"].GetListValue().GetValues(), 1)

	_, err = env.client.Call(ctx, "DeleteProduct", mustStruct(t, map[string]interface{}{"id": id}))
	require.NoError(t, err)

	_, err = env.client.Call(ctx, "DeleteProduct", mustStruct(t, map[string]interface{}{"id": id}))
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestRequestScopeInterceptor_EchoesRequestID(t *testing.T) {
	env := setup(t)

	var header metadata.MD
	ctx := metadata.AppendToOutgoingContext(context.Background(), RequestIDKey, "req-42")
	_, err := env.client.Call(ctx, "ListProducts", mustStruct(t, map[string]interface{}{}), grpc.Header(&header))
	require.NoError(t, err)

	assert.Equal(t, []string{"req-42"}, header.Get(RequestIDKey))
}
