// Package spannerstore implements the catalog storage contracts on Cloud
// Spanner.
package spannerstore

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/storefront-catalog/internal/models/m_product"
	"github.com/light-bringer/storefront-catalog/internal/pkg/committer"
	"github.com/light-bringer/storefront-catalog/internal/pkg/query"
)

// Store provides catalog persistence on a Spanner database.
type Store struct {
	client    *spanner.Client
	committer *committer.Committer
	model     *m_product.Model
	logger    *slog.Logger
}

// New creates a Store on client.
func New(client *spanner.Client, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		client:    client,
		committer: committer.NewCommitter(client),
		model:     m_product.NewModel(),
		logger:    logger,
	}
}

// Client returns the underlying Spanner client.
func (s *Store) Client() *spanner.Client {
	return s.client
}

// query runs stmt in a single-use read-only transaction and calls fn for
// every row.
func (s *Store) query(ctx context.Context, stmt query.Statement, fn func(*spanner.Row) error) error {
	iter := s.client.Single().Query(ctx, stmt.Spanner())
	defer iter.Stop()

	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return classify(err)
		}
		if err := fn(row); err != nil {
			return err
		}
	}
}

// values converts model values into the types the Spanner client encodes.
func values(in []interface{}) []interface{} {
	out := make([]interface{}, len(in))
	for i, v := range in {
		out[i] = query.Spanner.Value(v)
	}
	return out
}

func wrap(op string, err error) error {
	return fmt.Errorf("failed to %s: %w", op, err)
}

// Ping runs a trivial query to verify the session pool can reach Spanner.
func (s *Store) Ping(ctx context.Context) error {
	iter := s.client.Single().Query(ctx, spanner.Statement{SQL: "SELECT 1"})
	defer iter.Stop()

	if _, err := iter.Next(); err != nil && err != iterator.Done {
		return classify(err)
	}
	return nil
}
