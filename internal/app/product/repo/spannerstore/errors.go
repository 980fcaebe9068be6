package spannerstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/storefront-catalog/internal/app/product/domain"
)

// classify wraps Spanner errors with the matching domain sentinel. Errors
// that already carry a domain category are returned unchanged.
func classify(err error) error {
	if err == nil || isClassified(err) {
		return err
	}

	switch spanner.ErrCode(err) {
	case codes.FailedPrecondition:
		if strings.Contains(strings.ToLower(spanner.ErrDesc(err)), "foreign key") {
			return fmt.Errorf("%w: %w", domain.ErrConstraint, err)
		}
	case codes.Aborted:
		return fmt.Errorf("%w: %w", domain.ErrTransaction, err)
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
		return fmt.Errorf("%w: %w", domain.ErrTransientStorage, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrTransientStorage, err)
	}
	return err
}

func isClassified(err error) bool {
	for _, target := range []error{
		domain.ErrValidation,
		domain.ErrNotFound,
		domain.ErrConstraint,
		domain.ErrTransaction,
		domain.ErrTransientStorage,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
