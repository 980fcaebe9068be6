package catalog

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/storefront-catalog/internal/transport/dto"
)

// toStatus converts domain errors to gRPC status errors.
func toStatus(err error) error {
	if err == nil {
		return nil
	}

	switch dto.ErrorCode(err) {
	case dto.CodeValidation:
		return status.Error(codes.InvalidArgument, err.Error())
	case dto.CodeNotFound:
		return status.Error(codes.NotFound, err.Error())
	case dto.CodeConstraint:
		return status.Error(codes.FailedPrecondition, err.Error())
	case dto.CodeTransaction:
		return status.Error(codes.Aborted, err.Error())
	case dto.CodeUnavailable:
		return status.Error(codes.Unavailable, err.Error())
	default:
		// Unknown error - return Internal
		return status.Error(codes.Internal, "internal server error")
	}
}
