package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/veildiary/internal/common"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors onto gRPC status codes.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	var (
		validationErr *common.ValidationError
		storageErr    *common.StorageError
	)

	switch {
	case errors.Is(err, common.ErrUnauthenticated),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, err.Error())

	case errors.As(err, &validationErr):
		st := status.New(codes.InvalidArgument, validationErr.Error())
		detailed, derr := st.WithDetails(&errdetails.BadRequest{
			FieldViolations: []*errdetails.BadRequest_FieldViolation{{
				Field:       validationErr.Field,
				Description: validationErr.Reason,
			}},
		})
		if derr != nil {
			return st.Err()
		}
		return detailed.Err()

	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())

	case errors.Is(err, common.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())

	case errors.As(err, &storageErr):
		s.logger.Error(ctx, "storage failure", "op", storageErr.Op, "error", storageErr.Err)
		return status.Error(codes.Internal, storageErr.Error())
	}

	s.logger.Error(ctx, "unexpected error", "error", err)
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}

// FieldViolations extracts BadRequest details from a status error as
// field -> description.
func FieldViolations(err error) map[string]string {
	st, ok := status.FromError(err)
	if !ok {
		return nil
	}
	out := map[string]string{}
	for _, d := range st.Details() {
		if br, ok := d.(*errdetails.BadRequest); ok {
			for _, v := range br.GetFieldViolations() {
				out[v.GetField()] = v.GetDescription()
			}
		}
	}
	return out
}
