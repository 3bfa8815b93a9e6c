package client

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/veildiary/internal/common"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized, please log in")
	// ErrSomethingWentWrong stands in for internal errors without a message.
	ErrSomethingWentWrong = errors.New("Something went wrong")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.InvalidArgument:
		return validationError(st)
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.AlreadyExists:
		return common.ErrAlreadyExists
	case codes.Internal:
		if st.Message() == "" {
			return ErrSomethingWentWrong
		}
		return errors.New(st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

// validationError rebuilds the first BadRequest field violation, falling
// back to the status message.
func validationError(st *status.Status) error {
	for _, d := range st.Details() {
		br, ok := d.(*errdetails.BadRequest)
		if !ok {
			continue
		}
		for _, v := range br.GetFieldViolations() {
			return common.NewValidationError(v.GetField(), v.GetDescription())
		}
	}
	return common.NewValidationError("", st.Message())
}
