package client

import (
	"errors"
	"testing"

	"github.com/dmitrijs2005/veildiary/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func badRequest(field, desc string) *errdetails.BadRequest {
	return &errdetails.BadRequest{
		FieldViolations: []*errdetails.BadRequest_FieldViolation{{Field: field, Description: desc}},
	}
}

func TestMapError(t *testing.T) {
	plain := errors.New("dial failed")

	tests := []struct {
		name string
		in   error
		is   error
		msg  string
	}{
		{name: "nil", in: nil},
		{name: "not a status", in: plain, is: plain},
		{name: "unauthenticated", in: status.Error(codes.Unauthenticated, "x"), is: ErrUnauthorized},
		{name: "permission denied", in: status.Error(codes.PermissionDenied, "x"), is: ErrUnauthorized},
		{name: "unavailable", in: status.Error(codes.Unavailable, "x"), is: ErrUnavailable},
		{name: "deadline", in: status.Error(codes.DeadlineExceeded, "x"), is: ErrUnavailable},
		{name: "not found", in: status.Error(codes.NotFound, "x"), is: common.ErrorNotFound},
		{name: "already exists", in: status.Error(codes.AlreadyExists, "x"), is: common.ErrAlreadyExists},
		{name: "invalid argument without details", in: status.Error(codes.InvalidArgument, "content: must not be empty"),
			is: common.ErrValidation, msg: "content: must not be empty"},
		{name: "internal with message", in: status.Error(codes.Internal, "list mappings: db error: boom"),
			msg: "list mappings: db error: boom"},
		{name: "internal without message", in: status.Error(codes.Internal, ""), is: ErrSomethingWentWrong},
		{name: "other", in: status.Error(codes.ResourceExhausted, "slow down"), msg: "rpc error: rpc error: code = ResourceExhausted desc = slow down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.in)
			if tt.in == nil {
				require.NoError(t, got)
				return
			}
			require.Error(t, got)
			if tt.is != nil {
				assert.ErrorIs(t, got, tt.is)
			}
			if tt.msg != "" {
				assert.Equal(t, tt.msg, got.Error())
			}
		})
	}
}

func TestMapError_FieldViolation(t *testing.T) {
	st, err := status.New(codes.InvalidArgument, "bad").WithDetails(badRequest("username", "use 3-32 of a-z, 0-9, _"))
	require.NoError(t, err)

	got := mapError(st.Err())

	var ve *common.ValidationError
	require.ErrorAs(t, got, &ve)
	assert.Equal(t, "username", ve.Field)
	assert.Equal(t, "use 3-32 of a-z, 0-9, _", ve.Reason)
}
