// Package client is the CLI's side of the DiaryService connection.
//
// GRPCClient owns the connection, attaches the access token to every call,
// refreshes it once when the server reports it expired and turns gRPC status
// codes into errors the CLI can match with errors.Is / errors.As:
// ErrUnauthorized, ErrUnavailable, common.ValidationError,
// common.ErrorNotFound and common.ErrAlreadyExists.
package client
