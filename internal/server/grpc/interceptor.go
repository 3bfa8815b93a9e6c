package grpc

import (
	"context"

	"github.com/dmitrijs2005/veildiary/internal/api"
	"github.com/dmitrijs2005/veildiary/internal/common"
	"github.com/dmitrijs2005/veildiary/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// publicMethods can be called without an access token. For the ones that
// render entries a valid token is still honoured, so owners see their own
// original text.
var publicMethods = map[string]bool{
	api.FullMethod("Ping"):            true,
	api.FullMethod("Register"):        true,
	api.FullMethod("Login"):           true,
	api.FullMethod("RefreshToken"):    true,
	api.FullMethod("GetProfile"):      true,
	api.FullMethod("CheckUsername"):   true,
	api.FullMethod("ListFeed"):        true,
	api.FullMethod("ListUserEntries"): true,
}

// UserIDFromContext returns the caller id set by the interceptor, or "".
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

func accessTokenFromContext(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	public := publicMethods[info.FullMethod]

	accessToken := accessTokenFromContext(ctx)
	if accessToken == "" {
		if public {
			return handler(ctx, req)
		}
		return nil, status.Error(codes.Unauthenticated, common.ErrUnauthenticated.Error())
	}

	userID, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
	if err != nil {
		if public {
			return handler(ctx, req)
		}
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	return handler(context.WithValue(ctx, userIDKey, userID), req)
}
