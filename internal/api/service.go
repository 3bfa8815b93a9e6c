package api

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "veildiary.v1.DiaryService"

// FullMethod returns the gRPC method path for name, e.g.
// "/veildiary.v1.DiaryService/Ping".
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// DiaryServiceServer is implemented by the server's handler.
type DiaryServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)

	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)

	SetUsername(context.Context, *SetUsernameRequest) (*ProfileResponse, error)
	GetMyProfile(context.Context, *GetMyProfileRequest) (*ProfileResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*ProfileResponse, error)
	CheckUsername(context.Context, *CheckUsernameRequest) (*CheckUsernameResponse, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*ProfileResponse, error)
	AvatarUploadURL(context.Context, *AvatarUploadURLRequest) (*AvatarUploadURLResponse, error)

	ListMappings(context.Context, *ListMappingsRequest) (*ListMappingsResponse, error)
	SaveMapping(context.Context, *SaveMappingRequest) (*SaveMappingResponse, error)
	DeleteMapping(context.Context, *DeleteMappingRequest) (*DeleteMappingResponse, error)

	CreateEntry(context.Context, *CreateEntryRequest) (*CreateEntryResponse, error)
	ListFeed(context.Context, *ListFeedRequest) (*ListEntriesResponse, error)
	ListMyEntries(context.Context, *ListMyEntriesRequest) (*ListEntriesResponse, error)
	ListUserEntries(context.Context, *ListUserEntriesRequest) (*ListEntriesResponse, error)
	DeleteEntry(context.Context, *DeleteEntryRequest) (*DeleteEntryResponse, error)
	TransformText(context.Context, *TransformTextRequest) (*TransformTextResponse, error)
}

// unary adapts a DiaryServiceServer method to a grpc.MethodDesc.
func unary[Req, Resp any](name string, call func(DiaryServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(DiaryServiceServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(name),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes DiaryService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DiaryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Ping", DiaryServiceServer.Ping),
		unary("Register", DiaryServiceServer.Register),
		unary("Login", DiaryServiceServer.Login),
		unary("RefreshToken", DiaryServiceServer.RefreshToken),
		unary("SetUsername", DiaryServiceServer.SetUsername),
		unary("GetMyProfile", DiaryServiceServer.GetMyProfile),
		unary("GetProfile", DiaryServiceServer.GetProfile),
		unary("CheckUsername", DiaryServiceServer.CheckUsername),
		unary("UpdateProfile", DiaryServiceServer.UpdateProfile),
		unary("AvatarUploadURL", DiaryServiceServer.AvatarUploadURL),
		unary("ListMappings", DiaryServiceServer.ListMappings),
		unary("SaveMapping", DiaryServiceServer.SaveMapping),
		unary("DeleteMapping", DiaryServiceServer.DeleteMapping),
		unary("CreateEntry", DiaryServiceServer.CreateEntry),
		unary("ListFeed", DiaryServiceServer.ListFeed),
		unary("ListMyEntries", DiaryServiceServer.ListMyEntries),
		unary("ListUserEntries", DiaryServiceServer.ListUserEntries),
		unary("DeleteEntry", DiaryServiceServer.DeleteEntry),
		unary("TransformText", DiaryServiceServer.TransformText),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "veildiary/v1/diary",
}

func RegisterDiaryServiceServer(s grpc.ServiceRegistrar, srv DiaryServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
