package api

import (
	"context"

	"google.golang.org/grpc"
)

// Client calls DiaryService over any grpc.ClientConnInterface. Every call
// selects the JSON codec.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, c *Client, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c, "Ping", in, opts)
}

func (c *Client) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c, "Register", in, opts)
}

func (c *Client) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c, "Login", in, opts)
}

func (c *Client) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c, "RefreshToken", in, opts)
}

func (c *Client) SetUsername(ctx context.Context, in *SetUsernameRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c, "SetUsername", in, opts)
}

func (c *Client) GetMyProfile(ctx context.Context, in *GetMyProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c, "GetMyProfile", in, opts)
}

func (c *Client) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c, "GetProfile", in, opts)
}

func (c *Client) CheckUsername(ctx context.Context, in *CheckUsernameRequest, opts ...grpc.CallOption) (*CheckUsernameResponse, error) {
	return invoke[CheckUsernameResponse](ctx, c, "CheckUsername", in, opts)
}

func (c *Client) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c, "UpdateProfile", in, opts)
}

func (c *Client) AvatarUploadURL(ctx context.Context, in *AvatarUploadURLRequest, opts ...grpc.CallOption) (*AvatarUploadURLResponse, error) {
	return invoke[AvatarUploadURLResponse](ctx, c, "AvatarUploadURL", in, opts)
}

func (c *Client) ListMappings(ctx context.Context, in *ListMappingsRequest, opts ...grpc.CallOption) (*ListMappingsResponse, error) {
	return invoke[ListMappingsResponse](ctx, c, "ListMappings", in, opts)
}

func (c *Client) SaveMapping(ctx context.Context, in *SaveMappingRequest, opts ...grpc.CallOption) (*SaveMappingResponse, error) {
	return invoke[SaveMappingResponse](ctx, c, "SaveMapping", in, opts)
}

func (c *Client) DeleteMapping(ctx context.Context, in *DeleteMappingRequest, opts ...grpc.CallOption) (*DeleteMappingResponse, error) {
	return invoke[DeleteMappingResponse](ctx, c, "DeleteMapping", in, opts)
}

func (c *Client) CreateEntry(ctx context.Context, in *CreateEntryRequest, opts ...grpc.CallOption) (*CreateEntryResponse, error) {
	return invoke[CreateEntryResponse](ctx, c, "CreateEntry", in, opts)
}

func (c *Client) ListFeed(ctx context.Context, in *ListFeedRequest, opts ...grpc.CallOption) (*ListEntriesResponse, error) {
	return invoke[ListEntriesResponse](ctx, c, "ListFeed", in, opts)
}

func (c *Client) ListMyEntries(ctx context.Context, in *ListMyEntriesRequest, opts ...grpc.CallOption) (*ListEntriesResponse, error) {
	return invoke[ListEntriesResponse](ctx, c, "ListMyEntries", in, opts)
}

func (c *Client) ListUserEntries(ctx context.Context, in *ListUserEntriesRequest, opts ...grpc.CallOption) (*ListEntriesResponse, error) {
	return invoke[ListEntriesResponse](ctx, c, "ListUserEntries", in, opts)
}

func (c *Client) DeleteEntry(ctx context.Context, in *DeleteEntryRequest, opts ...grpc.CallOption) (*DeleteEntryResponse, error) {
	return invoke[DeleteEntryResponse](ctx, c, "DeleteEntry", in, opts)
}

func (c *Client) TransformText(ctx context.Context, in *TransformTextRequest, opts ...grpc.CallOption) (*TransformTextResponse, error) {
	return invoke[TransformTextResponse](ctx, c, "TransformText", in, opts)
}
