package client

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/veildiary/internal/api"
	"github.com/dmitrijs2005/veildiary/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Client is what the CLI needs from the server.
type Client interface {
	Ping(ctx context.Context) error

	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (Tokens, error)
	SetTokens(t Tokens)

	SetUsername(ctx context.Context, username string) (*api.Profile, error)
	MyProfile(ctx context.Context) (*api.Profile, error)
	Profile(ctx context.Context, username string) (*api.Profile, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdateProfile(ctx context.Context, bio, pictureURL string) (*api.Profile, error)
	AvatarUploadURL(ctx context.Context) (key, url string, err error)

	Mappings(ctx context.Context) ([]*api.Mapping, error)
	SaveMapping(ctx context.Context, original, pseudonym string) (*api.Mapping, error)
	DeleteMapping(ctx context.Context, id string) error

	CreateEntry(ctx context.Context, content string, public, anonymize bool) (*api.Entry, error)
	Feed(ctx context.Context) ([]*api.Entry, error)
	MyEntries(ctx context.Context) ([]*api.Entry, error)
	UserEntries(ctx context.Context, username string) ([]*api.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
	Transform(ctx context.Context, text string, reverse bool) (string, error)

	Close() error
}

// Tokens is an access/refresh pair.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      *api.Client

	mu        sync.Mutex
	tokens    Tokens
	onRefresh func(Tokens)
}

type Option func(*GRPCClient)

// WithTokens starts the client with a stored session.
func WithTokens(t Tokens) Option {
	return func(c *GRPCClient) { c.tokens = t }
}

// WithRefreshHook is called with the new pair after every silent refresh.
func WithRefreshHook(fn func(Tokens)) Option {
	return func(c *GRPCClient) { c.onRefresh = fn }
}

// NewGRPCClient dials endpointURL lazily. Extra dial options come after the
// defaults, so tests can swap the transport.
func NewGRPCClient(endpointURL string, opts []Option, dialOpts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	for _, o := range opts {
		o(c)
	}

	dial := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, dialOpts...)

	conn, err := grpc.NewClient(endpointURL, dial...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = api.NewClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Tokens() Tokens {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens
}

func (s *GRPCClient) SetTokens(t Tokens) {
	s.mu.Lock()
	s.tokens = t
	s.mu.Unlock()
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if method == api.FullMethod("RefreshToken") {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	tokens := s.Tokens()
	err := invoker(withAccessToken(ctx, tokens.AccessToken), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if tokens.RefreshToken == "" {
		return err
	}

	resp, rerr := s.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	if rerr != nil {
		return rerr
	}

	fresh := Tokens{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}
	s.SetTokens(fresh)
	if s.onRefresh != nil {
		s.onRefresh(fresh)
	}

	return invoker(withAccessToken(ctx, fresh.AccessToken), method, req, reply, cc, opts...)
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, email, password string) error {
	_, err := s.client.Register(ctx, &api.RegisterRequest{Email: email, Password: password})
	return mapError(err)
}

// Login stores the returned pair on the client and hands it back for
// persisting.
func (s *GRPCClient) Login(ctx context.Context, email, password string) (Tokens, error) {
	resp, err := s.client.Login(ctx, &api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return Tokens{}, mapError(err)
	}
	t := Tokens{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}
	s.SetTokens(t)
	return t, nil
}
