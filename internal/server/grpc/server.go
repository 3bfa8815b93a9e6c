// Package grpc exposes the diary services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/veildiary/internal/api"
	"github.com/dmitrijs2005/veildiary/internal/logging"
	"github.com/dmitrijs2005/veildiary/internal/server/metrics"
	"github.com/dmitrijs2005/veildiary/internal/server/services"
	"google.golang.org/grpc"
)

// Services bundles the domain services the handlers call.
type Services struct {
	Users    *services.UserService
	Profiles *services.ProfileService
	Mappings *services.MappingService
	Entries  *services.EntryService
}

type GRPCServer struct {
	address   string
	users     *services.UserService
	profiles  *services.ProfileService
	mappings  *services.MappingService
	entries   *services.EntryService
	metrics   *metrics.Metrics
	logger    logging.Logger
	jwtSecret []byte
}

var _ api.DiaryServiceServer = (*GRPCServer)(nil)

// NewGRPCServer wires the handlers. m may be nil to run without metrics.
func NewGRPCServer(a string, l logging.Logger, svc Services, m *metrics.Metrics, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     svc.Users,
		profiles:  svc.Profiles,
		mappings:  svc.Mappings,
		entries:   svc.Entries,
		metrics:   m,
		jwtSecret: []byte(secretKey),
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}

func (s *GRPCServer) newServer() *grpc.Server {
	interceptors := []grpc.UnaryServerInterceptor{}
	if s.metrics != nil {
		interceptors = append(interceptors, s.metrics.UnaryInterceptor)
	}
	interceptors = append(interceptors, s.accessTokenInterceptor)

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors...))
	api.RegisterDiaryServiceServer(srv, s)
	return srv
}
