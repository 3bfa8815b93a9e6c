package grpc

import (
	"context"

	"github.com/dmitrijs2005/veildiary/internal/api"
	"github.com/dmitrijs2005/veildiary/internal/server/models"
	"github.com/dmitrijs2005/veildiary/internal/server/services"
)

func (s *GRPCServer) ListMappings(ctx context.Context, req *api.ListMappingsRequest) (*api.ListMappingsResponse, error) {
	ms, err := s.mappings.List(ctx, UserIDFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	out := make([]*api.Mapping, 0, len(ms))
	for _, m := range ms {
		out = append(out, toAPIMapping(m))
	}
	return &api.ListMappingsResponse{Mappings: out}, nil
}

func (s *GRPCServer) SaveMapping(ctx context.Context, req *api.SaveMappingRequest) (*api.SaveMappingResponse, error) {
	// blank inputs are reported by the store itself
	if models.NormalizeOriginal(req.Original) != "" {
		if err := services.ValidateMapping(req.Original, req.Pseudonym); err != nil {
			return nil, s.toStatus(ctx, err)
		}
	}

	m, err := s.mappings.CreateOrUpdate(ctx, UserIDFromContext(ctx), req.Original, req.Pseudonym)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.SaveMappingResponse{Mapping: toAPIMapping(m)}, nil
}

func (s *GRPCServer) DeleteMapping(ctx context.Context, req *api.DeleteMappingRequest) (*api.DeleteMappingResponse, error) {
	if err := s.mappings.Delete(ctx, UserIDFromContext(ctx), req.ID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.DeleteMappingResponse{}, nil
}
