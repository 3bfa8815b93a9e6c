package grpc

import (
	"context"

	"github.com/dmitrijs2005/veildiary/internal/api"
	"github.com/dmitrijs2005/veildiary/internal/common"
	"github.com/dmitrijs2005/veildiary/internal/server/services"
)

func (s *GRPCServer) CreateEntry(ctx context.Context, req *api.CreateEntryRequest) (*api.CreateEntryResponse, error) {
	e, err := s.entries.Create(ctx, UserIDFromContext(ctx), req.Content, req.IsPublic, req.Anonymize)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.CreateEntryResponse{Entry: toAPIEntry(e)}, nil
}

func (s *GRPCServer) ListFeed(ctx context.Context, req *api.ListFeedRequest) (*api.ListEntriesResponse, error) {
	es, err := s.entries.Feed(ctx, UserIDFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return toAPIEntries(es), nil
}

func (s *GRPCServer) ListMyEntries(ctx context.Context, req *api.ListMyEntriesRequest) (*api.ListEntriesResponse, error) {
	es, err := s.entries.Mine(ctx, UserIDFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return toAPIEntries(es), nil
}

func (s *GRPCServer) ListUserEntries(ctx context.Context, req *api.ListUserEntriesRequest) (*api.ListEntriesResponse, error) {
	es, err := s.entries.ByUser(ctx, UserIDFromContext(ctx), req.Username)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return toAPIEntries(es), nil
}

func (s *GRPCServer) DeleteEntry(ctx context.Context, req *api.DeleteEntryRequest) (*api.DeleteEntryResponse, error) {
	if err := s.entries.Delete(ctx, UserIDFromContext(ctx), req.ID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.DeleteEntryResponse{}, nil
}

func (s *GRPCServer) TransformText(ctx context.Context, req *api.TransformTextRequest) (*api.TransformTextResponse, error) {
	var dir services.Direction
	switch req.Direction {
	case "", api.DirectionAnonymize:
		dir = services.Anonymize
	case api.DirectionDeanonymize:
		dir = services.Deanonymize
	default:
		return nil, s.toStatus(ctx, common.NewValidationError("direction", "must be anonymize or deanonymize"))
	}

	text, err := s.entries.TransformText(ctx, UserIDFromContext(ctx), req.Text, dir)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.TransformTextResponse{Text: text}, nil
}
