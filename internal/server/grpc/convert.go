package grpc

import (
	"github.com/dmitrijs2005/veildiary/internal/api"
	"github.com/dmitrijs2005/veildiary/internal/server/models"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func toAPIMapping(m *models.Mapping) *api.Mapping {
	return &api.Mapping{
		ID:        m.ID,
		Original:  m.Original,
		Pseudonym: m.Pseudonym,
		CreatedAt: timestamppb.New(m.CreatedAt),
	}
}

func toAPIProfile(p *models.Profile) *api.Profile {
	return &api.Profile{
		ID:                p.ID,
		UserID:            p.UserID,
		Username:          p.Username,
		Bio:               p.Bio,
		ProfilePictureURL: p.ProfilePictureURL,
		CreatedAt:         timestamppb.New(p.CreatedAt),
	}
}

func toAPIEntry(e *models.Entry) *api.Entry {
	return &api.Entry{
		ID:              e.ID,
		UserID:          e.UserID,
		Username:        e.Username,
		Content:         e.Content,
		OriginalContent: e.OriginalContent,
		IsPublic:        e.IsPublic,
		IsAnonymized:    e.IsAnonymized,
		CreatedAt:       timestamppb.New(e.CreatedAt),
	}
}

func toAPIEntries(es []*models.Entry) *api.ListEntriesResponse {
	out := make([]*api.Entry, 0, len(es))
	for _, e := range es {
		out = append(out, toAPIEntry(e))
	}
	return &api.ListEntriesResponse{Entries: out}
}
