package client

import (
	"context"

	"github.com/dmitrijs2005/veildiary/internal/api"
)

func (s *GRPCClient) Mappings(ctx context.Context) ([]*api.Mapping, error) {
	resp, err := s.client.ListMappings(ctx, &api.ListMappingsRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Mappings, nil
}

func (s *GRPCClient) SaveMapping(ctx context.Context, original, pseudonym string) (*api.Mapping, error) {
	resp, err := s.client.SaveMapping(ctx, &api.SaveMappingRequest{Original: original, Pseudonym: pseudonym})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Mapping, nil
}

func (s *GRPCClient) DeleteMapping(ctx context.Context, id string) error {
	_, err := s.client.DeleteMapping(ctx, &api.DeleteMappingRequest{ID: id})
	return mapError(err)
}

func (s *GRPCClient) CreateEntry(ctx context.Context, content string, public, anonymize bool) (*api.Entry, error) {
	resp, err := s.client.CreateEntry(ctx, &api.CreateEntryRequest{Content: content, IsPublic: public, Anonymize: anonymize})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Entry, nil
}

func (s *GRPCClient) Feed(ctx context.Context) ([]*api.Entry, error) {
	resp, err := s.client.ListFeed(ctx, &api.ListFeedRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Entries, nil
}

func (s *GRPCClient) MyEntries(ctx context.Context) ([]*api.Entry, error) {
	resp, err := s.client.ListMyEntries(ctx, &api.ListMyEntriesRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Entries, nil
}

func (s *GRPCClient) UserEntries(ctx context.Context, username string) ([]*api.Entry, error) {
	resp, err := s.client.ListUserEntries(ctx, &api.ListUserEntriesRequest{Username: username})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Entries, nil
}

func (s *GRPCClient) DeleteEntry(ctx context.Context, id string) error {
	_, err := s.client.DeleteEntry(ctx, &api.DeleteEntryRequest{ID: id})
	return mapError(err)
}

// Transform anonymizes text with the caller's mappings, or reverses the
// substitution when reverse is set.
func (s *GRPCClient) Transform(ctx context.Context, text string, reverse bool) (string, error) {
	dir := api.DirectionAnonymize
	if reverse {
		dir = api.DirectionDeanonymize
	}
	resp, err := s.client.TransformText(ctx, &api.TransformTextRequest{Text: text, Direction: dir})
	if err != nil {
		return "", mapError(err)
	}
	return resp.Text, nil
}
