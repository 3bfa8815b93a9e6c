package client

import (
	"context"

	"github.com/dmitrijs2005/veildiary/internal/api"
)

func (s *GRPCClient) SetUsername(ctx context.Context, username string) (*api.Profile, error) {
	resp, err := s.client.SetUsername(ctx, &api.SetUsernameRequest{Username: username})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Profile, nil
}

func (s *GRPCClient) MyProfile(ctx context.Context) (*api.Profile, error) {
	resp, err := s.client.GetMyProfile(ctx, &api.GetMyProfileRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Profile, nil
}

func (s *GRPCClient) Profile(ctx context.Context, username string) (*api.Profile, error) {
	resp, err := s.client.GetProfile(ctx, &api.GetProfileRequest{Username: username})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Profile, nil
}

func (s *GRPCClient) UsernameExists(ctx context.Context, username string) (bool, error) {
	resp, err := s.client.CheckUsername(ctx, &api.CheckUsernameRequest{Username: username})
	if err != nil {
		return false, mapError(err)
	}
	return resp.Exists, nil
}

func (s *GRPCClient) UpdateProfile(ctx context.Context, bio, pictureURL string) (*api.Profile, error) {
	resp, err := s.client.UpdateProfile(ctx, &api.UpdateProfileRequest{Bio: bio, ProfilePictureURL: pictureURL})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Profile, nil
}

func (s *GRPCClient) AvatarUploadURL(ctx context.Context) (string, string, error) {
	resp, err := s.client.AvatarUploadURL(ctx, &api.AvatarUploadURLRequest{})
	if err != nil {
		return "", "", mapError(err)
	}
	return resp.Key, resp.URL, nil
}
