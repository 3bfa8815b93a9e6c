package grpc

import (
	"context"

	"github.com/dmitrijs2005/veildiary/internal/api"
)

func (s *GRPCServer) SetUsername(ctx context.Context, req *api.SetUsernameRequest) (*api.ProfileResponse, error) {
	p, err := s.profiles.SetUsername(ctx, UserIDFromContext(ctx), req.Username)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.ProfileResponse{Profile: toAPIProfile(p)}, nil
}

func (s *GRPCServer) GetMyProfile(ctx context.Context, req *api.GetMyProfileRequest) (*api.ProfileResponse, error) {
	p, err := s.profiles.GetMyProfile(ctx, UserIDFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.ProfileResponse{Profile: toAPIProfile(p)}, nil
}

func (s *GRPCServer) GetProfile(ctx context.Context, req *api.GetProfileRequest) (*api.ProfileResponse, error) {
	p, err := s.profiles.GetProfile(ctx, req.Username)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.ProfileResponse{Profile: toAPIProfile(p)}, nil
}

func (s *GRPCServer) CheckUsername(ctx context.Context, req *api.CheckUsernameRequest) (*api.CheckUsernameResponse, error) {
	exists, err := s.profiles.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.CheckUsernameResponse{Exists: exists}, nil
}

func (s *GRPCServer) UpdateProfile(ctx context.Context, req *api.UpdateProfileRequest) (*api.ProfileResponse, error) {
	p, err := s.profiles.UpdateProfile(ctx, UserIDFromContext(ctx), req.Bio, req.ProfilePictureURL)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.ProfileResponse{Profile: toAPIProfile(p)}, nil
}

func (s *GRPCServer) AvatarUploadURL(ctx context.Context, req *api.AvatarUploadURLRequest) (*api.AvatarUploadURLResponse, error) {
	key, url, err := s.profiles.AvatarUploadURL(ctx, UserIDFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.AvatarUploadURLResponse{Key: key, URL: url}, nil
}
