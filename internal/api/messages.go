package api

import "google.golang.org/protobuf/types/known/timestamppb"

// Transform directions accepted by TransformText.
const (
	DirectionAnonymize   = "anonymize"
	DirectionDeanonymize = "deanonymize"
)

type Mapping struct {
	ID        string                 `json:"id"`
	Original  string                 `json:"original"`
	Pseudonym string                 `json:"pseudonym"`
	CreatedAt *timestamppb.Timestamp `json:"created_at,omitempty"`
}

type Profile struct {
	ID                string                 `json:"id"`
	UserID            string                 `json:"user_id"`
	Username          string                 `json:"username"`
	Bio               string                 `json:"bio,omitempty"`
	ProfilePictureURL string                 `json:"profile_picture_url,omitempty"`
	CreatedAt         *timestamppb.Timestamp `json:"created_at,omitempty"`
}

// Entry is a diary entry as seen by the caller. OriginalContent is only
// set for the caller's own anonymized entries.
type Entry struct {
	ID              string                 `json:"id"`
	UserID          string                 `json:"user_id"`
	Username        string                 `json:"username"`
	Content         string                 `json:"content"`
	OriginalContent string                 `json:"original_content,omitempty"`
	IsPublic        bool                   `json:"is_public"`
	IsAnonymized    bool                   `json:"is_anonymized"`
	CreatedAt       *timestamppb.Timestamp `json:"created_at,omitempty"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	UserID string `json:"user_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type SetUsernameRequest struct {
	Username string `json:"username"`
}

type GetMyProfileRequest struct{}

type GetProfileRequest struct {
	Username string `json:"username"`
}

type UpdateProfileRequest struct {
	Bio               string `json:"bio"`
	ProfilePictureURL string `json:"profile_picture_url"`
}

type ProfileResponse struct {
	Profile *Profile `json:"profile"`
}

type CheckUsernameRequest struct {
	Username string `json:"username"`
}

type CheckUsernameResponse struct {
	Exists bool `json:"exists"`
}

type AvatarUploadURLRequest struct{}

type AvatarUploadURLResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type ListMappingsRequest struct{}

type ListMappingsResponse struct {
	Mappings []*Mapping `json:"mappings"`
}

type SaveMappingRequest struct {
	Original  string `json:"original"`
	Pseudonym string `json:"pseudonym"`
}

type SaveMappingResponse struct {
	Mapping *Mapping `json:"mapping"`
}

type DeleteMappingRequest struct {
	ID string `json:"id"`
}

type DeleteMappingResponse struct{}

type CreateEntryRequest struct {
	Content   string `json:"content"`
	IsPublic  bool   `json:"is_public"`
	Anonymize bool   `json:"anonymize"`
}

type CreateEntryResponse struct {
	Entry *Entry `json:"entry"`
}

type ListFeedRequest struct{}

type ListMyEntriesRequest struct{}

type ListUserEntriesRequest struct {
	Username string `json:"username"`
}

type ListEntriesResponse struct {
	Entries []*Entry `json:"entries"`
}

type DeleteEntryRequest struct {
	ID string `json:"id"`
}

type DeleteEntryResponse struct{}

type TransformTextRequest struct {
	Text      string `json:"text"`
	Direction string `json:"direction"`
}

type TransformTextResponse struct {
	Text string `json:"text"`
}
