package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// AnonymousUsername is shown for authors that never picked a username.
const AnonymousUsername = "Anonymous"
