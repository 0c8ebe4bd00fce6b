package dto

import "time"

// CreateClientRequest is the payload for registering an OAuth2 client.
type CreateClientRequest struct {
	ClientID                string   `json:"client_id"`
	ClientSecret            string   `json:"client_secret"` // Raw secret, hashed by the service
	AuthenticationMethods   []string `json:"authentication_methods"`
	AuthorizationGrantTypes []string `json:"authorization_grant_types"`
	Scopes                  []string `json:"scopes"`
	RedirectURIs            []string `json:"redirect_uris"`
	AccessTokenTTLSeconds   int64    `json:"access_token_time_to_live_seconds"`
}

// CreateUserRequest is the payload for provisioning a user account.
type CreateUserRequest struct {
	Username    string   `json:"username"`
	Password    string   `json:"password"` // Raw password, hashed by the service
	Authorities []string `json:"authorities"`
}

// ChangeUserPasswordRequest is the payload for rotating a user password.
type ChangeUserPasswordRequest struct {
	Username    string `json:"username"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// GetUserResponse carries user metadata; the password hash is never exposed.
type GetUserResponse struct {
	Username    string   `json:"username"`
	Enabled     bool     `json:"enabled"`
	Authorities []string `json:"authorities"`
}

// Response is the generic acknowledgement envelope.
type Response struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// NewResponse creates an acknowledgement stamped with the current time.
func NewResponse(message string) *Response {
	return &Response{
		Timestamp: time.Now().UTC(),
		Message:   message,
	}
}

// ErrorResponse is the envelope for failed requests.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}
