//go:generate go run go.uber.org/mock/mockgen@latest -source=$GOFILE -destination=mocks/mock_$GOFILE -package=mock_domain ClientRepository
package domain

import (
	"context"
	"time"
)

// Client is a registered OAuth2 client as consumed by the authorization
// server. Clients are immutable after registration; there is no update
// operation in this service.
//
//nolint:tagliatelle
type Client struct {
	ID             string        `bson:"_id"`
	ClientID       string        `bson:"client_id"`
	SecretHash     string        `bson:"client_secret"`
	AuthMethods    []AuthMethod  `bson:"authentication_methods"`
	GrantTypes     []GrantType   `bson:"authorization_grant_types"`
	Scopes         []string      `bson:"scopes"`
	RedirectURIs   []string      `bson:"redirect_uris"`
	AccessTokenTTL time.Duration `bson:"access_token_ttl"`
	CreatedAt      time.Time     `bson:"created_at"`
}

// ClientRepository defines storage for registered clients.
type ClientRepository interface {
	// CreateClient inserts a new client. Returns ErrClientExists when a
	// client with the same client_id is already registered.
	CreateClient(ctx context.Context, client *Client) error

	// GetClientByClientID retrieves a client by its public client_id.
	// Returns ErrClientNotFound when absent.
	GetClientByClientID(ctx context.Context, clientID string) (*Client, error)
}
