//go:generate go run go.uber.org/mock/mockgen@latest -source=$GOFILE -destination=mocks/mock_$GOFILE -package=mock_domain AuthorizationRepository
package domain

import (
	"context"
	"time"
)

// Authorization is a stored OAuth2 authorization owned by the
// authorization server. This service only reads and deletes these records;
// the server writes them during token issuance. Each expiry field is
// optional and set only when the corresponding artifact was issued.
//
//nolint:tagliatelle
type Authorization struct {
	ID                         string     `bson:"_id,omitempty"`
	AuthorizationCodeExpiresAt *time.Time `bson:"authorization_code_expires_at,omitempty"`
	AccessTokenExpiresAt       *time.Time `bson:"access_token_expires_at,omitempty"`
	OIDCIDTokenExpiresAt       *time.Time `bson:"oidc_id_token_expires_at,omitempty"`
	RefreshTokenExpiresAt      *time.Time `bson:"refresh_token_expires_at,omitempty"`
	DeviceCodeExpiresAt        *time.Time `bson:"device_code_expires_at,omitempty"`
	UserCodeExpiresAt          *time.Time `bson:"user_code_expires_at,omitempty"`
}

// Expired reports whether any present expiry timestamp is strictly
// before now. Absent timestamps never match.
func (a *Authorization) Expired(now time.Time) bool {
	for _, t := range []*time.Time{
		a.AuthorizationCodeExpiresAt,
		a.AccessTokenExpiresAt,
		a.OIDCIDTokenExpiresAt,
		a.RefreshTokenExpiresAt,
		a.DeviceCodeExpiresAt,
		a.UserCodeExpiresAt,
	} {
		if t != nil && t.Before(now) {
			return true
		}
	}
	return false
}

// AuthorizationRepository defines retention access to the authorization
// store. No create or update operations exist here; issuance belongs to
// the authorization server.
type AuthorizationRepository interface {
	// DeleteExpired removes every authorization with at least one present
	// expiry timestamp before now and returns the number of deleted rows.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
