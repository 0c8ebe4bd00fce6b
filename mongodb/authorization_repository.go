package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"go.pilab.hu/ssoadmin/domain"
)

// expiryFields are the six independent expiry dimensions of a stored
// authorization.
var expiryFields = []string{
	"authorization_code_expires_at",
	"access_token_expires_at",
	"oidc_id_token_expires_at",
	"refresh_token_expires_at",
	"device_code_expires_at",
	"user_code_expires_at",
}

// AuthorizationRepository implements domain.AuthorizationRepository over
// the authorization server's collection. No indexes are created here; the
// collection belongs to the authorization server.
type AuthorizationRepository struct {
	coll *mongo.Collection
}

// NewAuthorizationRepository creates the repository.
func NewAuthorizationRepository(db *mongo.Database) *AuthorizationRepository {
	return &AuthorizationRepository{coll: db.Collection(AuthorizationsCollection)}
}

// DeleteExpired removes every authorization where at least one expiry
// timestamp is strictly before now. BSON comparisons are type-bracketed,
// so records with a field absent or null are only matched through their
// present timestamps.
func (r *AuthorizationRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	or := make(bson.A, 0, len(expiryFields))
	for _, field := range expiryFields {
		or = append(or, bson.M{field: bson.M{"$lt": now}})
	}

	result, err := r.coll.DeleteMany(ctx, bson.M{"$or": or})
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired authorizations: %w", err)
	}
	return result.DeletedCount, nil
}

var _ domain.AuthorizationRepository = (*AuthorizationRepository)(nil)
