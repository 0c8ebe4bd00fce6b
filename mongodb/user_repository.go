package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"go.pilab.hu/ssoadmin/domain"
)

// UserRepository implements domain.UserRepository.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates the repository and ensures the unique index on
// username. The index carries no collation: usernames are case-sensitive
// keys, so "Alice" and "alice" are distinct accounts.
func NewUserRepository(ctx context.Context, db *mongo.Database) (*UserRepository, error) {
	repo := &UserRepository{coll: db.Collection(UsersCollection)}

	_, err := repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create username index: %w", err)
	}

	return repo, nil
}

// CreateUser inserts the user in a single atomic operation; a duplicate
// username is reported by the unique index.
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = bson.NewObjectID().Hex()
	}

	_, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByUsername looks up a user by its exact username.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// UpdateUser replaces the stored record keyed by username. Concurrent
// updates are last-writer-wins; there is no compare-and-swap here.
func (r *UserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"username": user.Username}, user)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

var _ domain.UserRepository = (*UserRepository)(nil)
