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

// ClientRepository implements domain.ClientRepository.
type ClientRepository struct {
	coll *mongo.Collection
}

// NewClientRepository creates the repository and ensures the unique index
// on client_id. The index is what turns concurrent duplicate registrations
// into ErrClientExists instead of corrupt state.
func NewClientRepository(ctx context.Context, db *mongo.Database) (*ClientRepository, error) {
	repo := &ClientRepository{coll: db.Collection(ClientsCollection)}

	_, err := repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "client_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client_id index: %w", err)
	}

	return repo, nil
}

// CreateClient inserts the client in a single atomic operation; a
// duplicate client_id is reported by the unique index.
func (r *ClientRepository) CreateClient(ctx context.Context, client *domain.Client) error {
	_, err := r.coll.InsertOne(ctx, client)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrClientExists
		}
		return fmt.Errorf("failed to insert client: %w", err)
	}
	return nil
}

// GetClientByClientID looks up a client by its public client_id.
func (r *ClientRepository) GetClientByClientID(ctx context.Context, clientID string) (*domain.Client, error) {
	var client domain.Client
	err := r.coll.FindOne(ctx, bson.M{"client_id": clientID}).Decode(&client)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	return &client, nil
}

var _ domain.ClientRepository = (*ClientRepository)(nil)
