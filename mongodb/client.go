package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/v2/mongo/otelmongo"
)

// Collection names. The authorization collection is owned by the
// authorization server; this service only deletes from it.
const (
	ClientsCollection        = "oauth_clients"
	UsersCollection          = "oauth_users"
	AuthorizationsCollection = "oauth2_authorizations"
)

// Store holds the MongoDB connection shared by the repositories.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes an instrumented MongoDB connection and verifies it
// with a ping against the primary.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetMonitor(otelmongo.NewMonitor())

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB primary: %w", err)
	}

	log.Info().Str("database", dbName).Msg("MongoDB connection established")

	return &Store{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// Database returns the underlying database handle.
func (s *Store) Database() *mongo.Database {
	return s.db
}

// Ping verifies the connection, for health checks.
func (s *Store) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.client.Ping(pingCtx, readpref.Primary())
}

// Close disconnects the client. It should be called on shutdown.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
