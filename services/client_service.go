package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"go.pilab.hu/ssoadmin/domain"
	"go.pilab.hu/ssoadmin/dto"
	serrors "go.pilab.hu/ssoadmin/errors"
	"go.pilab.hu/ssoadmin/internal/metrics"
)

// ClientService provisions OAuth2 clients for the authorization server.
type ClientService struct {
	clients domain.ClientRepository
	hasher  PasswordHasher
}

// NewClientService creates a new ClientService.
func NewClientService(clients domain.ClientRepository, hasher PasswordHasher) *ClientService {
	return &ClientService{
		clients: clients,
		hasher:  hasher,
	}
}

// CreateClient registers a new OAuth2 client. The secret is hashed before
// storage; authentication methods and grant types are resolved against the
// closed vocabularies. Duplicate client_ids surface as a conflict error
// from the storage layer's uniqueness constraint.
func (s *ClientService) CreateClient(ctx context.Context, req *dto.CreateClientRequest) (*dto.Response, error) {
	methods, err := domain.ResolveAuthMethods(req.AuthenticationMethods)
	if err != nil {
		return nil, err
	}
	grants, err := domain.ResolveGrantTypes(req.AuthorizationGrantTypes)
	if err != nil {
		return nil, err
	}

	secretHash, err := s.hasher.Hash(req.ClientSecret)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to hash client secret")
		return nil, serrors.NewServerError("error processing client secret")
	}

	client := &domain.Client{
		ID:             uuid.NewString(),
		ClientID:       req.ClientID,
		SecretHash:     secretHash,
		AuthMethods:    methods,
		GrantTypes:     grants,
		Scopes:         req.Scopes,
		RedirectURIs:   req.RedirectURIs,
		AccessTokenTTL: time.Duration(req.AccessTokenTTLSeconds) * time.Second,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.clients.CreateClient(ctx, client); err != nil {
		if errors.Is(err, domain.ErrClientExists) {
			return nil, serrors.NewConflict("client already exists")
		}
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	metrics.ClientsCreatedTotal.Inc()
	log.Ctx(ctx).Info().Str("client_id", req.ClientID).Msg("client registered")

	return dto.NewResponse("Client created"), nil
}

// DefaultClientConfig drives the startup bootstrap of the default
// machine-to-machine client.
type DefaultClientConfig struct {
	Create         bool
	ClientID       string
	ClientSecret   string
	Scope          string
	AccessTokenTTL time.Duration
}

// EnsureDefaultClient creates the configured default client when the
// bootstrap flag is set and no client with that client_id exists yet. The
// default client authenticates with client_secret_basic and is granted
// client_credentials only. Re-running is a no-op.
func (s *ClientService) EnsureDefaultClient(ctx context.Context, cfg DefaultClientConfig) error {
	if !cfg.Create {
		return nil
	}

	_, err := s.clients.GetClientByClientID(ctx, cfg.ClientID)
	if err == nil {
		log.Ctx(ctx).Debug().Str("client_id", cfg.ClientID).Msg("default client already present, skipping bootstrap")
		return nil
	}
	if !errors.Is(err, domain.ErrClientNotFound) {
		return fmt.Errorf("failed to check for default client: %w", err)
	}

	secretHash, err := s.hasher.Hash(cfg.ClientSecret)
	if err != nil {
		return fmt.Errorf("failed to hash default client secret: %w", err)
	}

	client := &domain.Client{
		ID:             uuid.NewString(),
		ClientID:       cfg.ClientID,
		SecretHash:     secretHash,
		AuthMethods:    []domain.AuthMethod{domain.AuthMethodClientSecretBasic},
		GrantTypes:     []domain.GrantType{domain.GrantTypeClientCredentials},
		Scopes:         []string{cfg.Scope},
		AccessTokenTTL: cfg.AccessTokenTTL,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.clients.CreateClient(ctx, client); err != nil {
		// Lost a race against another instance bootstrapping the same
		// client; the outcome is the same.
		if errors.Is(err, domain.ErrClientExists) {
			return nil
		}
		return fmt.Errorf("failed to create default client: %w", err)
	}

	log.Ctx(ctx).Info().Str("client_id", cfg.ClientID).Msg("default client created")
	return nil
}
