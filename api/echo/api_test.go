package echo_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	echoapi "go.pilab.hu/ssoadmin/api/echo"
	"go.pilab.hu/ssoadmin/domain"
	"go.pilab.hu/ssoadmin/dto"
	"go.pilab.hu/ssoadmin/internal/auth"
	"go.pilab.hu/ssoadmin/services"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func (r *memUserRepo) CreateUser(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return domain.ErrUserExists
	}
	r.users[user.Username] = *user
	return nil
}

func (r *memUserRepo) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *memUserRepo) UpdateUser(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.Username] = *user
	return nil
}

type memClientRepo struct {
	mu      sync.Mutex
	clients map[string]domain.Client
}

func (r *memClientRepo) CreateClient(_ context.Context, client *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[client.ClientID]; ok {
		return domain.ErrClientExists
	}
	r.clients[client.ClientID] = *client
	return nil
}

func (r *memClientRepo) GetClientByClientID(_ context.Context, clientID string) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	client, ok := r.clients[clientID]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	return &client, nil
}

func setupAdminAPITest(t *testing.T) *echo.Echo {
	t.Helper()
	log.Logger = zerolog.Nop()

	hasher := auth.NewBcryptPasswordHasher(bcrypt.MinCost)
	clientService := services.NewClientService(&memClientRepo{clients: map[string]domain.Client{}}, hasher)
	userService := services.NewUserService(&memUserRepo{users: map[string]domain.User{}}, hasher)

	e := echo.New()
	echoapi.NewAdminAPI(clientService, userService).RegisterRoutes(e)
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateClientHandler(t *testing.T) {
	e := setupAdminAPITest(t)

	body := `{
		"client_id": "web-app",
		"client_secret": "s3cret",
		"authentication_methods": ["client_secret_basic"],
		"authorization_grant_types": ["client_credentials"],
		"scopes": ["api.consume"],
		"redirect_uris": [],
		"access_token_time_to_live_seconds": 300
	}`

	rec := doJSON(e, http.MethodPost, "/v1/api/client", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Client created", resp.Message)
	assert.False(t, resp.Timestamp.IsZero())

	t.Run("Duplicate", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/v1/api/client", body)
		require.Equal(t, http.StatusConflict, rec.Code)

		var errResp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "client already exists", errResp.Message)
		assert.Equal(t, "/v1/api/client", errResp.Path)
		assert.False(t, errResp.Timestamp.IsZero())
	})

	t.Run("UnknownGrantType", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/v1/api/client", `{
			"client_id": "other",
			"client_secret": "s",
			"authentication_methods": ["client_secret_basic"],
			"authorization_grant_types": ["implicit"]
		}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var errResp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Contains(t, errResp.Message, "implicit")
	})
}

func TestUserHandlers(t *testing.T) {
	e := setupAdminAPITest(t)

	rec := doJSON(e, http.MethodPost, "/v1/api/user", `{
		"username": "alice",
		"password": "pw",
		"authorities": ["ROLE_ADMIN"]
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	t.Run("Get", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/v1/api/user/alice", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var view dto.GetUserResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, "alice", view.Username)
		assert.True(t, view.Enabled)
		assert.Equal(t, []string{"ROLE_ADMIN"}, view.Authorities)
	})

	t.Run("GetUnknown", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/v1/api/user/ghost", "")
		require.Equal(t, http.StatusNotFound, rec.Code)

		var errResp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "user not found", errResp.Message)
		assert.Equal(t, "/v1/api/user/ghost", errResp.Path)
	})

	t.Run("BadAuthority", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/v1/api/user", `{
			"username": "bob",
			"password": "pw",
			"authorities": ["ADMIN"]
		}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var errResp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Contains(t, errResp.Message, "ADMIN")
		assert.Equal(t, "/v1/api/user", errResp.Path)
	})

	t.Run("ChangePassword", func(t *testing.T) {
		rec := doJSON(e, http.MethodPut, "/v1/api/user/change-password", `{
			"username": "alice",
			"old_password": "pw",
			"new_password": "new"
		}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "User password has been changed", resp.Message)
	})

	t.Run("ChangePasswordWrongOld", func(t *testing.T) {
		rec := doJSON(e, http.MethodPut, "/v1/api/user/change-password", `{
			"username": "alice",
			"old_password": "pw",
			"new_password": "again"
		}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var errResp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "old password doesn't match", errResp.Message)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/v1/api/user", `{"username": `)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
