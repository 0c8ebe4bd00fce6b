//nolint:varnamelen
package echo

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"go.pilab.hu/ssoadmin/dto"
	serrors "go.pilab.hu/ssoadmin/errors"
	"go.pilab.hu/ssoadmin/services"
)

// AdminAPI exposes the provisioning operations over HTTP. Bearer-token
// verification is the reverse proxy's job; handlers here only execute
// business logic.
type AdminAPI struct {
	clientService *services.ClientService
	userService   *services.UserService
}

// NewAdminAPI initializes the admin API.
func NewAdminAPI(clientService *services.ClientService, userService *services.UserService) *AdminAPI {
	return &AdminAPI{
		clientService: clientService,
		userService:   userService,
	}
}

// RegisterRoutes registers the provisioning routes.
func (a *AdminAPI) RegisterRoutes(e *echo.Echo) {
	e.POST("/v1/api/client", a.CreateClientHandler)
	e.POST("/v1/api/user", a.CreateUserHandler)
	e.GET("/v1/api/user/:username", a.GetUserHandler)
	e.PUT("/v1/api/user/change-password", a.ChangeUserPasswordHandler)
}

// CreateClientHandler registers a new OAuth2 client.
func (a *AdminAPI) CreateClientHandler(c echo.Context) error {
	var req dto.CreateClientRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, serrors.NewInvalidRequest("malformed request body"))
	}

	resp, err := a.clientService.CreateClient(c.Request().Context(), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// CreateUserHandler provisions a new user account.
func (a *AdminAPI) CreateUserHandler(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, serrors.NewInvalidRequest("malformed request body"))
	}

	resp, err := a.userService.CreateUser(c.Request().Context(), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetUserHandler returns the stored metadata for a username.
func (a *AdminAPI) GetUserHandler(c echo.Context) error {
	resp, err := a.userService.GetUser(c.Request().Context(), c.Param("username"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// ChangeUserPasswordHandler rotates a user password.
func (a *AdminAPI) ChangeUserPasswordHandler(c echo.Context) error {
	var req dto.ChangeUserPasswordRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, serrors.NewInvalidRequest("malformed request body"))
	}

	resp, err := a.userService.ChangeUserPassword(c.Request().Context(), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// writeError renders the error envelope: timestamp, message, request path.
// Provisioning error codes map onto HTTP statuses; anything else is a 500
// with a generic message.
func writeError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := "internal server error"

	var perr *serrors.Error
	if errors.As(err, &perr) {
		message = perr.Description
		switch perr.Code {
		case serrors.CodeInvalidRequest:
			status = http.StatusBadRequest
		case serrors.CodeConflict:
			status = http.StatusConflict
		case serrors.CodeNotFound:
			status = http.StatusNotFound
		default:
			status = http.StatusInternalServerError
		}
	}

	if status == http.StatusInternalServerError {
		log.Ctx(c.Request().Context()).Error().Err(err).
			Str("path", c.Request().URL.Path).Msg("request failed")
	}

	return c.JSON(status, &dto.ErrorResponse{
		Timestamp: time.Now().UTC(),
		Message:   message,
		Path:      c.Request().URL.Path,
	})
}
