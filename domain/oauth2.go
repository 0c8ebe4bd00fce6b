package domain

import (
	serrors "go.pilab.hu/ssoadmin/errors"
)

// AuthMethod is a client authentication method supported by the
// authorization server.
type AuthMethod string

const (
	AuthMethodClientSecretBasic AuthMethod = "client_secret_basic"
	AuthMethodClientSecretPost  AuthMethod = "client_secret_post"
	AuthMethodClientSecretJWT   AuthMethod = "client_secret_jwt"
	AuthMethodPrivateKeyJWT     AuthMethod = "private_key_jwt"
)

// GrantType is an authorization grant type supported by the authorization
// server.
type GrantType string

const (
	GrantTypeAuthorizationCode GrantType = "authorization_code"
	GrantTypeRefreshToken      GrantType = "refresh_token"
	GrantTypeClientCredentials GrantType = "client_credentials"
	GrantTypeJWTBearer         GrantType = "jwt_bearer"
	GrantTypeDeviceCode        GrantType = "device_code"
)

// The closed vocabularies. Adding support for a new method or grant type
// means adding a row here.
var (
	authMethods = map[string]AuthMethod{
		"client_secret_basic": AuthMethodClientSecretBasic,
		"client_secret_post":  AuthMethodClientSecretPost,
		"client_secret_jwt":   AuthMethodClientSecretJWT,
		"private_key_jwt":     AuthMethodPrivateKeyJWT,
	}
	grantTypes = map[string]GrantType{
		"authorization_code": GrantTypeAuthorizationCode,
		"refresh_token":      GrantTypeRefreshToken,
		"client_credentials": GrantTypeClientCredentials,
		"jwt_bearer":         GrantTypeJWTBearer,
		"device_code":        GrantTypeDeviceCode,
	}
)

// ResolveAuthMethods maps untrusted name strings onto the closed set of
// authentication methods. Duplicates collapse; resolution stops at the
// first unknown name.
func ResolveAuthMethods(names []string) ([]AuthMethod, error) {
	resolved := make([]AuthMethod, 0, len(names))
	seen := make(map[AuthMethod]struct{}, len(names))
	for _, name := range names {
		method, ok := authMethods[name]
		if !ok {
			return nil, serrors.NewInvalidRequest("invalid authentication method = " + name)
		}
		if _, dup := seen[method]; dup {
			continue
		}
		seen[method] = struct{}{}
		resolved = append(resolved, method)
	}
	return resolved, nil
}

// ResolveGrantTypes maps untrusted name strings onto the closed set of
// authorization grant types. Duplicates collapse; resolution stops at the
// first unknown name.
func ResolveGrantTypes(names []string) ([]GrantType, error) {
	resolved := make([]GrantType, 0, len(names))
	seen := make(map[GrantType]struct{}, len(names))
	for _, name := range names {
		grant, ok := grantTypes[name]
		if !ok {
			return nil, serrors.NewInvalidRequest("invalid authorization grant type = " + name)
		}
		if _, dup := seen[grant]; dup {
			continue
		}
		seen[grant] = struct{}{}
		resolved = append(resolved, grant)
	}
	return resolved, nil
}
