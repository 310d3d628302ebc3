//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=auth
package auth

import (
	"context"
	"encoding/base64"
	"strings"

	"siemctl/internal/app/api"
	"siemctl/internal/app/errors"
	"siemctl/internal/config/logger"
)

// CredentialsKey is the session key holding base64("username:password")
const CredentialsKey = "siem_credentials"

// Auth gates every protected operation on stored credentials
type Auth interface {
	IsAuthenticated() bool
	Login(ctx context.Context, username, password string) bool
	Logout() error
	RequireAuth() bool
	Credentials() (*api.Credentials, bool)
	SessionPath() string
}

type auth struct {
	store  Store
	client api.Client
	log    logger.Logger
}

// NewAuth creates an Auth over the given session store
func NewAuth(store Store, client api.Client, log logger.Logger) Auth {
	return &auth{
		store:  store,
		client: client,
		log:    log.WithComponent("AUTH"),
	}
}

// IsAuthenticated reports whether credentials are present, without validating them
func (a *auth) IsAuthenticated() bool {
	_, ok := a.store.Get(CredentialsKey)
	return ok
}

// Login verifies the pair against the backend and stores it on success
func (a *auth) Login(ctx context.Context, username, password string) bool {
	creds := api.Credentials{Username: username, Password: password}

	if _, err := a.client.Health(ctx, creds); err != nil {
		a.log.Error().Err(err).Str("user", username).Msg("Login failed")
		return false
	}

	if err := a.store.Set(CredentialsKey, Encode(creds)); err != nil {
		a.log.Error().Err(err).Msg("Failed to store credentials")
		return false
	}

	a.log.Info().Str("user", username).Msg("Logged in")

	return true
}

// Logout clears the stored credentials
func (a *auth) Logout() error {
	if err := a.store.Remove(CredentialsKey); err != nil {
		a.log.Error().Err(err).Msg("Failed to clear credentials")
		return err
	}

	a.log.Info().Msg("Logged out")

	return nil
}

// RequireAuth returns false when the caller must switch to the login flow
func (a *auth) RequireAuth() bool {
	if !a.IsAuthenticated() {
		a.log.Debug().Msg("Not authenticated, login required")
		return false
	}

	return true
}

// Credentials decodes the stored pair; malformed data is logged and reported as absent
func (a *auth) Credentials() (*api.Credentials, bool) {
	stored, ok := a.store.Get(CredentialsKey)
	if !ok {
		return nil, false
	}

	creds, err := Decode(stored)
	if err != nil {
		a.log.Error().Err(err).Msg("Invalid credentials format")
		return nil, false
	}

	return creds, true
}

// SessionPath returns the backing file of the session store, empty for memory storage
func (a *auth) SessionPath() string {
	return a.store.Path()
}

// Encode returns base64("username:password")
func Encode(creds api.Credentials) string {
	return base64.StdEncoding.EncodeToString([]byte(creds.Username + ":" + creds.Password))
}

// Decode reverses Encode, splitting on the first colon
func Decode(stored string) (*api.Credentials, error) {
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return nil, errors.ErrMalformedSession
	}

	username, password, found := strings.Cut(string(raw), ":")
	if !found {
		return nil, errors.ErrMalformedSession
	}

	return &api.Credentials{Username: username, Password: password}, nil
}
