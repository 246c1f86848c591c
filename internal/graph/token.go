package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// ErrTokenUnavailable is returned when every credential strategy has been
// exhausted.
var ErrTokenUnavailable = errors.New("graph: no usable credential; run authsetup or configure a refresh token")

// Scopes requested for OneDrive access. offline_access keeps the session
// cache renewable.
var Scopes = []string{
	"https://graph.microsoft.com/Files.Read.All",
	"https://graph.microsoft.com/User.Read",
	"offline_access",
}

// expirySlack is how close to expiry a cached token is still trusted.
const expirySlack = time.Minute

// OAuthConfig builds the oauth2 configuration for the tenant. Exposed for
// the authsetup command's device-code flow.
func OAuthConfig(clientID, tenantID string) *oauth2.Config {
	if tenantID == "" {
		tenantID = "consumers"
	}
	return &oauth2.Config{
		ClientID: clientID,
		Endpoint: endpoints.AzureAD(tenantID),
		Scopes:   Scopes,
	}
}

// AccessToken obtains a bearer token via three fallback strategies, in order:
// the persisted session cache, the configured refresh token, and the static
// access token. Each strategy returns ("", nil) when it does not apply.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	strategies := []struct {
		name string
		fn   func(context.Context) (string, error)
	}{
		{"session_cache", c.sessionCacheToken},
		{"refresh_token", c.refreshTokenExchange},
		{"static_token", c.staticToken},
	}

	for _, s := range strategies {
		token, err := s.fn(ctx)
		if err != nil {
			c.logger.WarnContext(ctx, "token strategy failed",
				slog.String("strategy", s.name),
				slog.String("error", err.Error()))
			continue
		}
		if token != "" {
			c.logger.DebugContext(ctx, "token acquired", slog.String("strategy", s.name))
			return token, nil
		}
	}

	return "", ErrTokenUnavailable
}

// sessionCacheToken reuses the persisted session token, refreshing it through
// its own refresh token when expired. The blob survives process restarts.
func (c *Client) sessionCacheToken(ctx context.Context) (string, error) {
	if c.cfg.TokenCache == "" || c.cfg.ClientID == "" {
		return "", nil
	}

	tok, err := c.loadSessionToken()
	if err != nil || tok == nil {
		return "", err
	}

	if tok.AccessToken != "" && tok.Expiry.After(time.Now().Add(expirySlack)) {
		return tok.AccessToken, nil
	}

	if tok.RefreshToken == "" {
		return "", nil
	}

	fresh, err := OAuthConfig(c.cfg.ClientID, c.cfg.TenantID).TokenSource(ctx, tok).Token()
	if err != nil {
		return "", fmt.Errorf("session refresh failed: %w", err)
	}
	if fresh.RefreshToken == "" {
		fresh.RefreshToken = tok.RefreshToken
	}
	if err := c.saveSessionToken(fresh); err != nil {
		c.logger.WarnContext(ctx, "could not persist refreshed token",
			slog.String("error", err.Error()))
	}
	return fresh.AccessToken, nil
}

// refreshTokenExchange exchanges the refresh token injected via configuration
// (the non-interactive deployment path) for a fresh access token.
func (c *Client) refreshTokenExchange(ctx context.Context) (string, error) {
	if c.cfg.RefreshToken == "" || c.cfg.ClientID == "" {
		return "", nil
	}

	seed := &oauth2.Token{RefreshToken: c.cfg.RefreshToken}
	tok, err := OAuthConfig(c.cfg.ClientID, c.cfg.TenantID).TokenSource(ctx, seed).Token()
	if err != nil {
		return "", fmt.Errorf("refresh token exchange failed: %w", err)
	}
	return tok.AccessToken, nil
}

// staticToken returns the last-resort access token from configuration.
func (c *Client) staticToken(context.Context) (string, error) {
	return c.cfg.AccessToken, nil
}

func (c *Client) loadSessionToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(c.cfg.TokenCache)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read token cache: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("parse token cache: %w", err)
	}
	return &tok, nil
}

func (c *Client) saveSessionToken(tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	return os.WriteFile(c.cfg.TokenCache, data, 0600)
}

// SaveSessionToken persists tok to the configured cache path. Used by the
// authsetup command after the device-code flow completes.
func (c *Client) SaveSessionToken(tok *oauth2.Token) error {
	return c.saveSessionToken(tok)
}
