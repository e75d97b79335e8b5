package sheets

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/sheets/v4"
)

func TestSaveAndLoadToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	token := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, saveToken(path, token))

	loaded, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "refresh", loaded.RefreshToken)
	assert.True(t, token.Expiry.Equal(loaded.Expiry))
}

func TestLoadToken_Missing(t *testing.T) {
	_, err := LoadToken(filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)
}

func TestOAuthConfig(t *testing.T) {
	c := oauthConfig("id", "secret", "http://localhost:9999/callback")

	assert.Equal(t, "id", c.ClientID)
	assert.Equal(t, []string{sheets.SpreadsheetsScope}, c.Scopes)
	assert.Contains(t, c.AuthCodeURL("state", oauth2.AccessTypeOffline), "access_type=offline")
}

func TestAuthenticateOAuth2Interactive(t *testing.T) {
	t.Run("requires credentials", func(t *testing.T) {
		_, err := AuthenticateOAuth2Interactive(context.Background(), OAuth2Config{})
		assert.Error(t, err)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := AuthenticateOAuth2Interactive(ctx, OAuth2Config{
			ClientID:     "id",
			ClientSecret: "secret",
			CallbackAddr: "127.0.0.1:0",
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
