package authentication

// Tokens live in the OS keyring, never on disk.
import (
	"encoding/json"
	"errors"
	"time"

	"github.com/zalando/go-keyring"
)

const (
	serviceName = "moviehub-cli"
	tokenKey    = "auth_tokens"
)

// ErrNotLoggedIn means no credentials are stored.
var ErrNotLoggedIn = errors.New("not logged in, run `moviehub auth login` first")

type StoredCredentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Username     string `json:"username"`
	ExpiresAt    int64  `json:"expires_at"`
}

// Expired reports whether the access token is past, or within a minute of,
// its expiry at now.
func (c *StoredCredentials) Expired(now time.Time) bool {
	return c.ExpiresAt != 0 && now.Add(time.Minute).Unix() >= c.ExpiresAt
}

func StoreTokens(creds *StoredCredentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return keyring.Set(serviceName, tokenKey, string(data))
}

func GetTokens() (*StoredCredentials, error) {
	value, err := keyring.Get(serviceName, tokenKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}

	var creds StoredCredentials
	if err := json.Unmarshal([]byte(value), &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// DeleteTokens is a no-op when nothing is stored.
func DeleteTokens() error {
	if err := keyring.Delete(serviceName, tokenKey); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}
