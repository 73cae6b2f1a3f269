package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"did-ecosystem/pkg/platform/sentinel"
)

const keyVaultAPIVersion = "7.4"

// KeyVaultStore reads secrets over the key vault REST API.
type KeyVaultStore struct {
	baseURL string
	token   string
	client  *http.Client
}

type keyVaultSecret struct {
	Value string `json:"value"`
}

// NewKeyVaultStore builds a store for the vault at baseURL. token, when set,
// is sent as a bearer credential.
func NewKeyVaultStore(baseURL, token string, client *http.Client) *KeyVaultStore {
	if client == nil {
		client = http.DefaultClient
	}
	return &KeyVaultStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  client,
	}
}

func (s *KeyVaultStore) GetSecret(ctx context.Context, name string) (string, error) {
	endpoint := s.baseURL + "/secrets/" + url.PathEscape(name) + "?api-version=" + keyVaultAPIVersion
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build secret request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch secret %q: %w: %w", name, sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("secret %q: %w", name, sentinel.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("secret %q: vault returned %d: %w", name, resp.StatusCode, sentinel.ErrUnavailable)
	}

	var secret keyVaultSecret
	if err := json.NewDecoder(resp.Body).Decode(&secret); err != nil {
		return "", fmt.Errorf("decode secret %q: %w: %w", name, sentinel.ErrUnavailable, err)
	}
	return secret.Value, nil
}
