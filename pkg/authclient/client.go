package authclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Skotchmaster/art_gallery/pkg/tokens"
)

// ErrRejected is returned when the auth service refuses the token.
var ErrRejected = errors.New("token rejected by auth service")

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(authServiceURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(authServiceURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type VerifyResponse struct {
	Subject string `json:"subject"`
	Role    string `json:"role"`
}

// Verify asks the external auth service who owns the bearer token.
func (c *Client) Verify(ctx context.Context, token string) (tokens.Subject, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/verify", nil)
	if err != nil {
		return tokens.Subject{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return tokens.Subject{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return tokens.Subject{}, ErrRejected
	case resp.StatusCode != http.StatusOK:
		return tokens.Subject{}, fmt.Errorf("verify failed with status: %d", resp.StatusCode)
	}

	var result VerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return tokens.Subject{}, fmt.Errorf("decode response: %w", err)
	}
	if result.Subject == "" {
		return tokens.Subject{}, ErrRejected
	}

	return tokens.Subject{ID: result.Subject, Role: result.Role}, nil
}
