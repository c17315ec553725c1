package vk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/playerbase/playerbase/internal/model"
	"github.com/playerbase/playerbase/internal/services/identity"
)

// VK API endpoints and version
const (
	defaultTokenURL = "https://oauth.vk.com/access_token"
	defaultAPIURL   = "https://api.vk.com/method/users.get"
	apiVersion      = "5.131"

	defaultTimeout = 10 * time.Second
)

// Config holds VK OAuth application settings
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	// Endpoint overrides for testing; empty uses the real VK endpoints
	TokenURL string
	APIURL   string

	// Timeout bounds each call to VK
	Timeout time.Duration
}

// Client implements identity.Provider against the VK OAuth API
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Ensure Client implements the provider interface
var _ identity.Provider = (*Client)(nil)

// New creates a new VK provider client
func New(cfg Config) *Client {
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultTokenURL
	}
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Name returns the provider code
func (c *Client) Name() string {
	return "vk"
}

// tokenResponse is VK's access_token endpoint payload
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	UserID      int64  `json:"user_id"`
	Email       string `json:"email"`
}

// ExchangeCode exchanges an authorization code for a VK access token
func (c *Client) ExchangeCode(ctx context.Context, code string) (*identity.ProviderToken, error) {
	params := url.Values{}
	params.Set("client_id", c.cfg.ClientID)
	params.Set("client_secret", c.cfg.ClientSecret)
	params.Set("redirect_uri", c.cfg.RedirectURI)
	params.Set("code", code)

	var payload tokenResponse
	if err := c.get(ctx, c.cfg.TokenURL, params, &payload); err != nil {
		return nil, err
	}

	if payload.AccessToken == "" || payload.UserID == 0 {
		return nil, fmt.Errorf("%w: incomplete token response", model.ErrFederation)
	}

	return &identity.ProviderToken{
		AccessToken:    payload.AccessToken,
		ExternalUserID: strconv.FormatInt(payload.UserID, 10),
	}, nil
}

// profileResponse is VK's users.get payload. API-level errors arrive with
// HTTP 200 and an error object instead of a response list.
type profileResponse struct {
	Response []vkUser `json:"response"`
	Error    *vkError `json:"error"`
}

type vkUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Domain    string `json:"domain"`
	Photo100  string `json:"photo_100"`
}

type vkError struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_msg"`
}

// FetchProfile fetches the VK profile for the token's user
func (c *Client) FetchProfile(ctx context.Context, token *identity.ProviderToken) (*identity.Profile, error) {
	params := url.Values{}
	params.Set("user_ids", token.ExternalUserID)
	params.Set("access_token", token.AccessToken)
	params.Set("v", apiVersion)
	params.Set("fields", "photo_100,domain")

	var payload profileResponse
	if err := c.get(ctx, c.cfg.APIURL, params, &payload); err != nil {
		return nil, err
	}

	if payload.Error != nil {
		return nil, fmt.Errorf("%w: vk error %d: %s", model.ErrFederation, payload.Error.Code, payload.Error.Message)
	}
	if len(payload.Response) == 0 {
		return nil, fmt.Errorf("%w: empty profile response", model.ErrFederation)
	}

	user := payload.Response[0]
	return &identity.Profile{
		ExternalUserID: strconv.FormatInt(user.ID, 10),
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Domain:         user.Domain,
		PhotoURL:       user.Photo100,
	}, nil
}

// get performs a query-parameter GET and decodes the JSON body into out
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrFederation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", model.ErrFederation, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: malformed response: %w", model.ErrFederation, err)
	}

	return nil
}
