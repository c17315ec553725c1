package vk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/playerbase/playerbase/internal/model"
	"github.com/playerbase/playerbase/internal/services/identity"
)

type ClientSuite struct {
	suite.Suite
	tokenServer   *httptest.Server
	profileServer *httptest.Server
	tokenHandler  http.HandlerFunc
	apiHandler    http.HandlerFunc
	client        *Client
	ctx           context.Context
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.tokenHandler = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"vk-token","user_id":12345}`))
	}
	s.apiHandler = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":[{"id":12345,"first_name":"Alice","domain":"alice_vk"}]}`))
	}

	s.tokenServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.tokenHandler(w, r)
	}))
	s.profileServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.apiHandler(w, r)
	}))

	s.client = New(Config{
		ClientID:     "client-1",
		ClientSecret: "secret-1",
		RedirectURI:  "http://localhost/callback",
		TokenURL:     s.tokenServer.URL,
		APIURL:       s.profileServer.URL,
	})
	s.ctx = context.Background()
}

func (s *ClientSuite) TearDownTest() {
	s.tokenServer.Close()
	s.profileServer.Close()
}

func (s *ClientSuite) TestExchangeCodeSucceeds() {
	var query map[string][]string
	inner := s.tokenHandler
	s.tokenHandler = func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		inner(w, r)
	}

	token, err := s.client.ExchangeCode(s.ctx, "code-1")
	s.Require().NoError(err)

	s.Equal("vk-token", token.AccessToken)
	s.Equal("12345", token.ExternalUserID)
	s.Equal([]string{"client-1"}, query["client_id"])
	s.Equal([]string{"secret-1"}, query["client_secret"])
	s.Equal([]string{"http://localhost/callback"}, query["redirect_uri"])
	s.Equal([]string{"code-1"}, query["code"])
}

func (s *ClientSuite) TestExchangeCodeFailsOnNonOKStatus() {
	s.tokenHandler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}

	_, err := s.client.ExchangeCode(s.ctx, "bad-code")
	s.ErrorIs(err, model.ErrFederation)
}

func (s *ClientSuite) TestExchangeCodeFailsOnIncompletePayload() {
	s.tokenHandler = func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"vk-token"}`))
	}

	_, err := s.client.ExchangeCode(s.ctx, "code-1")
	s.ErrorIs(err, model.ErrFederation)
}

func (s *ClientSuite) TestExchangeCodeFailsOnMalformedBody() {
	s.tokenHandler = func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}

	_, err := s.client.ExchangeCode(s.ctx, "code-1")
	s.ErrorIs(err, model.ErrFederation)
}

func (s *ClientSuite) TestFetchProfileSucceeds() {
	var query map[string][]string
	inner := s.apiHandler
	s.apiHandler = func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		inner(w, r)
	}

	profile, err := s.client.FetchProfile(s.ctx, &identity.ProviderToken{
		AccessToken:    "vk-token",
		ExternalUserID: "12345",
	})
	s.Require().NoError(err)

	s.Equal("12345", profile.ExternalUserID)
	s.Equal("Alice", profile.FirstName)
	s.Equal("alice_vk", profile.Domain)
	s.Equal([]string{"12345"}, query["user_ids"])
	s.Equal([]string{"vk-token"}, query["access_token"])
	s.Equal([]string{apiVersion}, query["v"])
}

func (s *ClientSuite) TestFetchProfileFailsOnAPIError() {
	// VK reports API errors with HTTP 200 and an error object
	s.apiHandler = func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"error_code":5,"error_msg":"User authorization failed"}}`))
	}

	_, err := s.client.FetchProfile(s.ctx, &identity.ProviderToken{AccessToken: "x", ExternalUserID: "12345"})
	s.ErrorIs(err, model.ErrFederation)
}

func (s *ClientSuite) TestFetchProfileFailsOnEmptyResponse() {
	s.apiHandler = func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":[]}`))
	}

	_, err := s.client.FetchProfile(s.ctx, &identity.ProviderToken{AccessToken: "x", ExternalUserID: "12345"})
	s.ErrorIs(err, model.ErrFederation)
}

func (s *ClientSuite) TestFetchProfileFailsOnNonOKStatus() {
	s.apiHandler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}

	_, err := s.client.FetchProfile(s.ctx, &identity.ProviderToken{AccessToken: "x", ExternalUserID: "12345"})
	s.ErrorIs(err, model.ErrFederation)
}

func (s *ClientSuite) TestUnreachableEndpointIsFederationError() {
	client := New(Config{TokenURL: "http://127.0.0.1:1", APIURL: "http://127.0.0.1:1"})

	_, err := client.ExchangeCode(s.ctx, "code-1")
	s.ErrorIs(err, model.ErrFederation)
}
