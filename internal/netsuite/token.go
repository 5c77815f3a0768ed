package netsuite

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSource issues a bearer token for one batch. The issuance service is a
// collaborator; anything behind this interface is replaceable in tests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

const (
	clientAssertionType = "urn:ietf:params:oauth:client-assertion-type:jwt-bearer"
	assertionLifetime   = 5 * time.Minute
	tokenTimeout        = 30 * time.Second
)

// ClientCredentialsTokenSource implements the NetSuite OAuth2
// client-credentials grant: a PS256-signed JWT client assertion exchanged
// for a short-lived access token.
type ClientCredentialsTokenSource struct {
	httpClient    *http.Client
	tokenURL      string
	clientID      string
	certificateID string
	key           *rsa.PrivateKey
	logger        *slog.Logger
}

func NewClientCredentialsTokenSource(tokenURL, clientID, certificateID string, keyPEM []byte, logger *slog.Logger) (*ClientCredentialsTokenSource, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM(keyPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signing key: %v", err)
	}

	return &ClientCredentialsTokenSource{
		httpClient:    &http.Client{Timeout: tokenTimeout},
		tokenURL:      tokenURL,
		clientID:      clientID,
		certificateID: certificateID,
		key:           key,
		logger:        logger,
	}, nil
}

// Token builds the client assertion, posts the grant and returns the access
// token. Called once per batch; the token is shared read-only across every
// order attempt in that batch.
func (s *ClientCredentialsTokenSource) Token(ctx context.Context) (string, error) {
	assertion, err := s.buildAssertion()
	if err != nil {
		return "", fmt.Errorf("client assertion build failed: %v", err)
	}

	form := url.Values{
		"grant_type":            {"client_credentials"},
		"client_assertion_type": {clientAssertionType},
		"client_assertion":      {assertion},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, body)
	}

	var grant struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&grant); err != nil {
		return "", fmt.Errorf("failed to decode token response: %v", err)
	}
	if grant.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned an empty access_token")
	}

	s.logger.Debug("Bearer token issued for batch")
	return grant.AccessToken, nil
}

func (s *ClientCredentialsTokenSource) buildAssertion() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   s.clientID,
		"scope": []string{"restlets"},
		"aud":   s.tokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(assertionLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodPS256, claims)
	// NetSuite matches the assertion to the uploaded certificate via kid.
	token.Header["kid"] = s.certificateID

	return token.SignedString(s.key)
}
