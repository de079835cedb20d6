package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

const (
	tokenEndpoint    = "https://oauth2.googleapis.com/token"
	spreadsheetScope = "https://www.googleapis.com/auth/spreadsheets"
	assertionGrant   = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	assertionTTL     = time.Hour
)

// FormatPrivateKey normalizes a service-account private key loaded from the
// environment: literal `\n` escapes become newlines, stray quotes are dropped.
func FormatPrivateKey(raw string) string {
	key := strings.ReplaceAll(raw, `\n`, "\n")
	key = strings.ReplaceAll(key, `"`, "")
	return strings.TrimSpace(key)
}

// serviceAccountTokenSource exchanges an RS256-signed assertion for a Google
// OAuth access token scoped to the Sheets API.
type serviceAccountTokenSource struct {
	ctx        context.Context
	email      string
	privateKey string
	httpClient *http.Client
	now        func() time.Time
}

func newTokenSource(ctx context.Context, email, privateKey string) oauth2.TokenSource {
	src := &serviceAccountTokenSource{
		ctx:        ctx,
		email:      email,
		privateKey: FormatPrivateKey(privateKey),
		httpClient: http.DefaultClient,
		now:        time.Now,
	}
	return oauth2.ReuseTokenSource(nil, src)
}

func (s *serviceAccountTokenSource) Token() (*oauth2.Token, error) {
	assertion, err := s.signAssertion()
	if err != nil {
		return nil, err
	}

	form := url.Values{
		"grant_type": {assertionGrant},
		"assertion":  {assertion},
	}

	req, err := http.NewRequestWithContext(s.ctx, http.MethodPost, tokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("building token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("exchanging assertion: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Error     string `json:"error"`
			ErrorDesc string `json:"error_description"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return nil, fmt.Errorf("token exchange failed (%d): %s %s", resp.StatusCode, body.Error, body.ErrorDesc)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding token response: %w", err)
	}

	return &oauth2.Token{
		AccessToken: payload.AccessToken,
		TokenType:   payload.TokenType,
		Expiry:      s.now().Add(time.Duration(payload.ExpiresIn) * time.Second),
	}, nil
}

func (s *serviceAccountTokenSource) signAssertion() (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(s.privateKey))
	if err != nil {
		return "", fmt.Errorf("parsing service account key: %w", err)
	}

	now := s.now()
	claims := jwt.MapClaims{
		"iss":   s.email,
		"scope": spreadsheetScope,
		"aud":   tokenEndpoint,
		"iat":   now.Unix(),
		"exp":   now.Add(assertionTTL).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("signing assertion: %w", err)
	}
	return signed, nil
}
