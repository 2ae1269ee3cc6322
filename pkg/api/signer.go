package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL is the lifetime of every signed request credential.
const TokenTTL = 5 * time.Minute

// issuerTypeProject is the only issuer type accepted by the REST API.
const issuerTypeProject = "project"

// Credentials identify a project. They are supplied once and never mutated.
type Credentials struct {
	APIKey    string
	APISecret string
}

// Validate reports whether both halves of the key pair are present.
func (c Credentials) Validate() error {
	if c.APIKey == "" {
		return errors.New("apiKey cannot be empty")
	}
	if c.APISecret == "" {
		return errors.New("apiSecret cannot be empty")
	}
	return nil
}

// ProjectClaims is the claim set carried in the X-OPENTOK-AUTH header.
type ProjectClaims struct {
	// IssuerType is always "project".
	IssuerType string `json:"ist"`
	jwt.RegisteredClaims
}

// SignerFn mints the header value for one outgoing request.
type SignerFn func(creds Credentials) (string, error)

// Sign mints a fresh project token valid for TokenTTL from now.
func Sign(creds Credentials) (string, error) {
	return SignAt(creds, time.Now())
}

// SignAt mints a project token issued at now. Every token carries a random
// jti so two tokens issued within the same second still differ.
func SignAt(creds Credentials, now time.Time) (string, error) {
	if err := creds.Validate(); err != nil {
		return "", err
	}

	claims := ProjectClaims{
		IssuerType: issuerTypeProject,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    creds.APIKey,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(creds.APISecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies a project token against apiSecret and returns its claims.
func ParseToken(tokenString, apiSecret string) (*ProjectClaims, error) {
	if tokenString == "" {
		return nil, errors.New("token is empty")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.ParseWithClaims(tokenString, &ProjectClaims{}, func(*jwt.Token) (interface{}, error) {
		return []byte(apiSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*ProjectClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.IssuerType != issuerTypeProject {
		return nil, fmt.Errorf("invalid issuer type: %q", claims.IssuerType)
	}
	return claims, nil
}
