// Package auth verifies bearer credentials issued by the external
// auth provider. The service never issues sessions itself; it only
// checks the HMAC signature and resolves the subject to a user id.
// Role checks happen against the profiles table, not the token, so a
// role change takes effect without reissuing credentials.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any credential that fails
// verification: bad signature, expired, or missing subject.
var ErrInvalidToken = errors.New("invalid authentication token")

// Verifier validates HS256-signed JWTs against a shared secret.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier for the given shared secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify checks the credential and returns the subject user id.
func (v *Verifier) Verify(_ context.Context, credential string) (string, error) {
	token, err := jwt.Parse(credential,
		func(t *jwt.Token) (any, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("%w: no subject claim", ErrInvalidToken)
	}
	return subject, nil
}
