package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/craftel-io/backend-craftel/internal/common"
)

const httpStatusUnauthorized = 401

// Identity describes the caller extracted from a verified token.
type Identity struct {
	UserID string
	Role   string
}

// Admin reports whether the identity carries the admin role.
func (id Identity) Admin() bool {
	return strings.EqualFold(strings.TrimSpace(id.Role), "admin")
}

// Verifier checks bearer tokens issued by the external identity provider.
// Tokens are HMAC-signed; the shared secret is provisioned out of band.
type Verifier struct {
	Secret    []byte
	Validator TokenValidator
	Now       func() time.Time
}

// NewVerifier constructs a Verifier with the expected issuer and audience pinned.
func NewVerifier(secret []byte, issuer, audience string, skew time.Duration) (*Verifier, error) {
	if len(secret) == 0 {
		return nil, errors.New("auth: signing secret required")
	}
	return &Verifier{
		Secret: secret,
		Validator: TokenValidator{
			Issuer:    issuer,
			Audience:  audience,
			ClockSkew: skew,
			Algorithm: jwa.HS256,
		},
	}, nil
}

func (v *Verifier) now() time.Time {
	if v.Now != nil {
		return v.Now()
	}
	return time.Now()
}

// ParseToken verifies the token signature and claims and returns the caller identity.
func (v *Verifier) ParseToken(token string) (Identity, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return Identity{}, common.NewAppError("UNAUTHORIZED", "missing token", httpStatusUnauthorized, nil)
	}
	algorithm, err := extractTokenAlgorithm(trimmed)
	if err != nil {
		return Identity{}, common.NewAppError("UNAUTHORIZED", "invalid token", httpStatusUnauthorized, err)
	}
	if v.Validator.Algorithm != "" && algorithm != v.Validator.Algorithm {
		return Identity{}, common.NewAppError("UNAUTHORIZED", "invalid token", httpStatusUnauthorized, fmt.Errorf("unexpected token algorithm %s", algorithm))
	}
	parsed, err := jwt.ParseString(trimmed, jwt.WithKey(algorithm, v.Secret))
	if err != nil {
		return Identity{}, common.NewAppError("UNAUTHORIZED", "invalid token", httpStatusUnauthorized, err)
	}
	if err := v.Validator.Validate(parsed, algorithm, v.now()); err != nil {
		return Identity{}, common.NewAppError("UNAUTHORIZED", "invalid token", httpStatusUnauthorized, err)
	}

	identity := Identity{UserID: parsed.Subject()}
	if raw, ok := parsed.Get("role"); ok {
		if role, ok := raw.(string); ok {
			identity.Role = role
		}
	}
	return identity, nil
}

func extractTokenAlgorithm(token string) (jwa.SignatureAlgorithm, error) {
	message, err := jws.ParseString(token)
	if err != nil {
		return "", err
	}
	signatures := message.Signatures()
	if len(signatures) == 0 {
		return "", errors.New("auth: token contains no signatures")
	}
	var algorithm jwa.SignatureAlgorithm
	for _, sig := range signatures {
		headers := sig.ProtectedHeaders()
		if headers == nil {
			return "", errors.New("auth: token missing protected headers")
		}
		alg := headers.Algorithm()
		if alg == "" {
			return "", errors.New("auth: token missing algorithm")
		}
		if alg == jwa.NoSignature {
			return "", errors.New("auth: token uses none algorithm")
		}
		if algorithm == "" {
			algorithm = alg
		} else if algorithm != alg {
			return "", fmt.Errorf("auth: mixed token algorithms detected")
		}
	}
	return algorithm, nil
}
