package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/backoffice/internal/domain/errors"
	"github.com/polkiloo/backoffice/internal/domain/model"
)

// Claims carries the actor id as subject and its capability names.
type Claims struct {
	jwt.RegisteredClaims
	Capabilities []string `json:"capabilities"`
}

// JWTStrategy signs actor tokens with HS256.
type JWTStrategy struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewJWTStrategy builds JWTStrategy with provided secret and options.
func NewJWTStrategy(secret string, opts Options) *JWTStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTStrategy{secret: []byte(secret), ttl: ttl, issuer: opts.Issuer}
}

// IssueToken signs a token the way the identity provider does. The service
// only verifies tokens; this is for tests and local tooling.
func (s *JWTStrategy) IssueToken(actor model.Actor) (string, error) {
	now := time.Now()
	caps := make([]string, 0, len(actor.Capabilities))
	for _, c := range actor.Capabilities.List() {
		caps = append(caps, string(c))
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
		Capabilities: caps,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken validates token and returns the actor it was issued for.
func (s *JWTStrategy) ParseToken(token string) (model.Actor, error) {
	claims := &Claims{}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired()}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return model.Actor{}, domainErrors.ErrInvalidToken
	}

	caps := make([]model.Capability, 0, len(claims.Capabilities))
	for _, c := range claims.Capabilities {
		caps = append(caps, model.Capability(c))
	}
	return model.Actor{ID: claims.Subject, Capabilities: model.NewCapabilitySet(caps...)}, nil
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}
