package auth

import (
	"time"

	"github.com/polkiloo/backoffice/internal/domain/model"
)

// Strategy verifies actor tokens issued by the identity provider.
type Strategy interface {
	ParseToken(token string) (model.Actor, error)
	Name() string
}

type Options struct {
	TTL    time.Duration
	Issuer string
}
