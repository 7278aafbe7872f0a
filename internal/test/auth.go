package test

import (
	"github.com/polkiloo/backoffice/internal/domain/model"
	pkgAuth "github.com/polkiloo/backoffice/internal/pkg/auth"
)

// StrategyStub parses tokens via function overrides.
type StrategyStub struct {
	ParseFn func(string) (model.Actor, error)
	NameVal string
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (model.Actor, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return model.Actor{ID: "1"}, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenParserStub maps tokens to actors. Unknown tokens yield Err.
type TokenParserStub struct {
	Actors map[string]model.Actor
	Err    error
}

// ParseToken returns actor registered for token.
func (s TokenParserStub) ParseToken(token string) (model.Actor, error) {
	if actor, ok := s.Actors[token]; ok {
		return actor, nil
	}
	return model.Actor{}, s.Err
}

var _ pkgAuth.Strategy = StrategyStub{}
