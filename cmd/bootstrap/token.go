package bootstrap

import (
	"careserve/internal/pkg/config"
	"careserve/internal/pkg/sessiontoken"

	"go.uber.org/fx"
)

var TokenModule = fx.Module("token",
	fx.Provide(
		NewSessionVerifier,
	),
)

func NewSessionVerifier(cfg config.Config) *sessiontoken.Verifier {
	return sessiontoken.NewVerifier(cfg.Session.Secret)
}
