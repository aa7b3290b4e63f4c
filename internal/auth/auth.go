package auth

import (
	"net/http"

	"github.com/hammad983ae/sustaino-sub007/internal/config"
	"go.uber.org/zap"
)

type Authenticator interface {
	Authenticator(next http.Handler) http.Handler
}

const (
	BearerAuthentication string = "bearer"
	NoneAuthentication   string = "none"
)

func NewAuthenticator(authConfig config.Auth) (Authenticator, error) {
	zap.S().Named("auth").Infof("authentication: '%s'", authConfig.AuthenticationType)

	switch authConfig.AuthenticationType {
	case BearerAuthentication:
		return NewBearerAuthenticator()
	default:
		return NewNoneAuthenticator(authConfig.StaticUsername, authConfig.StaticOrganization)
	}
}
