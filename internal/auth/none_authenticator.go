package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
)

// NoneAuthenticator injects a static local user. Used in dev and in the
// embedded single-tenant deployment where no identity provider exists.
type NoneAuthenticator struct {
	username     string
	organization string
}

func NewNoneAuthenticator(username, organization string) (*NoneAuthenticator, error) {
	return &NoneAuthenticator{username: username, organization: organization}, nil
}

func (n *NoneAuthenticator) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := User{
			Username:     n.username,
			Organization: n.organization,
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"org_id": n.organization,
			"sub":    n.username,
		})
		token.Raw = "local-token"
		user.Token = token

		ctx := NewTokenContext(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
