package auth

import (
	"encore.dev/config"
)

type Config struct {
	// IdentityURL is the identity provider's OIDC userinfo endpoint.
	IdentityURL config.String
	// VerifyTimeout bounds one call to the identity provider, in seconds.
	VerifyTimeout config.Int
}

var cfg = config.Load[*Config]()
