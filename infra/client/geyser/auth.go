package geyser

import (
	"context"
)

// tokenAuth attaches the x-token metadata pair to every call on the
// transport. It is only installed when a token is configured; without one,
// calls carry no extra metadata at all.
type tokenAuth struct {
	token string
}

func (a tokenAuth) GetRequestMetadata(_ context.Context, _ ...string) (map[string]string, error) {
	return map[string]string{"x-token": a.token}, nil
}

// RequireTransportSecurity keeps the token off plaintext channels.
func (a tokenAuth) RequireTransportSecurity() bool {
	return true
}
