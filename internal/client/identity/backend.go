// Package identity defines the identity backend capability consumed by the
// session coordinator, and the two concrete providers: a remote delegation
// provider (interactive approval flow against an identity gateway) and a
// local device-key provider (passphrase-sealed ed25519 key file).
package identity

import (
	"context"
	"net/http"
)

// Method names an authentication method. The zero value means "no method".
type Method string

const (
	MethodNone       Method = ""
	MethodDelegation Method = "delegation"
	MethodDeviceKey  Method = "devicekey"
)

// Identity is an authenticated credential: an opaque principal plus the
// ability to decorate outbound gateway requests with proof of it.
type Identity interface {
	// Principal returns the opaque identity string of the authenticated user.
	Principal() string

	// Authorize attaches the credential to an outbound HTTP request.
	Authorize(r *http.Request)
}

// Backend is one identity provider. The session coordinator depends only on
// this shape.
//
// Contract:
//   - ProbeActiveSession reports whether the provider holds a usable session
//     right now, without any interactive step.
//   - BeginInteractiveLogin runs the provider's interactive flow to
//     completion. It returns common.ErrCancelled when the user aborts and
//     common.ErrBackendUnavailable when the provider cannot be reached.
//   - EndSession tears the session down. Local state is cleared even when the
//     remote part of the teardown fails; the error reports the remote failure.
//   - CurrentIdentity returns the active credential, or nil when there is no
//     session.
type Backend interface {
	Method() Method
	ProbeActiveSession(ctx context.Context) (bool, error)
	BeginInteractiveLogin(ctx context.Context) error
	EndSession(ctx context.Context) error
	CurrentIdentity() Identity
}
