package cli

import (
	"context"
	"errors"
	"log"

	"github.com/dmitrijs2005/ghostproof/internal/client/identity"
	"github.com/dmitrijs2005/ghostproof/internal/common"
)

// Login signs in with the chosen method; an empty method falls back to the
// coordinator's primary (delegation).
func (a *App) Login(ctx context.Context, method string) error {

	m := identity.Method(method)
	switch m {
	case identity.MethodNone, identity.MethodDelegation, identity.MethodDeviceKey:
	default:
		log.Printf("Unknown login method %q (use delegation or devicekey)", method)
		return common.ErrInvalidInput
	}

	err := a.coordinator.Login(ctx, m)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrCancelled):
			log.Printf("Login cancelled")
		case errors.Is(err, identity.ErrBadPassphrase):
			log.Printf("Invalid passphrase")
		case errors.Is(err, common.ErrBackendUnavailable):
			log.Printf("Identity gateway unavailable: %s", err.Error())
		default:
			log.Printf("Login unsuccessfull: %s", err.Error())
		}
		return err
	}

	log.Printf("Login successfull")
	return nil
}

// Logout ends the session. Local state is always cleared, even when remote
// teardown fails.
func (a *App) Logout(ctx context.Context) error {
	a.coordinator.Logout(ctx)
	log.Printf("Logged out")
	return nil
}

// Whoami prints the signed-in principal and method.
func (a *App) Whoami(ctx context.Context) error {
	st := a.coordinator.State()
	if !st.Authenticated {
		printlnFn("Not logged in")
		return nil
	}
	printlnFn("Principal:", st.Principal)
	printlnFn("Method:   ", string(st.Method))
	return nil
}
