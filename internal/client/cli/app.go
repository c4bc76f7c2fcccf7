package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/ghostproof/internal/client/client"
	"github.com/dmitrijs2005/ghostproof/internal/client/config"
	"github.com/dmitrijs2005/ghostproof/internal/client/identity"
	"github.com/dmitrijs2005/ghostproof/internal/client/ledger"
	"github.com/dmitrijs2005/ghostproof/internal/client/services"
	"github.com/dmitrijs2005/ghostproof/internal/client/session"
	"github.com/dmitrijs2005/ghostproof/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config        *config.Config
	coordinator   *session.Coordinator
	proofService  *services.ProofService
	walletService *services.WalletService
	apiClient     client.Client
	store         *ledger.Ledger
	log           logging.Logger
	reader        *bufio.Reader

	// mode is written by the watcher goroutine and read by the REPL prompt.
	modeMu sync.Mutex
	mode   Mode
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	store, err := ledger.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing ledger", "error", err)
		return nil, err
	}

	var apiClient client.Client
	if c.MockBackend {
		apiClient = client.NewMockClient()
	} else {
		apiClient = client.NewHTTPClient(c.ProofGatewayAddr, nil)
	}

	delegation := identity.NewDelegationBackend(identity.DelegationOptions{
		GatewayURL: c.IdentityGatewayAddr,
		TokenFile:  c.TokenFile,
		OnApprovalURL: func(url string) {
			printlnFn("Open this URL in your browser to approve the session:")
			printlnFn("  " + url)
		},
	}, log)
	deviceKey := identity.NewDeviceKeyBackend(c.KeyFile, promptPassphrase)

	coordinator := session.New(
		[]identity.Backend{delegation, deviceKey},
		session.Options{
			Primary:           identity.MethodDelegation,
			ReconnectInterval: c.ReconnectInterval,
		},
		log,
	)

	app := &App{
		config:        c,
		coordinator:   coordinator,
		proofService:  services.NewProofService(apiClient, store, log),
		walletService: services.NewWalletService(apiClient),
		apiClient:     apiClient,
		store:         store,
		log:           log,
		mode:          ModeOffline,
		reader:        bufio.NewReader(os.Stdin),
	}

	// The app itself tracks session changes and moves credentials in and
	// out of the services.
	coordinator.Subscribe(app)

	if err := coordinator.Initialize(ctx); err != nil {
		log.Warn(ctx, "session initialization incomplete", "error", err)
	}

	return app, nil
}

// OnStateChange installs the active identity into the services on login and
// clears it on logout. Runs synchronously from the coordinator's notifier, so
// it must not call back into state-transitioning coordinator methods.
func (a *App) OnStateChange(authenticated bool) {
	if authenticated {
		id := a.coordinator.Identity()
		a.proofService.SetCredential(id)
		a.walletService.SetCredential(id)
		return
	}
	a.proofService.SetCredential(nil)
	a.walletService.SetCredential(nil)
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()
	if changed {
		printlnFn("Switched to " + string(mode) + " mode")
	}
}

func (a *App) currentMode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() {
	a.coordinator.Close()
	if err := a.apiClient.Close(); err != nil {
		a.log.Warn(context.Background(), "error closing api client", "error", err)
	}
	if err := a.store.Close(); err != nil {
		a.log.Warn(context.Background(), "error closing ledger", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.coordinator.State().Authenticated
}

// StartOnlineStatusWatcher periodically probes gateway reachability and
// re-checks that the active session is still valid, mirroring what the
// coordinator does when the transport comes back after an outage.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.apiClient.Ping(probeCtx)
			a.coordinator.CheckSession(probeCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
