// Package session implements the session coordinator: the single source of
// truth for "is the user authenticated, and via which method". It reconciles
// independently-driven identity backends into one consistent state and
// broadcasts changes to subscribers.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/ghostproof/internal/client/identity"
	"github.com/dmitrijs2005/ghostproof/internal/common"
	"github.com/dmitrijs2005/ghostproof/internal/logging"
)

// State is the coordinator's authoritative session snapshot.
//
// Invariant: Method == identity.MethodNone ⇔ !Authenticated ⇔ Principal == "".
// Exactly one method is active at a time.
type State struct {
	Authenticated bool
	Method        identity.Method
	Principal     string
}

// Subscriber receives session-state change notifications. The callback is
// invoked once immediately on Subscribe with the state at registration time,
// and again after every state change.
type Subscriber interface {
	OnStateChange(authenticated bool)
}

// Options configures a Coordinator.
type Options struct {
	// Primary is the backend used when Login is called without a method.
	// Defaults to the first configured backend.
	Primary identity.Method
	// ReconnectInterval is the re-probe period of the poller started on
	// detected session loss. Defaults to 15s.
	ReconnectInterval time.Duration
}

// Coordinator owns the session state machine: LoggedOut -> LoggingIn ->
// LoggedIn(method), with session-loss and logout edges back to LoggedOut.
// All mutation happens here; other components only read.
type Coordinator struct {
	backends []identity.Backend
	byMethod map[identity.Method]identity.Backend
	primary  identity.Method
	interval time.Duration
	log      logging.Logger

	// mu guards state, subscribers, loginInFlight and pollCancel.
	// notifyMu serializes notification passes: it is acquired before mu is
	// released inside a transition, so passes are delivered in the order
	// their transitions occurred, one full pass at a time.
	mu            sync.Mutex
	notifyMu      sync.Mutex
	state         State
	subscribers   []Subscriber
	loginInFlight bool
	pollCancel    context.CancelFunc
}

// New builds a Coordinator over the given backends. The backend order is the
// probe order used by Initialize.
func New(backends []identity.Backend, opts Options, log logging.Logger) *Coordinator {
	byMethod := make(map[identity.Method]identity.Backend, len(backends))
	for _, b := range backends {
		byMethod[b.Method()] = b
	}

	primary := opts.Primary
	if primary == identity.MethodNone && len(backends) > 0 {
		primary = backends[0].Method()
	}

	interval := opts.ReconnectInterval
	if interval <= 0 {
		interval = 15 * time.Second
	}

	return &Coordinator{
		backends: backends,
		byMethod: byMethod,
		primary:  primary,
		interval: interval,
		log:      log,
	}
}

// Initialize probes every configured backend for an existing session. A
// backend that fails to probe is logged and treated as unavailable, not
// fatal to the others. The first backend reporting an active session wins.
func (c *Coordinator) Initialize(ctx context.Context) error {
	for _, b := range c.backends {
		active, err := b.ProbeActiveSession(ctx)
		if err != nil {
			c.log.Warn(ctx, "identity backend unavailable", "method", b.Method(), "error", err)
			continue
		}
		if !active {
			continue
		}
		id := b.CurrentIdentity()
		if id == nil {
			continue
		}
		c.log.Info(ctx, "existing session found", "method", b.Method(), "principal", id.Principal())
		c.transition(State{Authenticated: true, Method: b.Method(), Principal: id.Principal()})
		return nil
	}
	return nil
}

// Login authenticates via the given backend (the primary one when method is
// MethodNone). A second call while a login is in flight is a no-op: it
// returns nil without starting a duplicate interactive handshake. Failure or
// cancellation propagates to the caller and clears the in-flight guard so a
// retry is possible.
func (c *Coordinator) Login(ctx context.Context, method identity.Method) error {
	c.mu.Lock()
	if c.loginInFlight {
		c.mu.Unlock()
		c.log.Info(ctx, "login already in progress")
		return nil
	}
	if method == identity.MethodNone {
		method = c.primary
	}
	b, ok := c.byMethod[method]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: no %q backend configured", common.ErrBackendUnavailable, method)
	}
	c.loginInFlight = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loginInFlight = false
		c.mu.Unlock()
	}()

	if err := b.BeginInteractiveLogin(ctx); err != nil {
		return err
	}

	id := b.CurrentIdentity()
	if id == nil {
		return fmt.Errorf("%w: backend reported no identity after login", common.ErrBackendUnavailable)
	}

	c.stopReconnectPoller()
	c.transition(State{Authenticated: true, Method: method, Principal: id.Principal()})
	return nil
}

// Logout tears down the active backend's session and unconditionally
// transitions to logged out. A failing backend teardown is logged, never
// returned: once the user asked to log out, local state must not diverge
// from "logged out".
func (c *Coordinator) Logout(ctx context.Context) {
	c.mu.Lock()
	st := c.state
	c.mu.Unlock()

	if st.Authenticated {
		if b, ok := c.byMethod[st.Method]; ok {
			if err := b.EndSession(ctx); err != nil {
				c.log.Warn(ctx, "backend session teardown failed", "method", st.Method, "error", err)
			}
		}
	}

	c.stopReconnectPoller()
	c.transition(State{})
}

// CheckSession is the external reconciliation trigger (app regained focus,
// network came back online, periodic tick). It re-probes the currently
// active backend; when the backend no longer reports a session, the
// coordinator transitions to logged out, notifies, and starts the reconnect
// poller.
func (c *Coordinator) CheckSession(ctx context.Context) {
	c.mu.Lock()
	st := c.state
	c.mu.Unlock()

	if !st.Authenticated {
		return
	}

	b, ok := c.byMethod[st.Method]
	if !ok {
		return
	}

	active, err := b.ProbeActiveSession(ctx)
	if err != nil {
		// Probe failure is not session loss; keep the current state.
		c.log.Warn(ctx, "session probe failed", "method", st.Method, "error", err)
		return
	}
	if active {
		return
	}

	c.log.Info(ctx, "session lost", "method", st.Method)
	c.transition(State{})
	c.startReconnectPoller(st.Method)
}

// State returns the current session snapshot.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Principal returns the authenticated principal, or "" when logged out.
func (c *Coordinator) Principal() string {
	return c.State().Principal
}

// Identity returns the active backend's credential, or nil when logged out.
func (c *Coordinator) Identity() identity.Identity {
	st := c.State()
	if !st.Authenticated {
		return nil
	}
	b, ok := c.byMethod[st.Method]
	if !ok {
		return nil
	}
	return b.CurrentIdentity()
}

// Subscribe registers a subscriber and immediately delivers the current
// state to it, synchronously, exactly once.
func (c *Coordinator) Subscribe(s Subscriber) {
	c.mu.Lock()
	c.subscribers = append(c.subscribers, s)
	c.notifyMu.Lock()
	st := c.state
	c.mu.Unlock()

	s.OnStateChange(st.Authenticated)
	c.notifyMu.Unlock()
}

// Unsubscribe removes a subscriber. Safe to call from within the
// subscriber's own callback: deliveries iterate over a snapshot, so the
// in-progress pass is not corrupted.
func (c *Coordinator) Unsubscribe(s Subscriber) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, sub := range c.subscribers {
		if sub == s {
			c.subscribers = append(c.subscribers[:i], c.subscribers[i+1:]...)
			return
		}
	}
}

// Close stops the reconnect poller. The coordinator remains usable; session
// state is never destroyed, only reset.
func (c *Coordinator) Close() {
	c.stopReconnectPoller()
}

// transition applies the new state and notifies subscribers when it changed.
// notifyMu is acquired before mu is released, so concurrent transitions
// deliver their passes in the order the transitions occurred.
func (c *Coordinator) transition(next State) {
	c.mu.Lock()
	if c.state == next {
		c.mu.Unlock()
		return
	}
	c.state = next
	subs := make([]Subscriber, len(c.subscribers))
	copy(subs, c.subscribers)
	c.notifyMu.Lock()
	c.mu.Unlock()

	for _, s := range subs {
		s.OnStateChange(next.Authenticated)
	}
	c.notifyMu.Unlock()
}

// startReconnectPoller launches the periodic re-probe of a backend whose
// session was lost. At most one poller is active at a time.
func (c *Coordinator) startReconnectPoller(method identity.Method) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pollCancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.pollCancel = cancel

	go c.pollReconnect(ctx, method)
}

func (c *Coordinator) stopReconnectPoller() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pollCancel != nil {
		c.pollCancel()
		c.pollCancel = nil
	}
}

func (c *Coordinator) pollReconnect(ctx context.Context, method identity.Method) {
	b, ok := c.byMethod[method]
	if !ok {
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		active, err := b.ProbeActiveSession(ctx)
		if err != nil || !active {
			continue
		}
		id := b.CurrentIdentity()
		if id == nil {
			continue
		}

		if c.reconcile(ctx, State{Authenticated: true, Method: method, Principal: id.Principal()}) {
			c.log.Info(ctx, "session reconciled", "method", method, "principal", id.Principal())
		}
		return
	}
}

// reconcile retires the poller and applies the state its probe found, unless
// the poller was cancelled while that probe was in flight. Cancellation
// (stopReconnectPoller) happens under mu, so checking ctx under the same mu
// guarantees a logout that already cancelled this poller is never overwritten
// by a probe result that was still in progress.
func (c *Coordinator) reconcile(ctx context.Context, next State) bool {
	c.mu.Lock()
	if ctx.Err() != nil {
		c.mu.Unlock()
		return false
	}
	if c.pollCancel != nil {
		c.pollCancel()
		c.pollCancel = nil
	}
	if c.state == next {
		c.mu.Unlock()
		return true
	}
	c.state = next
	subs := make([]Subscriber, len(c.subscribers))
	copy(subs, c.subscribers)
	c.notifyMu.Lock()
	c.mu.Unlock()

	for _, s := range subs {
		s.OnStateChange(next.Authenticated)
	}
	c.notifyMu.Unlock()
	return true
}
