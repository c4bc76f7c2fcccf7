// Package cli provides the interactive ghostproof command-line client.
//
// It wires configuration, the local proof ledger, the session coordinator and
// proof services into an interactive REPL that supports online/offline
// operation. Typical flow: sign in with one of the identity methods, start a
// background connectivity watcher, and execute user commands.
//
// Key features:
//   - Login / Logout via delegation gateway or local device key
//   - Generate balance proofs and record them locally
//   - Verify recorded proofs (own or received via share link)
//   - Browse, share and delete the proof history
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
