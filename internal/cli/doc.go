// Package cli provides the interactive ecovate command-line client.
//
// It wires configuration, the local record store, the account and user data
// services, the calculators and the demo reference data behind a simple
// read-eval-print loop. Anonymous users can browse sensors, forecasts,
// insights, recommendations and tips, and chat
// with the assistant; after register or login the dashboard, offsets,
// calculators, investments and backups become available.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits,
// stdin reaches EOF or ctx is cancelled.
package cli
