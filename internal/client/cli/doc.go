// Package cli provides the interactive GrowLog command-line client.
//
// It wires configuration, the local session store, API services and a REPL.
// Typical flow: restore the saved session (if any), start a background
// connectivity watcher, and execute user commands.
//
// Key features:
//   - Register / Login / Logout, with the session kept across runs
//   - List / Show plants, including age and per-phase durations
//   - Add a plant through a form driven by lifecycle.FormFields
//   - Delete a plant, show the per-phase summary
//   - Upload and download plant photos through presigned URLs
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
