// Package cli provides the interactive fittrack command-line client.
//
// It wires configuration, the local token store, the API client, the session
// and an interactive REPL. Typical flow: restore the stored session, start a
// background connectivity watcher, and execute user commands until exit.
//
// Commands:
//   - signup    create an account and sign in (the sign-up view)
//   - signin    sign in with email and password
//   - whoami    show the signed-in user
//   - catalog   list equipment and injuries known to the backend
//   - logout    forget the session
//   - help, exit | quit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
