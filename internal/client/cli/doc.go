// Package cli provides the interactive blog command-line client.
//
// It wires configuration, the local session database, the API client and
// the services into a REPL whose commands mirror the screens of the blog:
//
//   - home / posts   list posts, optionally sorted and filtered
//   - signup, login, logout
//   - newpost, editpost, deletepost
//   - me, edituser, deleteuser
//   - dismiss        close the pending notification
//
// After every command the pending notification, if any, is printed. It stays
// until a newer one replaces it or the user dismisses it. The REPL is started via App.Run(ctx), which blocks until the user
// exits or input ends.
package cli
