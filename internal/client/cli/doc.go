// Package cli provides the favkeeper command-line client.
//
// Commands:
//   - register / login / logout
//   - favourites list | add <id> | remove <id>
//   - health
//
// login stores the bearer token in a file (see config.DefaultTokenFile) so
// later favourites commands can reuse it. Passwords are read from the
// terminal without echo.
package cli
