// Package cli is the veildiary command-line client.
//
// Each command is a single request against the server. Login state lives in
// a session file (see package session) so that later commands can reuse the
// tokens; an expired access token is refreshed silently and written back.
//
//	veildiary login --email ann@example.com
//	veildiary mappings add "Bob Smith" "B."
//	veildiary write --anonymize "Lunch with Bob Smith"
//	veildiary feed
package cli
