// Package cli provides the interactive fmsdesk command-line client.
//
// It wires configuration, the local session database, the REST client and the
// services into a REPL. Every command maps to a view path (for example
// "open 42" is /documents/42) and the path goes through the session gate
// before the command runs: without a session only the sign-in, sign-up,
// activation and password-reset commands are available, and a signed-in user
// asking for one of those is sent to the dashboard instead.
//
// Document work happens in a workspace: "open" loads one document with its
// tags, types and correspondents, "edit" switches to an editable draft,
// "set", "tags", "newtag" and "note" change the draft, and "save" or
// "cancel" return to the read-only view.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the loop itself.
package cli
