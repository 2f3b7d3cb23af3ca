// Package session persists the signed-in user's credentials in a local SQLite
// database.
//
// Three entries make up a session: the access token, the refresh token and the
// user id. Each one carries its own expiry and the set is only ever written or
// cleared as a whole, inside one transaction. The Store doubles as the
// client.TokenSource that attaches the bearer credential to REST calls.
package session
