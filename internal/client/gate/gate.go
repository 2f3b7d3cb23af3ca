// Package gate decides, once per navigation, whether a view may be entered
// with the stored credentials.
//
// The decision only inspects the access token locally: it is decoded without
// verifying the signature (the backend does that on every call) and its "exp"
// claim is compared with the clock. There is no refresh-token exchange; an
// expired session is cleared and the user signs in again.
package gate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/fmsdesk/internal/client/session"
	"github.com/dmitrijs2005/fmsdesk/internal/common"
	"github.com/dmitrijs2005/fmsdesk/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

const (
	SignInPath    = "/sign-in"
	DashboardPath = "/dashboard"
)

// PublicPaths may be entered without a session. A signed-in user is sent to
// the dashboard instead.
var PublicPaths = []string{
	SignInPath,
	"/sign-up",
	"/reset-password",
	"/verify-otp",
	"/activate",
}

// IsPublic reports whether path or one of its parents is on the public list.
func IsPublic(path string) bool {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	for _, p := range PublicPaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// Decision is the outcome of a gate check. When Allow is false, Redirect
// names the view to go to instead.
type Decision struct {
	Allow            bool
	Redirect         string
	ClearCredentials bool
}

func allow() Decision { return Decision{Allow: true} }

func redirect(to string) Decision { return Decision{Redirect: to} }

// ValidateToken decodes the access token and checks its expiry at now. A
// token without an "exp" claim is accepted.
func ValidateToken(token string, now time.Time) error {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time) {
		return common.ErrCredentialsExpired
	}
	return nil
}

// Decide is the pure routing rule behind Gate.Check.
func Decide(path string, creds session.Credentials, now time.Time) Decision {
	public := IsPublic(path)

	if !creds.HasAccess() {
		if public {
			return allow()
		}
		return redirect(SignInPath)
	}

	if err := ValidateToken(creds.AccessToken, now); err != nil {
		d := redirect(SignInPath)
		if public {
			d = allow()
		}
		d.ClearCredentials = true
		return d
	}

	if public {
		return redirect(DashboardPath)
	}
	return allow()
}

// CredentialStore is the part of session.Store the gate needs.
type CredentialStore interface {
	Load(ctx context.Context) (session.Credentials, error)
	Clear(ctx context.Context) error
}

type Gate struct {
	store  CredentialStore
	logger logging.Logger
	now    func() time.Time
}

func New(store CredentialStore, logger logging.Logger) *Gate {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Gate{store: store, logger: logger, now: time.Now}
}

// Check loads the credentials, decides for path and clears a dead session.
// A store failure is treated as "no credentials".
func (g *Gate) Check(ctx context.Context, path string) (Decision, error) {
	creds, err := g.store.Load(ctx)
	if err != nil {
		g.logger.Warn(ctx, "credential load failed", "path", path, "error", err.Error())
		creds = session.Credentials{}
	}

	d := Decide(path, creds, g.now())
	if d.ClearCredentials {
		if err := g.store.Clear(ctx); err != nil {
			return d, fmt.Errorf("clear credentials: %w", err)
		}
		g.logger.Info(ctx, "session expired, credentials cleared", "path", path)
	}
	if !d.Allow {
		g.logger.Debug(ctx, "navigation redirected", "path", path, "to", d.Redirect)
	}
	return d, nil
}
