package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fmsdesk/internal/client/models"
)

var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}

// signIn authenticates and then shows the dashboard, like the sign-in view
// redirecting after success.
func (a *App) signIn(ctx context.Context, args []string) error {
	email, err := a.argOrPrompt(args, "Email")
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}

	p, err := a.auth.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	a.profile = &p
	fmt.Fprintf(a.out, "Signed in as %s.\n", p.DisplayName())

	return a.dashboard(ctx, nil)
}

func (a *App) signUp(ctx context.Context, _ []string) error {
	var r models.Registration
	var err error

	if r.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if r.FirstName, err = getSimpleText(a.reader, "First name (optional)", a.out); err != nil {
		return err
	}
	if r.LastName, err = getSimpleText(a.reader, "Last name (optional)", a.out); err != nil {
		return err
	}
	if r.Password, err = getPassword(a.reader, "Password", a.out); err != nil {
		return err
	}
	repeat, err := getPassword(a.reader, "Repeat password", a.out)
	if err != nil {
		return err
	}

	if err := a.auth.SignUp(ctx, r, repeat); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Account created. Open the link sent to %s or run: activate <token>\n", r.Email)
	return nil
}

func (a *App) activate(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("activate")
	}
	if err := a.auth.Activate(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Account activated. You can sign in now.")
	return nil
}

func (a *App) resetPassword(ctx context.Context, args []string) error {
	email, err := a.argOrPrompt(args, "Email")
	if err != nil {
		return err
	}
	if err := a.auth.RequestPasswordReset(ctx, email); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "A one-time code was sent to %s. Run: verify\n", email)
	return nil
}

func (a *App) verifyCode(ctx context.Context, _ []string) error {
	var c models.PasswordResetConfirmation
	var err error

	if c.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if c.OTP, err = getSimpleText(a.reader, "Code", a.out); err != nil {
		return err
	}
	if c.NewPassword, err = getPassword(a.reader, "New password", a.out); err != nil {
		return err
	}
	repeat, err := getPassword(a.reader, "Repeat password", a.out)
	if err != nil {
		return err
	}

	if err := a.auth.ConfirmPasswordReset(ctx, c, repeat); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password changed. You can sign in now.")
	return nil
}

func (a *App) signOut(ctx context.Context, _ []string) error {
	if err := a.auth.SignOut(ctx); err != nil {
		return err
	}
	a.profile = nil
	a.closeWorkspace()
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

// showProfile prints the profile; "profile edit" prompts for new names,
// keeping the current value on empty input.
func (a *App) showProfile(ctx context.Context, args []string) error {
	p, err := a.auth.Profile(ctx)
	if err != nil {
		return err
	}
	a.profile = &p

	if len(args) == 0 {
		printProfile(a, p)
		return nil
	}
	if args[0] != "edit" {
		return usage("profile")
	}

	first, err := getSimpleText(a.reader, fmt.Sprintf("First name [%s]", p.FirstName), a.out)
	if err != nil {
		return err
	}
	last, err := getSimpleText(a.reader, fmt.Sprintf("Last name [%s]", p.LastName), a.out)
	if err != nil {
		return err
	}
	if first != "" {
		p.FirstName = first
	}
	if last != "" {
		p.LastName = last
	}

	updated, err := a.auth.UpdateProfile(ctx, p)
	if err != nil {
		return err
	}
	a.profile = &updated
	fmt.Fprintln(a.out, "Profile updated.")
	printProfile(a, updated)
	return nil
}

func printProfile(a *App, p models.Profile) {
	fmt.Fprintf(a.out, "Email:      %s\n", p.Email)
	fmt.Fprintf(a.out, "First name: %s\n", p.FirstName)
	fmt.Fprintf(a.out, "Last name:  %s\n", p.LastName)
}
