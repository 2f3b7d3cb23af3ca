package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/fmsdesk/internal/client/client"
	"github.com/dmitrijs2005/fmsdesk/internal/client/models"
	"github.com/dmitrijs2005/fmsdesk/internal/logging"
)

// CredentialStore persists the session written by SignIn and removed by
// SignOut.
type CredentialStore interface {
	Save(ctx context.Context, pair models.TokenPair, userID string) error
	Clear(ctx context.Context) error
}

// AuthService defines the account flows of the CLI.
//
// Contract:
//   - SignIn: obtain tokens, persist them and the user id.
//   - SignUp: register a new account; the password must be repeated.
//   - Activate: confirm an account with the emailed token.
//   - RequestPasswordReset / ConfirmPasswordReset: one-time-code reset.
//   - Profile / UpdateProfile: the signed-in user's record.
//   - SignOut: drop every stored credential.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (models.Profile, error)
	SignUp(ctx context.Context, r models.Registration, repeatPassword string) error
	Activate(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, c models.PasswordResetConfirmation, repeatPassword string) error
	Profile(ctx context.Context) (models.Profile, error)
	UpdateProfile(ctx context.Context, p models.Profile) (models.Profile, error)
	SignOut(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  CredentialStore
	logger logging.Logger
}

func NewAuthService(c client.Client, store CredentialStore, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &authService{client: c, store: store, logger: logger}
}

// signInInput is checked before the token request.
type signInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignIn stores the token pair first so the profile lookup is authenticated,
// then stores it again with the user id. A failed profile lookup does not undo
// the sign-in.
func (a *authService) SignIn(ctx context.Context, email, password string) (models.Profile, error) {
	email = strings.TrimSpace(email)
	if err := checkStruct(signInInput{Email: email, Password: password}); err != nil {
		return models.Profile{}, err
	}

	pair, err := a.client.ObtainTokens(ctx, email, password)
	if err != nil {
		return models.Profile{}, fmt.Errorf("sign in: %w", err)
	}
	if err := a.store.Save(ctx, pair, ""); err != nil {
		return models.Profile{}, fmt.Errorf("save credentials: %w", err)
	}

	profile, err := a.client.GetProfile(ctx)
	if err != nil {
		a.logger.Warn(ctx, "profile lookup after sign-in failed", "error", err.Error())
		return models.Profile{Email: email}, nil
	}
	if err := a.store.Save(ctx, pair, strconv.Itoa(profile.ID)); err != nil {
		return models.Profile{}, fmt.Errorf("save credentials: %w", err)
	}

	a.logger.Info(ctx, "signed in", "user_id", profile.ID)
	return profile, nil
}

func (a *authService) SignUp(ctx context.Context, r models.Registration, repeatPassword string) error {
	r.Email = strings.TrimSpace(r.Email)
	r.RepeatPassword = repeatPassword
	if err := checkStruct(r); err != nil {
		return err
	}

	if err := a.client.Register(ctx, r); err != nil {
		return fmt.Errorf("sign up: %w", err)
	}
	a.logger.Info(ctx, "account registered")
	return nil
}

func (a *authService) Activate(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if err := checkVar("token", token, "required"); err != nil {
		return err
	}
	if err := a.client.Activate(ctx, token); err != nil {
		return fmt.Errorf("activate: %w", err)
	}
	return nil
}

func (a *authService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := checkVar("email", email, "required,email"); err != nil {
		return err
	}
	if err := a.client.RequestPasswordReset(ctx, email); err != nil {
		return fmt.Errorf("request password reset: %w", err)
	}
	return nil
}

func (a *authService) ConfirmPasswordReset(ctx context.Context, c models.PasswordResetConfirmation, repeatPassword string) error {
	c.Email = strings.TrimSpace(c.Email)
	c.OTP = strings.TrimSpace(c.OTP)
	c.RepeatPassword = repeatPassword
	if err := checkStruct(c); err != nil {
		return err
	}

	if err := a.client.ConfirmPasswordReset(ctx, c); err != nil {
		return fmt.Errorf("confirm password reset: %w", err)
	}
	return nil
}

func (a *authService) Profile(ctx context.Context) (models.Profile, error) {
	p, err := a.client.GetProfile(ctx)
	if err != nil {
		return models.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (a *authService) UpdateProfile(ctx context.Context, p models.Profile) (models.Profile, error) {
	p.Email = strings.TrimSpace(p.Email)
	if err := checkStruct(p); err != nil {
		return models.Profile{}, err
	}
	out, err := a.client.UpdateProfile(ctx, p)
	if err != nil {
		return models.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return out, nil
}

func (a *authService) SignOut(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	a.logger.Info(ctx, "signed out")
	return nil
}
