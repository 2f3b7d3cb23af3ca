package models

// TokenPair is the response of POST /api/token/.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Profile is the signed-in user's account record.
type Profile struct {
	ID        int    `json:"id"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (p Profile) DisplayName() string {
	switch {
	case p.FirstName != "" && p.LastName != "":
		return p.FirstName + " " + p.LastName
	case p.FirstName != "":
		return p.FirstName
	default:
		return p.Email
	}
}

// Registration is the body of POST /register/.
// RepeatPassword is only checked locally and never sent.
type Registration struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required"`
	RepeatPassword string `json:"-" label:"repeat_password" validate:"eqfield=Password"`
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
}

// PasswordResetConfirmation completes a reset with the emailed one-time code.
type PasswordResetConfirmation struct {
	Email          string `json:"email" validate:"required,email"`
	OTP            string `json:"otp" validate:"required"`
	NewPassword    string `json:"new_password" validate:"required"`
	RepeatPassword string `json:"-" label:"repeat_password" validate:"eqfield=NewPassword"`
}

// Project groups documents.
type Project struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
