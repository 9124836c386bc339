package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"os"

	"github.com/terraincognita07/femora/internal/models"
	"github.com/terraincognita07/femora/internal/security"
	"github.com/terraincognita07/femora/internal/services"
)

const temporaryPasswordLength = 12

type PasswordResetter interface {
	ResetPassword(ctx context.Context, email string, temporaryPassword string) (models.User, error)
}

type ResetOptions struct {
	// Prompt asks the operator for the new password instead of generating one.
	Prompt bool
	Stdin  *os.File
}

// RunResetPassword replaces a user's password and flags the account so the
// user has to choose a new one after logging in.
func RunResetPassword(ctx context.Context, resetter PasswordResetter, email string, options ResetOptions, out io.Writer) error {
	normalizedEmail := services.NormalizeEmail(email)
	if normalizedEmail == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(normalizedEmail); err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}

	password, generated, err := resolveResetPassword(options, out)
	if err != nil {
		return err
	}

	if _, err := resetter.ResetPassword(ctx, normalizedEmail, password); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return fmt.Errorf("user %s not found", normalizedEmail)
		}
		return fmt.Errorf("reset password: %w", err)
	}

	fmt.Fprintln(out, styleSuccess.Render("Password reset successful"))
	if generated {
		fmt.Fprintf(out, "Temporary password: %s\n", styleBold.Render(password))
	}
	fmt.Fprintln(out, "User must change password on next login.")
	return nil
}

func resolveResetPassword(options ResetOptions, out io.Writer) (string, bool, error) {
	if !options.Prompt {
		password, err := security.TemporaryPassword(temporaryPasswordLength)
		if err != nil {
			return "", false, fmt.Errorf("generate temporary password: %w", err)
		}
		return password, true, nil
	}

	password, err := promptPassword(out, options.Stdin, "New password: ")
	if err != nil {
		return "", false, err
	}
	if err := services.ValidatePasswordStrength(password); err != nil {
		return "", false, fmt.Errorf("password must be at least %d characters long", services.MinPasswordLength)
	}
	return password, false, nil
}
