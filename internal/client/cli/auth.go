package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mpavlovs/authkeep/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an email and password and attempts to create a new
// account. On success the user is logged in immediately. The password byte
// slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.controller.Register(ctx, email, string(password)); err != nil {
		fmt.Printf("Registration failed: %s\n", err.Error())
		return err
	}

	fmt.Println("Success! You are now logged in.")
	return nil
}

// Login prompts for credentials and authenticates against the server.
// Transport errors carry the server's message and are shown as-is.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.controller.Login(ctx, email, string(password)); err != nil {
		fmt.Printf("Login failed: %s\n", err.Error())
		return err
	}

	fmt.Println("Login successful")
	return nil
}

// Logout ends the session. It cannot fail from the user's point of view:
// server revocation is best-effort and local state is always cleared.
func (a *App) Logout(ctx context.Context) error {
	a.controller.Logout(ctx)
	fmt.Println("Logged out")
	return nil
}
