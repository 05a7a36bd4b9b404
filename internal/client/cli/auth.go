package cli

import (
	"context"
	"os"
)

// getSimpleText and confirmFn are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	confirmFn     = Confirm
)

// Login prompts for an email and signs in. The record list loads as part of
// the login; its size is echoed so the user knows the sync worked.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn("Already logged in as", a.app.Session.User().Email)
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	if email == "" {
		printlnFn("Email must not be empty")
		return nil
	}

	if err := a.app.Login(ctx, email); err != nil {
		printlnFn("Login failed:", commandErrText(err))
		return err
	}

	printfFn("Logged in as %s (%d tasting notes)\n", email, a.app.Records.Len())
	return nil
}

// Logout ends the session and drops everything that depended on it.
func (a *App) Logout(ctx context.Context) error {
	if err := a.app.Logout(ctx); err != nil {
		printlnFn("Logout failed:", commandErrText(err))
		return err
	}
	printlnFn("Logged out")
	return nil
}
