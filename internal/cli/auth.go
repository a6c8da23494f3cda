package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ecovate/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for email, password, display name and an optional
// profile image URL, then creates the account and logs in. The password is
// wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	name, err := getSimpleText(a.reader, "Enter display name", a.out)
	if err != nil {
		return err
	}
	image, err := getSimpleText(a.reader, "Profile image URL (optional)", a.out)
	if err != nil {
		return err
	}

	acc, err := a.accounts.Register(ctx, email, password, name, image)
	if err != nil {
		return err
	}
	a.emissions.Close()
	a.credits.Close()
	fmt.Fprintf(a.out, "Welcome, %s!\n", acc.DisplayName)
	return nil
}

// Login prompts for credentials and establishes a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	acc, err := a.accounts.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.emissions.Close()
	a.credits.Close()
	fmt.Fprintf(a.out, "Logged in as %s.\n", acc.DisplayName)
	return nil
}

// Logout ends the session and drops the calculator runs.
func (a *App) Logout(ctx context.Context) error {
	if err := a.accounts.Logout(ctx); err != nil {
		return err
	}
	a.emissions.Close()
	a.credits.Close()
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Profile shows the current profile and lets the user edit it. Empty input
// keeps a value; "-" clears the profile image.
func (a *App) Profile(ctx context.Context) error {
	acc, ok := a.accounts.Current()
	if !ok {
		return common.ErrNoActiveAccount
	}

	tw := newTable(a.out)
	fmt.Fprintf(tw, "Email:\t%s\n", acc.Email)
	fmt.Fprintf(tw, "Display name:\t%s\n", acc.DisplayName)
	fmt.Fprintf(tw, "Profile image:\t%s\n", acc.ProfileImage)
	_ = tw.Flush()

	name, err := getSimpleText(a.reader, "New display name (empty keeps current)", a.out)
	if err != nil {
		return err
	}
	image, err := getSimpleText(a.reader, "New profile image URL (empty keeps current, - clears)", a.out)
	if err != nil {
		return err
	}

	if name == "" && image == "" {
		return nil
	}
	if name == "" {
		name = acc.DisplayName
	}
	switch image {
	case "":
		image = acc.ProfileImage
	case "-":
		image = ""
	}

	if err := a.accounts.UpdateProfile(ctx, name, image); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile updated.")
	return nil
}
