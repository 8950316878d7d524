package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/staffdesk/staffdesk/internal/api"
	"github.com/staffdesk/staffdesk/internal/errors"
	"github.com/staffdesk/staffdesk/internal/forms"
	"github.com/staffdesk/staffdesk/internal/router"
	"github.com/staffdesk/staffdesk/internal/session"
	"github.com/staffdesk/staffdesk/internal/tui"
)

// Messages printed by the auth commands.
const (
	LoginSuccessMessage  = "Login successful!"
	LogoutSuccessMessage = "Logged out successfully."
	NotLoggedInMessage   = "Not logged in."
	SignupSuccessMessage = "Sign up successful!"
)

func newAuthCommand(app *App) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign in, sign out and manage your account",
		Long: `Manage the session of this client.

The session is kept in ~/.staffdesk (see storage.driver and storage.path) and is
used by every other command until you log out.

Subcommands:
  login   Sign in with username and password
  logout  Sign out and remove the stored session
  status  Show who is signed in
  signup  Create a new account

Examples:
  staffdesk auth login --username ann
  staffdesk auth status
  staffdesk auth logout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	authCmd.AddCommand(
		newAuthLoginCommand(app),
		newAuthLogoutCommand(app),
		newAuthStatusCommand(app),
		newAuthSignupCommand(app),
	)
	return authCmd
}

func newAuthLoginCommand(app *App) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Long: `Sign in with your username and password.

Opening the login view ends any current session first. Missing credentials are
prompted for when running in a terminal.

Examples:
  staffdesk auth login --username ann --password secret
  staffdesk auth login`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Router.Navigate(router.ViewLogin)

			if (username == "" || password == "") && app.interactive() {
				var err error
				username, password, err = tui.Credentials(username)
				if err != nil {
					return err
				}
			}

			f := forms.Login{Username: username, Password: password}
			if err := f.Validate(); err != nil {
				return err
			}

			resp, err := app.Client.Login(app.ctx(cmd), f.Username, f.Password)
			if err != nil {
				return err
			}
			id, fromID, err := resp.Identity()
			if err != nil {
				return err
			}
			if fromID {
				app.Logger.Warn("login response carried id instead of userId", "username", id.Username)
			}

			app.Session.Login(id)
			if !app.Session.Authenticated() {
				return errors.New(errors.ErrCodeAuthLoginFailed, api.LoginFailedMessage)
			}

			app.say(cmd, LoginSuccessMessage)
			return app.render(cmd, statusOf(app.Session.Snapshot()))
		},
	}
	withView(cmd, router.ViewLogin)

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted in a terminal)")
	return cmd
}

func newAuthLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Long: `Sign out and remove the stored session.

Examples:
  staffdesk auth logout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Session.Authenticated() {
				// Clears any unreadable leftover copy.
				app.Session.Logout()
				app.say(cmd, NotLoggedInMessage)
				return nil
			}

			username := app.Session.Username()
			app.Session.Logout()
			app.say(cmd, "Logging out: %s", username)
			app.say(cmd, LogoutSuccessMessage)
			return nil
		},
	}
}

// authStatus is the printable session state.
type authStatus struct {
	Authenticated bool           `json:"authenticated" yaml:"authenticated"`
	Username      string         `json:"username,omitempty" yaml:"username,omitempty"`
	Role          session.Role   `json:"role,omitempty" yaml:"role,omitempty"`
	UserID        session.UserID `json:"userId,omitempty" yaml:"userId,omitempty"`
}

func statusOf(id session.Identity) authStatus {
	if id.IsAnonymous() {
		return authStatus{}
	}
	return authStatus{Authenticated: true, Username: id.Username, Role: id.Role, UserID: id.UserID}
}

func (s authStatus) String() string {
	if !s.Authenticated {
		return NotLoggedInMessage
	}
	return fmt.Sprintf("Welcome, %s (%s, user id %d)", s.Username, s.Role, s.UserID)
}

func newAuthStatusCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show who is signed in",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.render(cmd, statusOf(app.Session.Snapshot()))
		},
	}
}

func newAuthSignupCommand(app *App) *cobra.Command {
	var f forms.Signup

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Long: `Create a customer or employee account.

Examples:
  staffdesk auth signup --username ann --password secret --name "Ann Lee" \
    --email ann@example.com --role CUSTOMER`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				if err := promptSignup(&f); err != nil {
					return err
				}
			}
			if err := f.Validate(); err != nil {
				return err
			}

			resp, err := app.Client.Signup(app.ctx(cmd), f.Request())
			if err != nil {
				return err
			}
			msg := SignupSuccessMessage
			if resp != nil && resp.Message != "" {
				msg = resp.Message
			}
			app.say(cmd, msg)
			app.say(cmd, "Run 'staffdesk auth login --username %s' to sign in.", f.Username)
			return nil
		},
	}
	withView(cmd, router.ViewSignup)

	flags := cmd.Flags()
	flags.StringVar(&f.Username, "username", "", "username")
	flags.StringVar(&f.Password, "password", "", "password")
	flags.StringVar(&f.Name, "name", "", "full name")
	flags.StringVar(&f.Email, "email", "", "email address")
	flags.StringVar(&f.Role, "role", "", "CUSTOMER or EMPLOYEE")
	return cmd
}

// promptSignup asks for the fields that were not passed as flags.
func promptSignup(f *forms.Signup) error {
	fields := []struct {
		value  *string
		prompt tui.Prompt
	}{
		{&f.Username, tui.Prompt{Message: "Username", Required: true}},
		{&f.Password, tui.Prompt{Message: "Password", Required: true, Secret: true}},
		{&f.Name, tui.Prompt{Message: "Full name", Required: true}},
		{&f.Email, tui.Prompt{Message: "Email", Placeholder: "you@example.com", Required: true}},
	}
	for _, field := range fields {
		if *field.value != "" {
			continue
		}
		v, err := tui.PromptForString(field.prompt)
		if err != nil {
			return err
		}
		*field.value = v
	}

	if f.Role == "" {
		options := make([]tui.Option, len(forms.SignupRoles))
		for i, r := range forms.SignupRoles {
			options[i] = tui.Option{Label: string(r), Value: string(r)}
		}
		role, err := tui.PromptForSelect("Account type", options)
		if err != nil {
			return err
		}
		f.Role = role
	}
	return nil
}

var _ tui.Authenticator = (*api.Client)(nil)
