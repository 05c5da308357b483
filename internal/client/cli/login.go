package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/portalsync/internal/config"
)

// PasswordEnv переменная окружения с паролем для неинтерактивного входа
const PasswordEnv = config.ClientEnvPrefix + "_PASSWORD"

// Credentials источники логина и пароля
type Credentials struct {
	Username     string
	Password     string
	PasswordFile string
}

type sessionView struct {
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Username  string     `json:"username"`
	Role      string     `json:"role"`
	FirmID    string     `json:"firmId,omitempty"`
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	creds := &Credentials{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the portal",
		Long: `Sign in and store the session in the local profile.

The password is taken from ` + PasswordEnv + `, --password-file, --password
or an interactive prompt, in that order.`,
		Args: cobra.NoArgs,
		RunE: rootOpts.run(func(ctx context.Context, c *Cli, _ []string) error {
			return c.runLogin(ctx, creds)
		}),
	}

	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "username")
	cmd.Flags().StringVar(&creds.Password, "password", "", "password (visible in process list)")
	cmd.Flags().StringVar(&creds.PasswordFile, "password-file", "", "file containing the password")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session (drafts are kept)",
		Args:  cobra.NoArgs,
		RunE: rootOpts.run(func(ctx context.Context, c *Cli, _ []string) error {
			if err := c.authService.Logout(ctx); err != nil {
				return err
			}
			return c.out.Success(map[string]bool{"loggedIn": false}, nil, func(w io.Writer) {
				fmt.Fprintln(w, "Signed out")
			})
		}),
	}
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session, server and draft state",
		Args:  cobra.NoArgs,
		RunE: rootOpts.run(func(ctx context.Context, c *Cli, _ []string) error {
			return c.runStatus(ctx)
		}),
	}
}

func (c *Cli) runLogin(ctx context.Context, creds *Credentials) error {
	username := strings.TrimSpace(creds.Username)
	if username == "" {
		input, err := c.io.ReadInput("Username: ")
		if err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
		username = input
	}

	password, err := c.getPassword(creds)
	if err != nil {
		return fmt.Errorf("failed to get password: %w", err)
	}

	session, err := c.authService.Login(ctx, username, password)
	if err != nil {
		return err
	}

	view := sessionView{Username: session.Username, Role: session.Role, FirmID: session.FirmID}
	if !session.ExpiresAt.IsZero() {
		view.ExpiresAt = &session.ExpiresAt
	}

	return c.out.Success(view, nil, func(w io.Writer) {
		fmt.Fprintf(w, "Signed in as %s (%s)\n", session.Username, session.Role)
		if session.FirmID != "" {
			fmt.Fprintf(w, "Firm: %s\n", session.FirmID)
		}
	})
}

// getPassword читает пароль с приоритетом:
// 1. переменная окружения PORTAL_PASSWORD
// 2. файл из --password-file
// 3. параметр --password
// 4. интерактивный ввод
func (c *Cli) getPassword(creds *Credentials) (string, error) {
	if password := os.Getenv(PasswordEnv); password != "" {
		return password, nil
	}

	if creds.PasswordFile != "" {
		content, err := os.ReadFile(creds.PasswordFile)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", errors.New("password file is empty")
		}
		return password, nil
	}

	if creds.Password != "" {
		return creds.Password, nil
	}

	return c.io.ReadPassword("Password: ")
}

type statusView struct {
	Session   *sessionView `json:"session,omitempty"`
	Server    string       `json:"server"`
	Broadcast string       `json:"broadcast"`
	Drafts    int          `json:"drafts"`
	Reachable bool         `json:"reachable"`
	LoggedIn  bool         `json:"loggedIn"`
	Expired   bool         `json:"expired"`
}

func (c *Cli) runStatus(ctx context.Context) error {
	status, err := c.authService.Status(ctx)
	if err != nil {
		return err
	}

	view := statusView{
		Server:    c.cfg.Server.URL,
		Broadcast: c.broadcastBackend(),
		LoggedIn:  status.LoggedIn,
		Expired:   status.Expired,
	}
	if s := status.Session; s != nil {
		view.Session = &sessionView{Username: s.Username, Role: s.Role, FirmID: s.FirmID}
		if !s.ExpiresAt.IsZero() {
			view.Session.ExpiresAt = &s.ExpiresAt
		}
	}

	if err := c.apiClient.Health(ctx); err != nil {
		c.logger.Debug("health check failed", "error", err)
	} else {
		view.Reachable = true
	}

	keys, err := c.storage.DraftKeys(ctx)
	if err != nil {
		c.logger.Warn("failed to count drafts", "error", err)
	}
	view.Drafts = len(keys)

	return c.out.Success(view, nil, func(w io.Writer) {
		fmt.Fprintln(w, "=== Portal Status ===")
		fmt.Fprintln(w)
		switch {
		case view.Session == nil:
			fmt.Fprintln(w, "Session: not signed in")
		case view.Expired:
			fmt.Fprintf(w, "Session: %s (%s), expired, run 'portal login'\n", view.Session.Username, view.Session.Role)
		default:
			fmt.Fprintf(w, "Session: %s (%s)\n", view.Session.Username, view.Session.Role)
		}
		if view.Session != nil && view.Session.FirmID != "" {
			fmt.Fprintf(w, "Firm: %s\n", view.Session.FirmID)
		}
		reach := "unreachable"
		if view.Reachable {
			reach = "reachable"
		}
		fmt.Fprintf(w, "Server: %s (%s)\n", view.Server, reach)
		fmt.Fprintf(w, "Broadcast: %s\n", view.Broadcast)
		fmt.Fprintf(w, "Local drafts: %d\n", view.Drafts)
	})
}
