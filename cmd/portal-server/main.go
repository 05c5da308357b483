package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iudanet/portalsync/internal/config"
	"github.com/iudanet/portalsync/internal/logger"
	"github.com/iudanet/portalsync/internal/models"
	"github.com/iudanet/portalsync/internal/server"
	"github.com/iudanet/portalsync/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	root := newRootCommand()
	root.Version = fmt.Sprintf("%s (built %s, commit %s)", Version, BuildDate, GitCommit)

	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configFile string
	addr       string
	dbPath     string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "portal-server",
		Short:         "Reference portal API server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default portal-server.yaml)")
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "sqlite database path")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portal API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}
	serve.Flags().StringVar(&opts.addr, "addr", "", "listen address")

	cmd.AddCommand(serve)
	cmd.AddCommand(newUserCommand(opts))

	return cmd
}

// load связывает флаги с ключами конфигурации сервера
func (o *rootOptions) load(cmd *cobra.Command) (*config.Server, error) {
	v := config.NewServerViper()
	for name, key := range map[string]string{"addr": "addr", "db": "db_path"} {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}
	if cmd.Name() == "serve" {
		return config.LoadServer(v, o.configFile)
	}
	return config.ReadServer(v, o.configFile)
}

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := opts.load(cmd)
	if err != nil {
		return err
	}

	log, err := logger.NewServer(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	srv, err := server.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := srv.Close(); err != nil {
			log.Error("failed to close server", "error", err)
		}
	}()

	return srv.Run(ctx)
}

type userOptions struct {
	username string
	password string
	role     string
	firmID   string
}

func newUserCommand(rootOpts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage portal accounts",
	}

	opts := &userOptions{}
	add := &cobra.Command{
		Use:   "add",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUserAdd(cmd, rootOpts, opts)
		},
	}
	add.Flags().StringVar(&opts.username, "username", "", "username")
	add.Flags().StringVar(&opts.password, "password", "", "password")
	add.Flags().StringVar(&opts.role, "role", "", "role: associate, firm, vendor or admin")
	add.Flags().StringVar(&opts.firmID, "firm", "", "firm id (role firm only)")
	_ = add.MarkFlagRequired("username")
	_ = add.MarkFlagRequired("password")
	_ = add.MarkFlagRequired("role")

	cmd.AddCommand(add)
	return cmd
}

func runUserAdd(cmd *cobra.Command, rootOpts *rootOptions, opts *userOptions) error {
	role, err := models.ParseRole(opts.role)
	if err != nil {
		return err
	}

	cfg, err := rootOpts.load(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	user, err := server.AddUser(ctx, store, server.NewUser{
		Username: opts.username,
		Password: opts.password,
		Role:     role,
		FirmID:   opts.firmID,
	})
	if err != nil {
		return fmt.Errorf("failed to add user: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s user %s (%s)\n", user.Role, user.Username, user.ID)
	return nil
}
