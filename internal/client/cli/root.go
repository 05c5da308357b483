package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iudanet/portalsync/internal/client/iocli"
	"github.com/iudanet/portalsync/internal/config"
	"github.com/iudanet/portalsync/internal/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
	Server     string
	DBPath     string
	RedisURL   string
	Format     string // "json" | "text"
	Verbose    bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// flagKeys связывает глобальные флаги с ключами конфигурации
var flagKeys = map[string]string{
	"server": "server.url",
	"db":     "storage.path",
	"redis":  "broadcast.redis_url",
}

// NewRootCommand creates the root command of the portal CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "portal",
		Short: "Marketplace portal client with offline drafts",
		Long: `Edit associate, firm and vendor profiles and firm studio listings.

Every change is written to a local draft first and then sent to the portal.
When the portal cannot be reached the draft is kept and shown instead.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.ConfigFile, "config", "", "config file (default portal.yaml in the config dir)")
	flags.StringVar(&opts.Server, "server", "", "portal API base URL")
	flags.StringVar(&opts.DBPath, "db", "", "local profile database path")
	flags.StringVar(&opts.RedisURL, "redis", "", "redis URL for cross-process draft broadcasts")
	flags.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewProfileCommand(opts))
	cmd.AddCommand(NewStudiosCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))
	cmd.AddCommand(NewDraftsCommand(opts))

	return cmd
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	exitErr, ok := err.(*ExitError)
	if !ok || !exitErr.Printed {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return GetExitCode(err)
}

// formatter создает форматтер вывода для команды
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
	}
}

// loadConfig читает конфигурацию: умолчания, файл, окружение, флаги
func (o *RootOptions) loadConfig(cmd *cobra.Command) (*config.Client, error) {
	v := config.NewClientViper()
	if err := bindFlags(v, cmd); err != nil {
		return nil, err
	}
	cfg, err := config.LoadClient(v, o.ConfigFile)
	if err != nil {
		return nil, err
	}
	if o.Verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// run открывает клиент, выполняет fn и печатает ошибку в выбранном формате
func (o *RootOptions) run(fn func(ctx context.Context, c *Cli, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		out := o.formatter(cmd)

		cfg, err := o.loadConfig(cmd)
		if err != nil {
			return o.fail(out, ExitCommandError, err)
		}

		log, err := logger.NewCLI(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
		if err != nil {
			return o.fail(out, ExitCommandError, err)
		}

		ctx := cmd.Context()
		c, err := New(ctx, cfg, log, iocli.NewStdio(cmd.InOrStdin(), cmd.OutOrStdout()), out)
		if err != nil {
			return o.fail(out, ExitFailure, err)
		}
		defer func() {
			if err := c.Close(); err != nil {
				log.Warn("failed to close client", "error", err)
			}
		}()

		if err := fn(ctx, c, args); err != nil {
			return o.fail(out, exitCode(err), err)
		}
		return nil
	}
}

func (o *RootOptions) fail(out *OutputFormatter, code int, err error) error {
	printed := out.Error(code, describe(err)) == nil
	return &ExitError{Err: err, Code: code, Printed: printed}
}
