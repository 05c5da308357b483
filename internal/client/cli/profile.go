package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/portalsync/internal/client/sync"
	"github.com/iudanet/portalsync/internal/models"
)

// ProfileOptions flags of the profile commands
type ProfileOptions struct {
	FirmID         string
	PreferDraft    bool
	NoFallback     bool
	NoDraftOnError bool
}

// profileView результат синхронизатора без параметра типа
type profileView struct {
	result       any // *sync.Result[T] для JSON
	err          error
	payload      models.Fields
	source       sync.Source
	ok           bool
	stale        bool
	authRequired bool
	fallback     bool
	offlineSaved bool
}

func viewOf[T any](r *sync.Result[T]) *profileView {
	v := &profileView{
		result:       r,
		err:          r.Err,
		source:       r.Source,
		ok:           r.OK,
		stale:        r.Stale,
		authRequired: r.AuthRequired,
		fallback:     r.Fallback,
		offlineSaved: r.OfflineSaved,
	}
	if r.Record != nil {
		v.payload = r.Record.Payload
	}
	return v
}

func (v *profileView) notices() []string {
	switch {
	case v.offlineSaved:
		return []string{NoticeDraftSaved}
	case v.authRequired:
		return []string{NoticeSignIn}
	case v.fallback:
		return []string{NoticeOffline}
	}
	return nil
}

// profileBinding операции синхронизатора одного профиля
type profileBinding struct {
	fetch  func(ctx context.Context, opts sync.FetchOptions) (*profileView, error)
	upsert func(ctx context.Context, patch models.Fields, opts sync.UpsertOptions) (*profileView, error)
	draft  func(ctx context.Context, firmID string) *models.DraftRecord
	clear  func(ctx context.Context, firmID string) error
}

func bindProfile[T any](s *sync.Synchronizer[T]) profileBinding {
	return profileBinding{
		fetch: func(ctx context.Context, opts sync.FetchOptions) (*profileView, error) {
			r, err := s.Fetch(ctx, opts)
			if err != nil {
				return nil, err
			}
			return viewOf(r), nil
		},
		upsert: func(ctx context.Context, patch models.Fields, opts sync.UpsertOptions) (*profileView, error) {
			r, err := s.Upsert(ctx, patch, opts)
			if err != nil {
				return nil, err
			}
			return viewOf(r), nil
		},
		draft: s.LoadDraft,
		clear: s.ClearDraft,
	}
}

var profileRoles = []string{string(models.RoleAssociate), string(models.RoleFirm), string(models.RoleVendor)}

// profile выбирает синхронизатор по имени роли
func (c *Cli) profile(name string) (profileBinding, error) {
	switch models.Role(name) {
	case models.RoleAssociate:
		return bindProfile(c.engine.Associate), nil
	case models.RoleFirm:
		return bindProfile(c.engine.Firm), nil
	case models.RoleVendor:
		return bindProfile(c.engine.Vendor), nil
	}
	return profileBinding{}, fmt.Errorf("unknown profile %q: must be one of %s", name, strings.Join(profileRoles, ", "))
}

// NewProfileCommand creates the profile command group.
func NewProfileCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Read and edit associate, firm and vendor profiles",
	}

	cmd.AddCommand(newProfileGetCommand(rootOpts))
	cmd.AddCommand(newProfileSetCommand(rootOpts))
	cmd.AddCommand(newProfileDraftCommand(rootOpts))
	cmd.AddCommand(newProfileClearCommand(rootOpts))

	return cmd
}

func newProfileGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProfileOptions{}

	cmd := &cobra.Command{
		Use:       "get <associate|firm|vendor>",
		Short:     "Show a profile, falling back to the local draft",
		Args:      cobra.ExactArgs(1),
		ValidArgs: profileRoles,
		RunE: rootOpts.run(func(ctx context.Context, c *Cli, args []string) error {
			return c.runProfileGet(ctx, args[0], opts)
		}),
	}

	cmd.Flags().StringVar(&opts.FirmID, "firm", "", "firm id (default: firm of the session)")
	cmd.Flags().BoolVar(&opts.PreferDraft, "prefer-draft", false, "return the local draft without contacting the server")
	cmd.Flags().BoolVar(&opts.NoFallback, "no-fallback", false, "fail instead of showing the draft when sign-in is required")

	return cmd
}

func newProfileSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProfileOptions{}

	cmd := &cobra.Command{
		Use:   "set <associate|firm|vendor> key=value [key:=json ...]",
		Short: "Change profile fields",
		Long: `Change profile fields. The change is saved to the local draft first and
then sent to the portal.

key=value sets a string; key:=json sets any JSON value, e.g. teamSize:=12
or services:='["interiors","lighting"]'.`,
		Args: cobra.MinimumNArgs(2),
		RunE: rootOpts.run(func(ctx context.Context, c *Cli, args []string) error {
			patch, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}
			return c.runProfileSet(ctx, args[0], patch, opts)
		}),
	}

	cmd.Flags().StringVar(&opts.FirmID, "firm", "", "firm id (default: firm of the session)")
	cmd.Flags().BoolVar(&opts.NoDraftOnError, "no-draft-on-error", false, "report server errors instead of keeping the change as a draft result")

	return cmd
}

func newProfileDraftCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProfileOptions{}

	cmd := &cobra.Command{
		Use:       "draft <associate|firm|vendor>",
		Short:     "Show the local draft of a profile without contacting the server",
		Args:      cobra.ExactArgs(1),
		ValidArgs: profileRoles,
		RunE: rootOpts.run(func(ctx context.Context, c *Cli, args []string) error {
			binding, err := c.profile(args[0])
			if err != nil {
				return err
			}
			record := binding.draft(ctx, opts.FirmID)
			if record == nil {
				return fmt.Errorf("no local draft of the %s profile", args[0])
			}
			return c.out.Success(record, nil, func(w io.Writer) {
				fmt.Fprintf(w, "%s draft (%s, updated %s)\n", args[0], record.Source, record.UpdatedAt.Format(time.RFC3339))
				printFields(w, record.Payload)
			})
		}),
	}

	cmd.Flags().StringVar(&opts.FirmID, "firm", "", "firm id (default: firm of the session)")

	return cmd
}

func newProfileClearCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProfileOptions{}

	cmd := &cobra.Command{
		Use:       "clear <associate|firm|vendor>",
		Short:     "Discard the local draft of a profile",
		Args:      cobra.ExactArgs(1),
		ValidArgs: profileRoles,
		RunE: rootOpts.run(func(ctx context.Context, c *Cli, args []string) error {
			binding, err := c.profile(args[0])
			if err != nil {
				return err
			}
			if err := binding.clear(ctx, opts.FirmID); err != nil {
				return err
			}
			return c.out.Success(map[string]string{"cleared": args[0]}, nil, func(w io.Writer) {
				fmt.Fprintf(w, "%s draft cleared\n", args[0])
			})
		}),
	}

	cmd.Flags().StringVar(&opts.FirmID, "firm", "", "firm id (default: firm of the session)")

	return cmd
}

func (c *Cli) runProfileGet(ctx context.Context, name string, opts *ProfileOptions) error {
	binding, err := c.profile(name)
	if err != nil {
		return err
	}

	view, err := binding.fetch(ctx, sync.FetchOptions{
		FirmID:          opts.FirmID,
		PreferDraft:     opts.PreferDraft,
		NoDraftFallback: opts.NoFallback,
	})
	if err != nil {
		return err
	}

	return c.printProfile(name, view)
}

func (c *Cli) runProfileSet(ctx context.Context, name string, patch models.Fields, opts *ProfileOptions) error {
	binding, err := c.profile(name)
	if err != nil {
		return err
	}

	view, err := binding.upsert(ctx, patch, sync.UpsertOptions{
		FirmID:         opts.FirmID,
		NoDraftOnError: opts.NoDraftOnError,
	})
	if err != nil {
		return err
	}
	if !view.ok {
		return &draftKeptError{err: view.err}
	}

	return c.printProfile(name, view)
}

func (c *Cli) printProfile(name string, view *profileView) error {
	return c.out.Success(view.result, view.notices(), func(w io.Writer) {
		state := string(view.source)
		if view.stale {
			state += ", stale"
		}
		fmt.Fprintf(w, "%s profile (%s)\n", name, state)
		printFields(w, view.payload)
	})
}

func printFields(w io.Writer, fields models.Fields) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %s\n", k, formatValue(fields[k]))
	}
}

// parseAssignments разбирает аргументы key=value и key:=json
func parseAssignments(args []string) (models.Fields, error) {
	patch := models.Fields{}
	for _, arg := range args {
		if key, raw, ok := strings.Cut(arg, ":="); ok && key != "" && !strings.Contains(key, "=") {
			var value any
			if err := json.Unmarshal([]byte(raw), &value); err != nil {
				return nil, fmt.Errorf("invalid JSON value for %q: %w", key, err)
			}
			patch[key] = value
			continue
		}

		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q: expected key=value", arg)
		}
		patch[key] = value
	}
	return patch, nil
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
