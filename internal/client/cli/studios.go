package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"

	"github.com/iudanet/portalsync/internal/client/sync"
	"github.com/iudanet/portalsync/internal/models"
)

// StudioOptions flags of the studios commands
type StudioOptions struct {
	FirmID string
	Match  string
	Input  models.StudioInput
}

// NewStudiosCommand creates the studios command group.
func NewStudiosCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "studios",
		Short: "Manage the studio listings of a firm",
	}

	cmd.AddCommand(newStudiosListCommand(rootOpts))
	cmd.AddCommand(newStudiosCreateCommand(rootOpts))
	cmd.AddCommand(newStudiosUpdateCommand(rootOpts))
	cmd.AddCommand(newStudiosPublishCommand(rootOpts))
	cmd.AddCommand(newStudiosDeleteCommand(rootOpts))

	return cmd
}

func addFirmFlag(cmd *cobra.Command, opts *StudioOptions) {
	cmd.Flags().StringVar(&opts.FirmID, "firm", "", "firm id (default: firm of the session)")
}

func addInputFlags(cmd *cobra.Command, opts *StudioOptions) {
	cmd.Flags().StringVar(&opts.Input.Name, "name", "", "studio name")
	cmd.Flags().StringVar(&opts.Input.Location, "location", "", "studio location")
	cmd.Flags().StringVar(&opts.Input.Description, "description", "", "studio description")
}

func newStudiosListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StudioOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List studios",
		Args:  cobra.NoArgs,
		RunE: rootOpts.run(func(ctx context.Context, c *Cli, _ []string) error {
			return c.runStudiosList(ctx, opts)
		}),
	}

	addFirmFlag(cmd, opts)
	cmd.Flags().StringVar(&opts.Match, "match", "", "show only studios whose name fuzzy-matches the query")

	return cmd
}

func newStudiosCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StudioOptions{}

	cmd := &cobra.Command{
		Use:   "create --name NAME",
		Short: "Create a studio (status draft)",
		Args:  cobra.NoArgs,
		RunE: rootOpts.run(func(ctx context.Context, c *Cli, _ []string) error {
			res, err := c.engine.Studios.Create(ctx, opts.FirmID, opts.Input)
			if err != nil {
				return err
			}
			return c.printStudio("Created", res)
		}),
	}

	addFirmFlag(cmd, opts)
	addInputFlags(cmd, opts)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newStudiosUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StudioOptions{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change studio fields",
		Args:  cobra.ExactArgs(1),
		RunE: rootOpts.run(func(ctx context.Context, c *Cli, args []string) error {
			if opts.Input == (models.StudioInput{}) {
				return errors.New("nothing to update: set --name, --location or --description")
			}
			res, err := c.engine.Studios.Update(ctx, opts.FirmID, args[0], opts.Input)
			if err != nil {
				return err
			}
			return c.printStudio("Updated", res)
		}),
	}

	addFirmFlag(cmd, opts)
	addInputFlags(cmd, opts)

	return cmd
}

func newStudiosPublishCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StudioOptions{}

	cmd := &cobra.Command{
		Use:   "publish <id>",
		Short: "Publish a studio",
		Args:  cobra.ExactArgs(1),
		RunE: rootOpts.run(func(ctx context.Context, c *Cli, args []string) error {
			res, err := c.engine.Studios.Publish(ctx, opts.FirmID, args[0])
			if err != nil {
				return err
			}
			return c.printStudio("Published", res)
		}),
	}

	addFirmFlag(cmd, opts)

	return cmd
}

func newStudiosDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StudioOptions{}

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a studio",
		Args:  cobra.ExactArgs(1),
		RunE: rootOpts.run(func(ctx context.Context, c *Cli, args []string) error {
			res, err := c.engine.Studios.Delete(ctx, opts.FirmID, args[0])
			if err != nil {
				return err
			}
			return c.out.Success(res, c.studioNotices(res.Fallback), func(w io.Writer) {
				fmt.Fprintf(w, "Deleted studio %s\n", args[0])
			})
		}),
	}

	addFirmFlag(cmd, opts)

	return cmd
}

func (c *Cli) runStudiosList(ctx context.Context, opts *StudioOptions) error {
	list, err := c.engine.Studios.List(ctx, opts.FirmID)
	if err != nil {
		return err
	}
	if opts.Match != "" {
		list.Studios = matchStudios(list.Studios, opts.Match)
	}

	var notices []string
	if list.Fallback {
		notices = []string{NoticeOffline}
		if c.engine.Studios.Degraded() {
			notices = []string{NoticeStudiosLocal}
		}
	}

	return c.out.Success(list, notices, func(w io.Writer) {
		if len(list.Studios) == 0 {
			fmt.Fprintln(w, "No studios")
			return
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSTATUS\tNAME\tLOCATION")
		for _, s := range list.Studios {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Status, s.Name, s.Location)
		}
		_ = tw.Flush()
	})
}

func (c *Cli) printStudio(verb string, res *sync.StudioResult) error {
	return c.out.Success(res, c.studioNotices(res.Fallback), func(w io.Writer) {
		s := res.Studio
		fmt.Fprintf(w, "%s studio %s (%s)\n", verb, s.ID, s.Status)
		fmt.Fprintf(w, "  name: %s\n", s.Name)
		if s.Location != "" {
			fmt.Fprintf(w, "  location: %s\n", s.Location)
		}
		if s.Description != "" {
			fmt.Fprintf(w, "  description: %s\n", s.Description)
		}
	})
}

func (c *Cli) studioNotices(fallback bool) []string {
	if !fallback {
		return nil
	}
	if c.engine.Studios.Degraded() {
		return []string{NoticeStudiosLocal, NoticeDraftSaved}
	}
	return []string{NoticeDraftSaved}
}

// matchStudios оставляет студии, чье имя нечетко совпадает с запросом,
// лучшие совпадения первыми
func matchStudios(studios []models.Studio, query string) []models.Studio {
	names := make([]string, len(studios))
	for i, s := range studios {
		names[i] = s.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(strings.TrimSpace(query), names)
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Distance < ranks[j].Distance
	})

	matched := make([]models.Studio, 0, len(ranks))
	for _, r := range ranks {
		matched = append(matched, studios[r.OriginalIndex])
	}
	return matched
}
