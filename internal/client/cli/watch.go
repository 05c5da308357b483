package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/portalsync/internal/client/broadcast"
	"github.com/iudanet/portalsync/internal/models"
)

// watchResources имена ресурсов команды watch
var watchResources = map[string]models.ResourceType{
	"associate": models.ResourceAssociateProfile,
	"firm":      models.ResourceFirmProfile,
	"vendor":    models.ResourceVendorProfile,
	"studios":   models.ResourceStudios,
	"all":       broadcast.AllResources,
}

// WatchOptions flags of the watch command
type WatchOptions struct {
	Count int
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WatchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <associate|firm|vendor|studios|all>",
		Short: "Print draft changes made by this and other portal processes",
		Long: `Print draft changes as they happen. Changes made by other processes are
seen only when a redis broadcast channel is configured (--redis).`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"associate", "firm", "vendor", "studios", "all"},
		RunE: rootOpts.run(func(ctx context.Context, c *Cli, args []string) error {
			rt, ok := watchResources[args[0]]
			if !ok {
				return fmt.Errorf("unknown resource %q", args[0])
			}
			return c.runWatch(ctx, rt, opts.Count)
		}),
	}

	cmd.Flags().IntVar(&opts.Count, "count", 0, "exit after this many events (0 watches until interrupted)")

	return cmd
}

func (c *Cli) runWatch(ctx context.Context, rt models.ResourceType, count int) error {
	events := make(chan broadcast.Event, 64)
	unsubscribe := c.engine.Drafts.Subscribe(rt, func(e broadcast.Event) {
		select {
		case events <- e:
		default:
			c.logger.Warn("watch output is behind, dropping event", "resource", e.ResourceType, "scope", e.ScopeKey)
		}
	})
	defer unsubscribe()

	// события приходят через broadcaster, профиль нужен другим процессам
	c.releaseStorage()

	c.logger.Debug("watching drafts", "resource", rt, "broadcast", c.broadcastBackend())

	seen := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case e := <-events:
			if err := c.out.Event(e, formatEvent(e)); err != nil {
				return err
			}
			seen++
			if count > 0 && seen >= count {
				return nil
			}
		}
	}
}

func formatEvent(e broadcast.Event) string {
	var b strings.Builder
	b.WriteString(e.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&b, " %s %s", e.Action, e.ResourceType)
	if e.ScopeKey != "" {
		fmt.Fprintf(&b, " [%s]", e.ScopeKey)
	}
	if e.Source != "" {
		fmt.Fprintf(&b, " (%s)", e.Source)
	}
	return b.String()
}

// NewDraftsCommand creates the drafts command.
func NewDraftsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "drafts",
		Short: "List the drafts stored in the local profile",
		Args:  cobra.NoArgs,
		RunE: rootOpts.run(func(ctx context.Context, c *Cli, _ []string) error {
			keys, err := c.storage.DraftKeys(ctx)
			if err != nil {
				return err
			}
			return c.out.Success(map[string][]string{"keys": keys}, nil, func(w io.Writer) {
				if len(keys) == 0 {
					fmt.Fprintln(w, "No local drafts")
					return
				}
				for _, k := range keys {
					fmt.Fprintln(w, k)
				}
			})
		}),
	}
}
