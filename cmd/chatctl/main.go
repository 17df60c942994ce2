package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Zarathale/ZaraSprite/chatlog/messages"
	"github.com/Zarathale/ZaraSprite/chatlog/sessions"
	"github.com/Zarathale/ZaraSprite/internal/ingest"
	"github.com/Zarathale/ZaraSprite/internal/storage"
	"github.com/Zarathale/ZaraSprite/internal/storage/backend"
	"github.com/spf13/cobra"
)

const defaultStorageURL = "data/chatlog.db"

// opens the configured store; replaced in tests
type StoreOpener func(ctx context.Context, location string) (storage.Store, error)

type cli struct {
	open       StoreOpener
	storageURL string
	window     time.Duration
}

func main() {
	if err := newRootCmd(backend.Open).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(open StoreOpener) *cobra.Command {
	c := &cli{open: open}

	root := &cobra.Command{
		Use:          "chatctl",
		Short:        "chatctl - inspect and maintain the ZaraSprite chat log",
		SilenceUsage: true,
	}

	storageDefault := os.Getenv("STORAGE_URL")
	if storageDefault == "" {
		storageDefault = defaultStorageURL
	}

	root.PersistentFlags().StringVar(&c.storageURL, "storage", storageDefault, "SQLite path or postgres:// URL")

	root.AddCommand(
		c.migrateCmd(),
		c.archiveCmd(),
		c.ingestCmd(),
		c.profileCmd(),
		c.sessionsCmd(),
		c.messagesCmd(),
	)

	return root
}

func (c *cli) withStore(cmd *cobra.Command, fn func(ctx context.Context, store storage.Store) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := c.open(ctx, c.storageURL)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck

	return fn(ctx, store)
}

func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the chat log schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// opening a store applies pending migrations
			return c.withStore(cmd, func(_ context.Context, _ storage.Store) error {
				fmt.Fprintf(cmd.OutOrStdout(), "schema up to date (%s)\n", backend.KindOf(c.storageURL))
				return nil
			})
		},
	}
}

func (c *cli) archiveCmd() *cobra.Command {
	var olderThan, window time.Duration

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Archive sessions that started before now minus --older-than",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if olderThan <= 0 {
				return fmt.Errorf("--older-than must be positive")
			}

			// a session must be outside every window before it can be archived
			if olderThan < window {
				return fmt.Errorf("--older-than (%s) must be at least the session window (%s)", olderThan, window)
			}

			return c.withStore(cmd, func(ctx context.Context, store storage.Store) error {
				n, err := sessions.NewArchiver(store.Sessions(), olderThan, "").RunOnce(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "archived %d session(s)\n", n)
				return nil
			})
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 24*time.Hour, "archive sessions started longer ago than this")
	cmd.Flags().DurationVar(&window, "window", ingest.DefaultSessionTimeout, "session timeout window the ingest side uses")

	return cmd
}

func (c *cli) ingestCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "ingest <username> <message>",
		Short: "Record one chat message as if it had been received over HTTP",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts := time.Now().UTC()
			if at != "" {
				parsed, err := time.Parse(time.RFC3339Nano, at)
				if err != nil {
					return fmt.Errorf("invalid --at: %w", err)
				}
				ts = parsed
			}

			return c.withStore(cmd, func(ctx context.Context, store storage.Store) error {
				coordinator := ingest.NewCoordinator(store, c.window)

				res, err := coordinator.Ingest(ctx, ingest.Event{Username: args[0], Text: args[1], Timestamp: ts})
				if err != nil {
					return err
				}

				return writeJSON(cmd.OutOrStdout(), res)
			})
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "RFC3339 event time (defaults to now)")
	cmd.Flags().DurationVar(&c.window, "window", ingest.DefaultSessionTimeout, "session timeout window")

	return cmd
}

func (c *cli) profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile <username>",
		Short: "Show a player's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(ctx context.Context, store storage.Store) error {
				profile, err := store.Profiles().Get(ctx, args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), profile)
			})
		},
	}
}

func (c *cli) sessionsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "sessions <username>",
		Short: "List a player's sessions, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(ctx context.Context, store storage.Store) error {
				list, err := store.Sessions().ListByUsername(ctx, args[0], limit)
				if err != nil {
					return err
				}
				if list == nil {
					list = []*sessions.Session{}
				}
				return writeJSON(cmd.OutOrStdout(), list)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of sessions")

	return cmd
}

func (c *cli) messagesCmd() *cobra.Command {
	var (
		since int64
		limit int
	)

	cmd := &cobra.Command{
		Use:   "messages",
		Short: "List messages recorded after --since",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withStore(cmd, func(ctx context.Context, store storage.Store) error {
				page, err := messages.RecentMessages(ctx, store.Messages(), since, limit)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), page)
			})
		},
	}

	cmd.Flags().Int64Var(&since, "since", 0, "return messages with an id greater than this")
	cmd.Flags().IntVar(&limit, "limit", messages.DefaultPageSize, "maximum number of messages")

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
