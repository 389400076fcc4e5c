package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"imgsieve/internal/config"
	"imgsieve/internal/storage"
)

func historyCmd() *cobra.Command {
	var (
		limit    int
		sessions bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent classification history",
		Long: `History lists recent classify and undo events from the audit log kept
during sorting sessions (enable it with --history-db or history.db_path).
The log is write-only for the sorter itself: the file system remains the
single source of truth for labels.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, limit, sessions)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 25, "number of entries to show")
	cmd.Flags().BoolVar(&sessions, "sessions", false, "list session IDs instead of entries")
	cmd.Flags().String("history-db", "", "classification history database")

	return cmd
}

func runHistory(cmd *cobra.Command, limit int, sessions bool) error {
	// The sort command binds history.db_path to its own flag, so read this
	// command's flag directly rather than binding the same key twice.
	dbPath, _ := cmd.Flags().GetString("history-db")
	if dbPath == "" {
		dbPath = viper.GetString("history.db_path")
	}
	dbPath = config.ExpandPath(dbPath)
	if dbPath == "" {
		dbPath = config.DefaultHistoryPath()
	}
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("no history database at %s (sort with --history-db first)", dbPath)
	}

	h, err := storage.NewSQLiteHistory(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = h.Close() }()

	if sessions {
		ids, sessErr := h.Sessions(cmd.Context())
		if sessErr != nil {
			return sessErr
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	}

	entries, err := h.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("History is empty")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"When", "Action", "Image", "Label", "Session"})
	for _, e := range entries {
		t.AppendRow(table.Row{
			e.RecordedAt.Format("2006-01-02 15:04:05"),
			string(e.Action),
			e.Image,
			e.Label,
			shortID(e.SessionID),
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}

// shortID trims a UUID to its first group for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
