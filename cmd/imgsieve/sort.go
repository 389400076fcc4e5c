package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"imgsieve/internal/common"
	"imgsieve/internal/config"
	"imgsieve/internal/input"
	"imgsieve/internal/model"
	"imgsieve/internal/service"
	"imgsieve/internal/session"
	"imgsieve/internal/storage"
	"imgsieve/internal/tui"
	"imgsieve/internal/tui/themes"
)

func sortCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sort [dir]",
		Short: "Interactively sort the images in a directory",
		Long: `Sort starts an interactive session over the images directly inside the
given directory (subdirectories count as already classified and are left
alone). Tap left/up/right to file the current image under the a, skip, or b
label folder; hold a key past one second to cancel an accidental press;
down undoes the last move.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSort,
	}

	cmd.Flags().Bool("rename-on-conflict", false, "resolve filename collisions with a numeric suffix")
	cmd.Flags().String("history-db", "", "classification history database (empty disables logging)")
	_ = viper.BindPFlag("sort.rename_on_conflict", cmd.Flags().Lookup("rename-on-conflict"))
	_ = viper.BindPFlag("history.db_path", cmd.Flags().Lookup("history-db"))

	return cmd
}

func runSort(cmd *cobra.Command, args []string) error {
	var baseDirArg string
	if len(args) > 0 {
		baseDirArg = args[0]
	}

	settings, err := config.Load(baseDirArg)
	if err != nil {
		return err
	}

	keymap, err := input.FromConfig(settings.Keys)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	sessionID := uuid.NewString()

	var opts []session.Option
	history, err := openHistory(settings.HistoryDB)
	if err != nil {
		return err
	}
	if history != nil {
		defer func() { _ = history.Close() }()
		opts = append(opts, session.WithCommitHook(historyHook(ctx, history, sessionID)))
	}

	queue, err := session.NewQueue(session.Config{
		BaseDir:          settings.BaseDir,
		LabelFolders:     settings.LabelFolders,
		RenameOnConflict: settings.RenameOnConflict,
	}, opts...)
	if errors.Is(err, session.ErrEmptyDataset) {
		return fmt.Errorf("nothing to sort: %s has no jpg/jpeg/png/bmp files", settings.BaseDir)
	}
	if err != nil {
		return err
	}

	common.LogInfo("starting session", common.Fields{
		"session":  sessionID,
		"base_dir": settings.BaseDir,
		"pending":  queue.Snapshot().Remaining,
	})

	summary, err := tui.RunSession(ctx, tui.Config{
		Queue:   queue,
		Gate:    session.NewGate(queue),
		Keymap:  keymap,
		Theme:   themes.Neon,
		Folders: settings.LabelFolders,
	})
	if err != nil {
		return err
	}

	fmt.Println(summary)
	return nil
}

// openHistory opens the audit log, or returns nil when disabled.
func openHistory(dbPath string) (service.History, error) {
	if dbPath == "" {
		return nil, nil
	}
	h, err := storage.NewSQLiteHistory(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	return h, nil
}

// historyHook appends each commit to the audit log. Logging failures are
// warned about and otherwise ignored: the move already happened and the
// file system is the source of truth.
func historyHook(ctx context.Context, history service.History, sessionID string) session.CommitHook {
	return func(entry model.HistoryEntry) {
		entry.SessionID = sessionID
		if err := history.Append(ctx, &entry); err != nil {
			slog.Warn("failed to record history entry", "image", entry.Image, "error", err)
		}
	}
}
