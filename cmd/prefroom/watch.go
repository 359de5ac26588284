package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// settle is how long the watcher waits for a burst of file events to end
// before regenerating.
const settle = 200 * time.Millisecond

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [schema files...]",
		Short: "Regenerate whenever a schema file changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				a.v.Set(cfgKeySchema, args)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watch(ctx, a.v, a.log)
		},
	}
	addGenFlags(cmd)
	return cmd
}

// watch generates once and then again after every change of a schema file,
// until ctx is done. Generation failures are logged and do not stop it.
func watch(ctx context.Context, v *viper.Viper, log *zap.Logger) error {
	files, err := schemaFiles(v)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	// Directories are watched instead of files, since editors often replace
	// a file on save.
	watched := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		watched[abs] = true
		if dir := filepath.Dir(abs); !dirs[dir] {
			if err := w.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
			dirs[dir] = true
		}
	}

	run := func() {
		if err := generate(ctx, v, log); err != nil {
			log.Error("generation failed", zap.Error(err))
		}
	}
	run()
	log.Info("watching schema files", zap.Strings("schema", files))

	timer := time.NewTimer(settle)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(ev.Name)] || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			log.Debug("schema changed", zap.String("file", ev.Name), zap.Stringer("op", ev.Op))
			timer.Reset(settle)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", zap.Error(err))
		case <-timer.C:
			run()
		}
	}
}
