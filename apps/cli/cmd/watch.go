package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/MehmetMelik/steq/packages/output"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchDebounceDelay is the debounce delay for file watch events
const WatchDebounceDelay = 300 * time.Millisecond

// watchFiles calls render whenever one of files is written, until the
// process is interrupted. Editors often write a file several times in a row,
// so events are debounced. Directories are watched rather than the files
// themselves because many editors replace files on save.
func watchFiles(console *output.ConsoleFormatter, files []string, render func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, file := range files {
		if file == "" || file == "-" {
			continue
		}
		abs, err := filepath.Abs(file)
		if err != nil {
			return err
		}
		watched[abs] = true
		dir := filepath.Dir(abs)
		if !dirs[dir] {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			dirs[dir] = true
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	console.FormatNotice("Watching for changes... (press Ctrl+C to stop)")

	// The timer callback runs on its own goroutine; renders are funneled
	// back through this channel so they never overlap.
	fire := make(chan string, 1)
	var debounceTimer *time.Timer

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !watched[name] {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
				select {
				case fire <- name:
				default:
				}
			})

		case name := <-fire:
			logger.Debug("file changed", zap.String("path", name))
			console.FormatNotice(fmt.Sprintf("File changed: %s", name))
			if err := render(); err != nil {
				console.FormatError(err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			console.FormatError(fmt.Errorf("watcher error: %w", err))

		case <-sigCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil
		}
	}
}
