package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// newWatchCmd creates the "watch" subcommand for auto-rebuilding on file changes.
func newWatchCmd() *cobra.Command {
	var (
		debounce     time.Duration
		outputFile   string
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Auto-rebuild on cfnlite file changes",
		Long: `Watch monitors a cfnlite file and recompiles it on every change.

Rapid successive changes are debounced so editors that write in bursts only
trigger one rebuild.

Examples:
    cfnlite watch stack.yaml
    cfnlite watch stack.yaml -o template.yaml
    cfnlite watch stack.yaml --debounce 1s`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(args[0], watchOptions{
				debounce:     debounce,
				outputFile:   outputFile,
				outputFormat: outputFormat,
			})
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Debounce duration for rapid changes")
	cmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "File to write the template to (default: stdout)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "yaml", "Output format: json or yaml")

	return cmd
}

type watchOptions struct {
	debounce     time.Duration
	outputFile   string
	outputFormat string
}

// runWatch monitors the cfnlite file and rebuilds on changes.
func runWatch(path string, opts watchOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	// Watch the directory rather than the file itself: editors that save via
	// rename-and-replace would otherwise drop the watch after the first save.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	fmt.Printf("Watching: %s\n", path)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	fmt.Println("Running initial build...")
	rebuild(path, opts)

	var debounceTimer *time.Timer
	rebuildChan := make(chan struct{}, 1)

	fmt.Println("\nWatching for changes... (Ctrl+C to stop)")

	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			name, err := filepath.Abs(event.Name)
			if err != nil || name != target {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			// Debounce: reset timer on each change
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(opts.debounce, func() {
				select {
				case rebuildChan <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)

		case <-rebuildChan:
			fmt.Printf("\nChange detected at %s, rebuilding...\n",
				time.Now().Format("15:04:05"))
			rebuild(path, opts)

		case <-sigChan:
			fmt.Println("\nStopping watch...")
			return nil
		}
	}
}

// rebuild runs one compile/emit cycle; failures are reported but never stop
// the watch.
func rebuild(path string, opts watchOptions) {
	dryRun := opts.outputFile == ""
	if err := runBuild(path, dryRun, opts.outputFile, opts.outputFormat); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return
	}
	if opts.outputFile != "" {
		fmt.Printf("Wrote %s\n", opts.outputFile)
	}
}
