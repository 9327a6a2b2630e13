package cmd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var serverPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the rendered site locally and rebuild on changes",
	Long: `The serve command performs an initial build, then starts a local web
server over the output directory. It watches the source and static
directories (and the configuration file) and rebuilds the site when
anything changes. Rebuild failures are logged; the server keeps serving
the last successful build.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runBuild(); err != nil {
			return err
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %w", err)
		}
		defer watcher.Close()

		go watchLoop(watcher)

		for _, root := range []string{appConfig.SourceDir, appConfig.StaticDir} {
			if err := watchTree(watcher, root); err != nil {
				logger.Error("unable to watch directory", "path", root, "error", err)
			}
		}
		// Watch the config file itself; edits to it change every page.
		if err := watcher.Add(appConfig.ConfigFile); err != nil {
			logger.Error("unable to watch config file", "path", appConfig.ConfigFile, "error", err)
		}

		addr := fmt.Sprintf(":%d", serverPort)
		logger.Info("serving site", "dir", appConfig.OutputDir, "addr", "http://localhost"+addr)

		fileServer := http.FileServer(http.Dir(appConfig.OutputDir))
		http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			// No caching while developing locally.
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			fileServer.ServeHTTP(w, r)
		})

		return http.ListenAndServe(addr, nil)
	},
}

// watchLoop debounces filesystem events and triggers rebuilds.
func watchLoop(watcher *fsnotify.Watcher) {
	const debounce = 500 * time.Millisecond
	var rebuild *time.Timer

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("change detected", "path", event.Name, "op", event.Op.String())

			// New subdirectories aren't watched automatically.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						logger.Error("unable to watch new directory", "path", event.Name, "error", err)
					}
				}
			}

			if rebuild != nil {
				rebuild.Stop()
			}
			rebuild = time.AfterFunc(debounce, func() {
				logger.Info("rebuilding site")
				if err := runBuild(); err != nil {
					logger.Error("rebuild failed", "error", err)
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Error("watcher error", "error", err)
		}
	}
}

// watchTree adds root and all of its subdirectories to the watcher.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}
