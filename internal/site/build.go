package site

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Pipeline runs one full build: load config, wipe and recreate the output
// directory, parse all templates, render each page, copy static assets.
type Pipeline struct {
	SourceDir  string
	StaticDir  string
	OutputDir  string
	ConfigFile string

	Logger *slog.Logger
}

// Run executes the pipeline. The returned error is always fatal: recoverable
// per-page failures are logged and the loop moves on, so a page that fails
// to render is simply absent from the output tree.
func (p *Pipeline) Run() error {
	start := time.Now()

	base, err := LoadConfig(p.ConfigFile)
	if err != nil {
		return p.dispatch(err)
	}

	if _, err := os.ReadDir(p.SourceDir); err != nil {
		return p.dispatch(fatal(p.SourceDir, "unable to read input directory", err))
	}

	// Wipe the previous run's output so stale files never survive.
	if err := os.RemoveAll(p.OutputDir); err != nil {
		return p.dispatch(fatal(p.OutputDir, "unable to clear output directory", err))
	}
	if err := os.MkdirAll(p.OutputDir, 0o755); err != nil {
		return p.dispatch(fatal(p.OutputDir, "unable to create output directory", err))
	}

	reg, err := LoadTemplates(p.SourceDir)
	if err != nil {
		return p.dispatch(err)
	}

	for _, name := range reg.Pages() {
		if err := p.renderPage(reg, base, name); err != nil {
			if err = p.dispatch(err); err != nil {
				return err
			}
		}
	}

	if err := copyContents(p.StaticDir, p.OutputDir); err != nil {
		return p.dispatch(fatal(p.StaticDir, "unable to copy static files to output", err))
	}

	fmt.Printf("Finished. (%s)\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// renderPage builds the page's context snapshot, expands its template, and
// writes the result under the output directory.
func (p *Pipeline) renderPage(reg *Registry, base Context, name string) error {
	log := p.Logger.With("template", name)

	ctx, err := pageContext(base, p.SourceDir, name)
	if err != nil {
		// Content errors don't stop the render; the snapshot simply has
		// no content key.
		p.logError(log, err)
	}

	rendered, err := reg.Render(name, ctx)
	if err != nil {
		return recoverable(name, "error rendering template", err)
	}

	outPath := filepath.Join(p.OutputDir, filepath.FromSlash(name)+".html")
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return recoverable(outPath, "unable to create output subdirectory", err)
	}
	if err := os.WriteFile(outPath, rendered, 0o644); err != nil {
		return recoverable(outPath, "error writing to output file", err)
	}

	log.Info("rendered", "path", outPath)
	return nil
}

// dispatch is the single decision point for pipeline failures: recoverable
// errors are logged and swallowed, fatal ones are logged and returned to
// abort the run.
func (p *Pipeline) dispatch(err error) error {
	p.logError(p.Logger, err)
	if IsFatal(err) {
		return err
	}
	return nil
}

func (p *Pipeline) logError(log *slog.Logger, err error) {
	var se *Error
	if errors.As(err, &se) {
		log.Error(se.Msg, "path", se.Path, "error", se.Err)
		return
	}
	log.Error("build error", "error", err)
}
