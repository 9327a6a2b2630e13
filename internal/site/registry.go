package site

import (
	"bytes"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
)

// TemplateExt is the extension identifying template files under the source
// directory.
const TemplateExt = ".tmpl"

// Registry holds the parsed template set, indexed by logical name: the
// template's path relative to the source directory, slash-separated, with
// the extension stripped. Templates whose base name starts with "_" are
// partials: parsed into the set (so pages can invoke them) but never
// rendered to an output file of their own.
type Registry struct {
	set   *template.Template
	pages []string
}

// LoadTemplates walks sourceDir and parses every template file into one
// combined set. Templates expand with no HTML escaping, so pre-rendered
// Markdown HTML in the Context is inserted verbatim. A missing variable is
// a render-time error rather than "<no value>". Any parse failure is fatal
// for the whole run.
func LoadTemplates(sourceDir string) (*Registry, error) {
	if _, err := os.ReadDir(sourceDir); err != nil {
		return nil, fatal(sourceDir, "unable to read input directory", err)
	}

	set := template.New("tinytemple").Funcs(funcMap()).Option("missingkey=error")
	var pages []string

	err := filepath.WalkDir(sourceDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), TemplateExt) {
			return nil
		}

		rel, err := filepath.Rel(sourceDir, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))

		raw, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		if _, err := set.New(name).Parse(string(raw)); err != nil {
			return err
		}

		if !strings.HasPrefix(path.Base(name), "_") {
			pages = append(pages, name)
		}
		return nil
	})
	if err != nil {
		return nil, fatal(sourceDir, "unable to parse input templates", err)
	}

	// Directory-listing order is filesystem-dependent; sort so runs are
	// reproducible.
	sort.Strings(pages)

	return &Registry{set: set, pages: pages}, nil
}

// Pages returns the logical names of all renderable templates, sorted.
func (r *Registry) Pages() []string {
	return r.pages
}

// Render expands the named template against ctx. The rendered bytes are
// buffered so a mid-render failure never leaves a partial output file.
func (r *Registry) Render(name string, ctx Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.set.ExecuteTemplate(&buf, name, map[string]any(ctx)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
