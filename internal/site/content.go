package site

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/frontmatter"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

// markdown converts content files with the common extensions enabled
// (tables, strikethrough, task lists, autolinks, footnotes, definition
// lists, smart punctuation). WithUnsafe passes raw HTML through untouched;
// the result lands in the Context pre-rendered, so templates must not
// escape it again.
var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Footnote,
		extension.DefinitionList,
		extension.Typographer,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
		parser.WithAttribute(),
	),
	goldmark.WithRendererOptions(
		gmhtml.WithUnsafe(),
	),
)

// Content files may open with a YAML (---) or TOML (+++) frontmatter fence.
var frontmatterFormats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yaml.Unmarshal),
	frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
}

// pageContext builds the render snapshot for one template: the base Context
// overlaid with the matching Markdown file's frontmatter keys and its body
// converted to HTML under the reserved "content" key. A template with no
// Markdown file gets a snapshot with no "content" key at all. Content
// failures are recoverable: the snapshot built so far is returned alongside
// the error and rendering proceeds with it.
func pageContext(base Context, sourceDir, name string) (Context, error) {
	ctx := base.snapshot()

	mdPath := filepath.Join(sourceDir, filepath.FromSlash(name)+".md")
	raw, err := os.ReadFile(mdPath)
	if errors.Is(err, fs.ErrNotExist) {
		return ctx, nil
	}
	if err != nil {
		return ctx, recoverable(mdPath, "unable to read content file", err)
	}

	meta := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(raw), &meta, frontmatterFormats...)
	if err != nil {
		// Malformed frontmatter: treat the whole file as Markdown.
		body = raw
		meta = nil
	}
	for k, v := range meta {
		ctx[k] = v
	}

	var buf bytes.Buffer
	if err := markdown.Convert(body, &buf); err != nil {
		return ctx, recoverable(mdPath, "unable to convert content file", err)
	}
	ctx["content"] = buf.String()

	return ctx, nil
}
