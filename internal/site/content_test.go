package site

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestPageContextNoMarkdown(t *testing.T) {
	dir := t.TempDir()
	base := Context{"title": "Hi"}

	ctx, err := pageContext(base, dir, "index")
	if err != nil {
		t.Fatalf("pageContext: %v", err)
	}

	if _, ok := ctx["content"]; ok {
		t.Error("content key present for a template with no Markdown file")
	}
	if ctx["title"] != "Hi" {
		t.Errorf("title = %#v, want config value", ctx["title"])
	}
}

func TestPageContextMarkdown(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "page.md"), "# Title\n\nsome *body* text\n")

	ctx, err := pageContext(Context{}, dir, "page")
	if err != nil {
		t.Fatalf("pageContext: %v", err)
	}

	html, ok := ctx["content"].(string)
	if !ok {
		t.Fatalf("content = %#v, want string", ctx["content"])
	}
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "Title</h1>") {
		t.Errorf("content = %q, want an <h1> heading", html)
	}
	if !strings.Contains(html, "<em>body</em>") {
		t.Errorf("content = %q, want emphasis converted", html)
	}
}

func TestPageContextNestedName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "posts", "one.md"), "hello")

	ctx, err := pageContext(Context{}, dir, "posts/one")
	if err != nil {
		t.Fatalf("pageContext: %v", err)
	}
	if _, ok := ctx["content"]; !ok {
		t.Error("content file in a subdirectory was not resolved")
	}
}

func TestPageContextRawHTMLPassthrough(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "page.md"), `<div class="raw">kept</div>`)

	ctx, err := pageContext(Context{}, dir, "page")
	if err != nil {
		t.Fatalf("pageContext: %v", err)
	}

	html := ctx["content"].(string)
	if !strings.Contains(html, `<div class="raw">kept</div>`) {
		t.Errorf("content = %q, raw HTML must not be escaped", html)
	}
}

func TestPageContextGFMTable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "page.md"), "| a | b |\n| - | - |\n| 1 | 2 |\n")

	ctx, err := pageContext(Context{}, dir, "page")
	if err != nil {
		t.Fatalf("pageContext: %v", err)
	}
	if html := ctx["content"].(string); !strings.Contains(html, "<table>") {
		t.Errorf("content = %q, want a rendered table", html)
	}
}

func TestPageContextFrontmatterYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "page.md"), "---\nauthor: bob\n---\n*hi*\n")

	ctx, err := pageContext(Context{"title": "Hi"}, dir, "page")
	if err != nil {
		t.Fatalf("pageContext: %v", err)
	}

	if ctx["author"] != "bob" {
		t.Errorf("author = %#v, want frontmatter value", ctx["author"])
	}
	html := ctx["content"].(string)
	if !strings.Contains(html, "<em>hi</em>") {
		t.Errorf("content = %q, want body without the frontmatter fence", html)
	}
	if strings.Contains(html, "author") {
		t.Errorf("content = %q, frontmatter leaked into the body", html)
	}
}

func TestPageContextFrontmatterTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "page.md"), "+++\nauthor = \"bob\"\n+++\nbody\n")

	ctx, err := pageContext(Context{}, dir, "page")
	if err != nil {
		t.Fatalf("pageContext: %v", err)
	}
	if ctx["author"] != "bob" {
		t.Errorf("author = %#v, want frontmatter value", ctx["author"])
	}
}

func TestPageContextDoesNotMutateBase(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "page.md"), "---\nauthor: bob\n---\nbody\n")
	base := Context{"title": "Hi"}

	if _, err := pageContext(base, dir, "page"); err != nil {
		t.Fatalf("pageContext: %v", err)
	}

	if _, ok := base["content"]; ok {
		t.Error("content leaked into the base context")
	}
	if _, ok := base["author"]; ok {
		t.Error("frontmatter leaked into the base context")
	}
}
