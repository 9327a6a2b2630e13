package site

import (
	"maps"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Context is the key/value data handed to template expansion. The base
// Context comes from the TOML configuration file; each page renders against
// its own snapshot so one page's frontmatter or content can never leak into
// the next.
type Context map[string]any

// LoadConfig reads and parses the TOML configuration file into the base
// Context. All top-level entries of the file become Context entries.
// Both failure modes are fatal.
func LoadConfig(path string) (Context, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fatal(path, "unable to read config file", err)
	}

	ctx := Context{}
	if err := toml.Unmarshal(raw, &ctx); err != nil {
		return nil, fatal(path, "unable to parse config file", err)
	}
	return ctx, nil
}

// snapshot returns a shallow copy of the Context for a single page render.
func (c Context) snapshot() Context {
	return maps.Clone(c)
}
