package config

// Config holds the resolved CLI settings for a run. Values come from flags,
// with TINYTEMPLE_-prefixed environment variables as overrides.
type Config struct {
	SourceDir  string `mapstructure:"source"`
	StaticDir  string `mapstructure:"static"`
	OutputDir  string `mapstructure:"out"`
	ConfigFile string `mapstructure:"config"`
	Verbose    bool   `mapstructure:"verbose"`
}
