package config

import "flag"

// Flags holds command-line overrides. Zero values leave the config untouched.
type Flags struct {
	Config   string
	Debug    bool
	Workers  int
	ClipName string
	Format   string
	Output   string
}

// RegisterFlags binds the shared override flags to fs. Call it before
// fs.Parse and pass the result to Load.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{Workers: -1}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.IntVar(&f.Workers, "workers", -1, "Parallel conversion workers (0 = one per CPU)")
	fs.StringVar(&f.ClipName, "name", "", "Clip name (default: generated)")
	fs.StringVar(&f.Format, "format", "", "Output format: yaml or json")
	fs.StringVar(&f.Output, "o", "", "Output file (default: stdout)")
	return f
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return f.Config
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Workers >= 0 {
		cfg.Convert.Workers = f.Workers
	}
	if f.ClipName != "" {
		cfg.Convert.ClipName = f.ClipName
	}
	if f.Format != "" {
		cfg.Output.Format = f.Format
	}
	if f.Output != "" {
		cfg.Output.Path = f.Output
	}
}
