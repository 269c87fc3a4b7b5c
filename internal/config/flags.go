package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagLenient    = flag.Bool("lenient", false, "Skip malformed lines instead of failing")
	flagNoQuads    = flag.Bool("no-quads", false, "Reject 4-corner faces")
	flagSingleMesh = flag.Bool("single-mesh", false, "Merge all material segments into one mesh")
	flagTangents   = flag.String("tangents", "", "Tangent policy: accumulate or overwrite")
	flagLogFile    = flag.String("log-file", "", "Also write logs to this file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments left after ParseFlags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagLenient {
		cfg.Import.Lenient = true
	}
	if *flagNoQuads {
		cfg.Import.Quads = false
	}
	if *flagSingleMesh {
		cfg.Import.GroupByMaterial = false
	}
	if *flagTangents != "" {
		cfg.Import.Tangents = *flagTangents
	}
}
