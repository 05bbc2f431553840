package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagChunkRes = flag.Int("chunk-res", -1, "Chunk resolution (0-15)")
	flagWorldRes = flag.Int("world-res", -1, "World resolution (0-15)")
	flagOut      = flag.String("out", "", "Output folder")
	flagPrefix   = flag.String("prefix", "", "Output file prefix")
	flagSeed     = flag.Uint64("seed", 0, "Color seed (0 = keep configured seed)")
	flagWorkers  = flag.Int("workers", 0, "Chunks built in parallel")
	flagFailFast = flag.Bool("fail-fast", false, "Stop at the first failed chunk")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag command-line arguments.
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
	if *flagChunkRes >= 0 {
		cfg.Generator.ChunkResolution = *flagChunkRes
	}
	if *flagWorldRes >= 0 {
		cfg.Generator.WorldResolution = *flagWorldRes
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagPrefix != "" {
		cfg.Output.Prefix = *flagPrefix
	}
	if *flagSeed != 0 {
		cfg.Generator.Seed = *flagSeed
	}
	if *flagWorkers > 0 {
		cfg.Generator.Workers = *flagWorkers
	}
	if *flagFailFast {
		cfg.Generator.FailFast = true
	}
}
