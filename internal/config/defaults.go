package config

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		Logging: Logging{
			Level: "info",
		},
		Conversion: Conversion{
			DropEmptyOutputs: false,
			DedupeBlockIDs:   true,
		},
		Index: Index{
			Path: "~/.cache/deepnote-bridge/blocks.db",
		},
		Export: Export{
			Format: "deepnote",
			OutDir: "./exports",
		},
	}
}
