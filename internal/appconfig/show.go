package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config, fallback Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}
	if cfg == nil {
		cfg = &fallback
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Source:              %s\n", cfg.Source)
	if cfg.Source == SourceHub {
		fmt.Fprintf(out, "  Hub URL:             %s\n", cfg.HubURL)
		fmt.Fprintf(out, "  Hub Token:           %s\n", cfg.MaskedToken())
		fmt.Fprintf(out, "  Requests Per Second: %g\n", cfg.RequestsPerSecond)
		fmt.Fprintf(out, "  Page Size:           %d\n", cfg.PageSize)
		fmt.Fprintf(out, "  Timeout:             %s\n", cfg.RequestTimeout())
	} else {
		fmt.Fprintf(out, "  Data Dir:            %s\n", cfg.DataDir)
	}
	fmt.Fprintf(out, "  Seed:                %d\n", cfg.Seed)
	fmt.Fprintf(out, "  Debug:               %v\n", cfg.Debug)
	fmt.Fprintf(out, "  JSON Mode:           %v\n", cfg.JSONMode)
	fmt.Fprintf(out, "  Log File:            %s\n", cfg.LogFilePath())
	if cfg.ExportPath != "" {
		fmt.Fprintf(out, "  Export:              %s\n", cfg.ExportPath)
	}
	if cfg.ExportMarkdownPath != "" {
		fmt.Fprintf(out, "  Export Markdown:     %s\n", cfg.ExportMarkdownPath)
	}
}
