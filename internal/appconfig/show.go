// internal/appconfig/show.go
package appconfig

import (
	"fmt"
	"io"
	"sort"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	fmt.Fprintln(out, "Current configuration:")
	if cfg == nil {
		fallback := Config{}
		fmt.Fprintf(out, "  API Base URL:  (unset)\n")
		fmt.Fprintf(out, "  Debug:         %v\n", fallback.Debug)
		fmt.Fprintf(out, "  Timeout:       %s\n", fallback.RequestTimeout())
		fmt.Fprintf(out, "  Poll Interval: %s\n", fallback.PollInterval())
		fmt.Fprintf(out, "  Page Size:     %d\n", fallback.EffectivePageSize())
		return
	}

	fmt.Fprintf(out, "  API Base URL:  %s\n", cfg.APIBaseURL)
	fmt.Fprintf(out, "  Debug:         %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Timeout:       %s\n", cfg.RequestTimeout())
	fmt.Fprintf(out, "  Poll Interval: %s\n", cfg.PollInterval())
	fmt.Fprintf(out, "  Page Size:     %d\n", cfg.EffectivePageSize())
	fmt.Fprintf(out, "  Log File:      %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Prefs Path:    %s\n", cfg.PrefsFilePath())
	fmt.Fprintf(out, "  Cache Path:    %s\n", cfg.CacheFilePath())
	if cfg.DefaultSort != "" {
		fmt.Fprintf(out, "  Default Sort:  %s\n", cfg.DefaultSort)
	}
	if len(cfg.DatasetDirs) > 0 {
		fmt.Fprintln(out, "  Dataset Dirs:")
		tags := make([]string, 0, len(cfg.DatasetDirs))
		for tag := range cfg.DatasetDirs {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		for _, tag := range tags {
			fmt.Fprintf(out, "    %-12s %s\n", tag, cfg.DatasetDirs[tag])
		}
	}
}
