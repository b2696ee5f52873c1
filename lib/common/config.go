package common

import (
	"fmt"
	"strings"
)

// Config holds the configuration of a tKV process
type Config struct {
	// Logging configuration
	LogLevel string

	// number of shards of the maple db (0 = NumCPU)
	Shards int

	// Shell settings
	Prompt     string
	Input      string // file to read commands from ("" = stdin)
	MetricsOut string // file to write store metrics to on exit ("" = disabled, "-" = stderr)

	// ConfigFile is the config file used (if any)
	ConfigFile string
}

// String returns a formatted string representation of the configuration
func (c *Config) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	orDefault := func(value, def string) string {
		if value == "" {
			return def
		}
		return value
	}

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	addSection("Database")
	shards := "auto"
	if c.Shards > 0 {
		shards = fmt.Sprintf("%d", c.Shards)
	}
	addField("Engine", "maple")
	addField("Shards", shards)

	addSection("Shell")
	addField("Prompt", fmt.Sprintf("%q", c.Prompt))
	addField("Input", orDefault(c.Input, "stdin"))
	addField("Metrics Output", orDefault(c.MetricsOut, "disabled"))

	addSection("Config")
	addField("Config File", orDefault(c.ConfigFile, "none"))

	return sb.String()
}
