package util

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/ValentinKolb/tKV/lib/common"
	"github.com/ValentinKolb/tKV/lib/db"
	"github.com/ValentinKolb/tKV/lib/db/engines/maple"
	"github.com/ValentinKolb/tKV/lib/store"
	"github.com/ValentinKolb/tKV/lib/store/lstore"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupGlobalFlags adds the flags shared by all commands
func SetupGlobalFlags(cmd *cobra.Command) {
	key := "log-level"
	cmd.PersistentFlags().String(key, "warn", WrapString("LogLevel is the level at which logs will be written to stderr (debug, info, warn, error)"))

	key = "db-shards"
	cmd.PersistentFlags().Int(key, runtime.NumCPU(), WrapString("Number of shards of the in-memory database (defaults to the number of CPUs)"))

	key = "config"
	cmd.PersistentFlags().String(key, "", WrapString("Optional path to a config file (yaml, json or toml). Flags and environment variables take precedence"))
}

// InitConfig loads env files and configures viper to read environment variables.
// The format of the environment variables is TKV_<flag> (e.g. TKV_LOG_LEVEL=debug)
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("tkv")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// Setup binds the flags of cmd to viper, reads the optional config file and initializes the loggers.
// It is used as PersistentPreRunE of the root command.
func Setup(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if path := viper.GetString("config"); path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("could not read config file %s: %w", path, err)
		}
	}

	return common.InitLoggers(GetConfig())
}

// GetConfig reads the configuration from viper
func GetConfig() *common.Config {
	return &common.Config{
		LogLevel:   viper.GetString("log-level"),
		Shards:     viper.GetInt("db-shards"),
		Prompt:     viper.GetString("prompt"),
		Input:      viper.GetString("input"),
		MetricsOut: viper.GetString("metrics-out"),
		ConfigFile: viper.ConfigFileUsed(),
	}
}

// NewStore creates a local store backed by a maple db configured by conf
func NewStore(conf *common.Config) store.IStore {
	return lstore.NewLocalStore(func() db.KVDB {
		return maple.NewMapleDB(&maple.DBOptions{NumShards: conf.Shards})
	})
}
