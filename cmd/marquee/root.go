// Root command for the marquee CLI.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stagefront/marquee/internal/logging"
	"github.com/stagefront/marquee/internal/paths"
	"github.com/stagefront/marquee/pkg/marquee"
)

// Exit codes reported to the shell.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDB        string
	flagJSON      bool
	flagLogLevel  string
	flagLogFile   string
)

// Resolved per invocation by PersistentPreRunE.
var (
	// dbPath is the datafile every subcommand operates on.
	dbPath string

	// appLog is the sink handed to the store layer.
	appLog *slog.Logger

	// logFile stays open for the life of the command when --log-file or the
	// log_file config key is set.
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "marquee",
	Short: "Marquee manages conference logistics datafiles",
	Long: `Marquee keeps conference logistics in a single SQLite datafile:
sites, rooms, people, equipment and the events that tie them together.
It creates datafiles, validates their layout, and queries, imports and
reports over their contents.`,
	Version:       marquee.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		if err := setupLogging(cfg); err != nil {
			return err
		}

		configured := flagDB
		if configured == "" {
			configured = cfg.GetString(cfgKeyDBPath)
		}
		dbPath, err = paths.ResolveDatafile(configured)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
			logFile = nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "datafile path (default: config db_path, then the data directory)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "stderr log level: debug, info, warn or error (default: config log_level, then silent)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "append debug-level logs to this file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(shellCmd)
}

// setupLogging builds appLog from flags and config. The console sink honors
// the configured level and stays silent without one; a log file captures
// debug and up regardless, so the console can stay quiet while the file
// keeps the full trace.
func setupLogging(cfg *viper.Viper) error {
	level := flagLogLevel
	if level == "" {
		level = cfg.GetString(cfgKeyLogLevel)
	}
	filePath := flagLogFile
	if filePath == "" {
		filePath = cfg.GetString(cfgKeyLogFile)
	}

	if filePath == "" {
		if level == "" {
			appLog = logging.Nop()
			return nil
		}
		lv, err := logging.ParseLevel(level)
		if err != nil {
			return err
		}
		appLog = logging.New(os.Stderr, lv)
		return nil
	}

	f, err := logging.File(filePath)
	if err != nil {
		return err
	}
	logFile = f
	fileHandler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})

	if level == "" {
		appLog = slog.New(fileHandler)
		return nil
	}
	lv, err := logging.ParseLevel(level)
	if err != nil {
		return err
	}
	appLog = slog.New(logging.Fanout(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv}),
		fileHandler,
	))
	return nil
}
