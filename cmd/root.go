package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jsonbench/internal/banner"
	"jsonbench/internal/telemetry"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "jsonbench",
	Short: "jsonbench - JSON codec throughput benchmarks",
	Long: `
jsonbench measures how fast Go JSON libraries parse and serialize a
reproducible corpus of documents.

Typical flow:
1. jsonbench generate   write the seeded corpus to the data directory
2. jsonbench bench      time every available codec on every file
3. jsonbench history    browse recorded runs in the terminal UI`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return telemetry.InitLogger(viper.GetString(keyLogLevel), viper.GetString(keyLogFormat))
	},
}

func Execute() {
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		fmt.Println(banner.GetString())
		cmd.Usage()
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	setDefaults()

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.jsonbench.yaml)")
	pf.String("data-dir", defaultDataDir, "corpus directory")
	pf.String("results-dir", defaultResultsDir, "directory for CSV, JSON, SQLite and metrics output")
	pf.String("history", "", "run history database (default is $HOME/.jsonbench/history.db)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")

	bindFlag(pf.Lookup("data-dir"), keyDataDir)
	bindFlag(pf.Lookup("results-dir"), keyResultsDir)
	bindFlag(pf.Lookup("history"), keyHistory)
	bindFlag(pf.Lookup("log-level"), keyLogLevel)
	bindFlag(pf.Lookup("log-format"), keyLogFormat)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".jsonbench")
	}

	viper.SetEnvPrefix("JSONBENCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "path", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "❌ reading config %s: %v\n", cfgFile, err)
		os.Exit(1)
	}
}
