package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"mcplab/internal/config"
	"mcplab/internal/logging"
	"mcplab/internal/mcp"
	"mcplab/internal/taskstore"
	"mcplab/internal/version"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "taskman",
		Short: "Advanced task manager MCP server",
		Long: `taskman is an MCP server exposing a small in-memory task store as
tools, resources and prompts. It demonstrates the full surface of a
tool-serving MCP server: typed tool schemas, static and templated
resources, prompt generators and transport selection.`,
		Version: version.GetVersion(),
		RunE:    runServe,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print detailed version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.GetFullVersionString())
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/taskman/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.Flags().String("transport", config.TransportStdio, "Transport to serve on (stdio, sse or http)")
	rootCmd.Flags().String("host", "0.0.0.0", "Host to bind for network transports")
	rootCmd.Flags().Int("port", 8000, "Port to bind for network transports")
	rootCmd.Flags().Bool("seed", true, "Seed the store with sample tasks on startup")
	rootCmd.Flags().String("notes-dir", "", "Directory to publish as notes:// resources")
	rootCmd.Flags().Duration("stats-interval", 0, "Interval for periodic task stats logging (0 disables)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("transport", rootCmd.Flags().Lookup("transport"))
	viper.BindPFlag("host", rootCmd.Flags().Lookup("host"))
	viper.BindPFlag("port", rootCmd.Flags().Lookup("port"))
	viper.BindPFlag("seed", rootCmd.Flags().Lookup("seed"))
	viper.BindPFlag("notes_dir", rootCmd.Flags().Lookup("notes-dir"))
	viper.BindPFlag("stats_interval", rootCmd.Flags().Lookup("stats-interval"))

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	config.SetDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if configDir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(configDir, "taskman"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("TASKMAN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

func initLogging() {
	logging.Initialize(viper.GetBool("debug"))
	logging.Debug("Debug mode enabled")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	srv := mcp.NewServer(taskstore.New(), cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start blocks until the transport stops; on ctx cancellation it
	// shuts the transport down itself.
	return srv.Start(ctx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
