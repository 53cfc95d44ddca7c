package cmd

import (
	"github.com/skylane/uav-simulations/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile      string
	airspaceFile string
	dbPath       string
	logLevel     string
	noColor      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "uav-sim",
	Short: "UAV zone simulation CLI",
	Long: `UAV Simulation CLI runs discrete-tick simulations of UAV
populations moving within and between named zones, with collision
detection, avoidance strategies, and inter-zone transfer tracking.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.uav-sim/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&airspaceFile, "airspace", "", "airspace config file (zones, engine tuning)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (default is in-memory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Add commands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	logger.SetLevel(logger.ParseLevel(logLevel))
	logger.SetNoColor(noColor)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("$HOME/.uav-sim")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in
	_ = viper.ReadInConfig()
}
