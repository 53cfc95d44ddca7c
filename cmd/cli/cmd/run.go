package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/skylane/uav-simulations/pkg/config"
	"github.com/skylane/uav-simulations/pkg/logger"
	"github.com/skylane/uav-simulations/pkg/simulation"
	"github.com/skylane/uav-simulations/pkg/store"
	"github.com/skylane/uav-simulations/pkg/utils"

	// Import simulations to register them
	_ "github.com/skylane/uav-simulations/cmd/zone-patrol"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation",
	Long:  `Run a simulation interactively or with specified parameters`,
	RunE:  runSimulation,
}

func init() {
	runCmd.Flags().StringP("simulation", "s", "", "simulation name to run")
}

func runSimulation(cmd *cobra.Command, _ []string) error {
	airspace, err := config.LoadConfigOrDefault(airspaceFile)
	if err != nil {
		return fmt.Errorf("failed to load airspace config: %w", err)
	}

	uavStore, err := openStore(airspace)
	if err != nil {
		return fmt.Errorf("failed to open UAV store: %w", err)
	}
	defer func() { _ = uavStore.Close() }()

	simName, err := selectSimulation(cmd)
	if err != nil {
		return fmt.Errorf("failed to select simulation: %w", err)
	}

	sim, err := simulation.DefaultRegistry.Get(simName)
	if err != nil {
		return fmt.Errorf("failed to get simulation: %w", err)
	}

	simInfos, err := utils.DiscoverSimulations()
	if err != nil {
		return fmt.Errorf("failed to discover simulations: %w", err)
	}

	var simConfig *simulation.SimulationConfig
	for _, info := range simInfos {
		if info.Config.Name == simName {
			simConfig = &info.Config
			break
		}
	}

	if simConfig == nil {
		return fmt.Errorf("simulation configuration not found for %s", simName)
	}

	params, err := utils.PromptForParameters(simConfig.Parameters)
	if err != nil {
		return fmt.Errorf("failed to get parameters: %w", err)
	}

	// The --airspace flag wins when the prompt left the path blank, so
	// the simulation ticks the same zone set the store was opened with.
	if airspaceFile != "" {
		if v, ok := params["airspace_config"]; !ok || v == "" {
			params["airspace_config"] = airspaceFile
		}
	}

	if err := sim.Configure(params); err != nil {
		return fmt.Errorf("failed to configure simulation: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Warn("\nReceived interrupt signal, stopping simulation...")
		err := sim.Stop()
		if err != nil {
			logger.Errorf("Failed to stop simulation: %v", err)
			return
		}
		cancel()
	}()

	logger.LogSection(fmt.Sprintf("Starting %s", sim.Name()))
	if err := sim.Run(ctx, uavStore); err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	logger.Success("Simulation completed successfully")
	return nil
}

// openStore picks the durable SQLite store when a database path is
// configured (flag wins over config) and the in-memory store otherwise.
func openStore(airspace *config.AirspaceConfig) (store.Store, error) {
	path := airspace.DatabasePath
	if dbPath != "" {
		path = dbPath
	}

	if path == "" {
		logger.Info("Using in-memory UAV store")
		return store.NewMemoryStore(airspace.ZoneList()), nil
	}

	logger.Progressf("Opening UAV database at %s...", path)
	s, err := store.OpenSQLite(path, airspace.ZoneList())
	if err != nil {
		return nil, err
	}
	logger.Success("UAV database ready")
	return s, nil
}

func selectSimulation(cmd *cobra.Command) (string, error) {
	// Check if simulation is specified via flag
	simName, _ := cmd.Flags().GetString("simulation")
	if simName != "" {
		return simName, nil
	}

	simInfos, err := utils.DiscoverSimulations()
	if err != nil {
		return "", err
	}

	if len(simInfos) == 0 {
		return "", fmt.Errorf("no simulations found")
	}

	options := make([]string, len(simInfos))
	descriptions := make(map[string]string)

	for i, info := range simInfos {
		options[i] = info.Config.Name
		descriptions[info.Config.Name] = info.Config.Description
	}

	var selected string
	prompt := &survey.Select{
		Message: "Select simulation:",
		Options: options,
		Description: func(value string, index int) string {
			return descriptions[value]
		},
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}

	return selected, nil
}
