package zonepatrol

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/skylane/uav-simulations/cmd/zone-patrol/reporting"
	"github.com/skylane/uav-simulations/pkg/config"
	"github.com/skylane/uav-simulations/pkg/engine"
	"github.com/skylane/uav-simulations/pkg/logger"
	"github.com/skylane/uav-simulations/pkg/models"
	"github.com/skylane/uav-simulations/pkg/simulation"
	"github.com/skylane/uav-simulations/pkg/store"
)

// ZonePatrolSimulation runs UAV populations around their zone anchors,
// ticking each zone through the engine and occasionally dispatching a
// UAV to another zone.
type ZonePatrolSimulation struct {
	config   *Config
	mu       sync.Mutex
	stopChan chan struct{}
}

// NewZonePatrolSimulation creates a new instance of the zone patrol simulation
func NewZonePatrolSimulation() simulation.Simulation {
	return &ZonePatrolSimulation{
		stopChan: make(chan struct{}),
	}
}

// Name returns the simulation name
func (s *ZonePatrolSimulation) Name() string {
	return "UAV Zone Patrol"
}

// Description returns the simulation description
func (s *ZonePatrolSimulation) Description() string {
	return "Simulates UAV populations loitering in zones with collision avoidance and inter-zone transfers"
}

// Configure sets up the simulation with provided parameters
func (s *ZonePatrolSimulation) Configure(params map[string]interface{}) error {
	config, err := ValidateAndParse(params)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	s.config = config
	return nil
}

// Run executes the simulation
func (s *ZonePatrolSimulation) Run(ctx context.Context, uavStore store.Store) error {
	airspace, err := config.LoadConfigOrDefault(s.config.AirspaceConfig)
	if err != nil {
		return fmt.Errorf("failed to load airspace config: %w", err)
	}
	if s.config.Strategy != "" {
		airspace.Strategy = s.config.Strategy
	}

	eng, err := airspace.NewEngine()
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}

	seed := int64(s.config.Seed)
	if seed == 0 {
		seed = airspace.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	zones := airspace.ZoneList()
	logger.Infof("Starting %s: %d UAVs per zone across %d zones, seed %d",
		s.Name(), s.config.NumUAVs, len(zones), seed)

	if err := s.seedZones(ctx, uavStore, zones, airspace.Engine, rng); err != nil {
		return fmt.Errorf("failed to seed zones: %w", err)
	}

	runLog := reporting.NewRunLogger(airspace.Strategy)

	ticker := time.NewTicker(s.config.TickInterval)
	defer ticker.Stop()

	timeout := time.After(s.config.Duration)

	tick := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopChan:
			logger.Info("Simulation stopped by user")
			s.printFinalReport(ctx, uavStore, zones, runLog)
			return nil
		case <-timeout:
			logger.Infof("Simulation completed after %s", s.config.Duration)
			s.printFinalReport(ctx, uavStore, zones, runLog)
			return nil
		case <-ticker.C:
			tick++
			if err := s.runTick(ctx, uavStore, eng, zones, rng, runLog, tick); err != nil {
				logger.Errorf("Tick %d failed: %v", tick, err)
			}
		}
	}
}

// Stop gracefully shuts down the simulation
func (s *ZonePatrolSimulation) Stop() error {
	close(s.stopChan)
	return nil
}

// seedZones populates each zone with UAVs scattered around its anchor.
func (s *ZonePatrolSimulation) seedZones(ctx context.Context, uavStore store.Store, zones []models.Zone, cfg engine.Config, rng *rand.Rand) error {
	id := 1
	for _, zone := range zones {
		for i := 0; i < s.config.NumUAVs; i++ {
			x, y := cfg.BBox.Clamp(
				zone.AnchorX+(rng.Float64()*2-1)*2.0,
				zone.AnchorY+(rng.Float64()*2-1)*2.0,
			)
			u := models.UAV{
				ID:       id,
				Zone:     zone.Name,
				X:        x,
				Y:        y,
				Altitude: 50 + rng.Float64()*100,
				Speed:    5 + rng.Float64()*20,
				Heading:  (rng.Float64()*2 - 1) * math.Pi,
				State:    models.StateNormal,
			}
			if err := uavStore.UpsertUAV(ctx, u); err != nil {
				return fmt.Errorf("failed to create UAV %d: %w", id, err)
			}
			id++
		}
		logger.Progressf("Seeded %d UAVs in %s", s.config.NumUAVs, zone.Name)
	}
	return nil
}

// runTick processes every zone once and maybe dispatches a transfer.
func (s *ZonePatrolSimulation) runTick(ctx context.Context, uavStore store.Store, eng *engine.Engine, zones []models.Zone, rng *rand.Rand, runLog *reporting.RunLogger, tick int) error {
	for _, zone := range zones {
		uavs, err := uavStore.ListUAVs(ctx, zone.Name, "")
		if err != nil {
			return fmt.Errorf("list %s: %w", zone.Name, err)
		}

		updated, summary, err := eng.ProcessZone(zone.Name, uavs, rng)
		if err != nil {
			return fmt.Errorf("process %s: %w", zone.Name, err)
		}

		if err := uavStore.SaveZone(ctx, updated); err != nil {
			return fmt.Errorf("save %s: %w", zone.Name, err)
		}

		runLog.LogTick(tick, summary)

		if len(zones) > 1 && rng.Float64() < s.config.TransferProbability {
			s.dispatchTransfer(ctx, uavStore, zone, zones, updated, rng, runLog)
		}
	}
	return nil
}

// dispatchTransfer picks a random normal-state UAV in the zone and
// sends it to a random other zone. Losing the race against a
// concurrent state change is harmless, so failures are only logged.
func (s *ZonePatrolSimulation) dispatchTransfer(ctx context.Context, uavStore store.Store, zone models.Zone, zones []models.Zone, uavs []models.UAV, rng *rand.Rand, runLog *reporting.RunLogger) {
	candidates := make([]int, 0, len(uavs))
	for _, u := range uavs {
		if u.Zone == zone.Name && u.State == models.StateNormal {
			candidates = append(candidates, u.ID)
		}
	}
	if len(candidates) == 0 {
		return
	}

	id := candidates[rng.Intn(len(candidates))]

	target := zones[rng.Intn(len(zones))]
	for target.Name == zone.Name {
		target = zones[rng.Intn(len(zones))]
	}

	if err := uavStore.RequestTransfer(ctx, id, zone.Name, target.Name); err != nil {
		logger.Warnf("Transfer request for UAV %d failed: %v", id, err)
		return
	}
	runLog.LogTransferRequest(id, zone.Name, target.Name)
}

// printFinalReport prints the run summary with current zone populations.
func (s *ZonePatrolSimulation) printFinalReport(ctx context.Context, uavStore store.Store, zones []models.Zone, runLog *reporting.RunLogger) {
	counts := make(map[string]int, len(zones))
	for _, zone := range zones {
		n, err := uavStore.CountUAVs(ctx, zone.Name)
		if err != nil {
			logger.Warnf("Failed to count UAVs in %s: %v", zone.Name, err)
			continue
		}
		counts[zone.Name] = n
	}
	runLog.PrintSummary(counts)
}

// init registers the simulation
func init() {
	err := simulation.DefaultRegistry.Register("UAV Zone Patrol", NewZonePatrolSimulation)
	if err != nil {
		logger.Errorf("Failed to register simulation: %v", err)
		return
	}
}
