package reporting

import (
	"fmt"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/skylane/uav-simulations/pkg/engine"
)

// RunLogger tracks and prints per-tick events for one simulation run
type RunLogger struct {
	runID     uuid.UUID
	strategy  string
	startTime time.Time
	mu        sync.Mutex

	ticks          int
	moved          int
	transfers      int
	arrivals       int
	rejected       int
	collisions     int
	nearCollisions int
	zoneTicks      map[string]int
}

// Color definitions
var (
	colorCollision = color.New(color.FgRed)
	colorAvoid     = color.New(color.FgYellow)
	colorTransfer  = color.New(color.FgCyan)
	colorArrival   = color.New(color.FgGreen, color.Bold)
	colorHeading   = color.New(color.FgGreen)
)

// NewRunLogger creates a logger for a new run and prints the run header
func NewRunLogger(strategy string) *RunLogger {
	rl := &RunLogger{
		runID:     uuid.New(),
		strategy:  strategy,
		startTime: time.Now(),
		zoneTicks: make(map[string]int),
	}

	fmt.Printf("[%s] Run %s started | strategy: %s\n",
		rl.startTime.Format("15:04:05"), rl.runID.String()[:8], strategy)

	return rl
}

// RunID returns the unique identifier of this run
func (rl *RunLogger) RunID() uuid.UUID {
	return rl.runID
}

// LogTick records one zone tick and prints anything noteworthy
func (rl *RunLogger) LogTick(tick int, s *engine.Summary) {
	rl.mu.Lock()
	rl.ticks++
	rl.moved += s.Moved
	rl.transfers += s.Transfers
	rl.arrivals += s.Arrivals
	rl.rejected += s.Rejected
	rl.collisions += s.Collisions
	rl.nearCollisions += s.NearCollisions
	rl.zoneTicks[s.Zone]++
	rl.mu.Unlock()

	timestamp := time.Now().Format("15:04:05.000")

	for _, p := range s.CollisionPairs {
		fmt.Printf("[%s] %s %s | UAV %d <-> UAV %d\n",
			timestamp, colorCollision.Sprint("collision"), s.Zone, p.A, p.B)
	}
	for _, p := range s.AdjustedPairs {
		fmt.Printf("[%s] %s %s | UAV %d <-> UAV %d adjusted\n",
			timestamp, colorAvoid.Sprint("avoidance"), s.Zone, p.A, p.B)
	}
	if s.Arrivals > 0 {
		fmt.Printf("[%s] %s %s | %d arrival(s) at tick %d\n",
			timestamp, colorArrival.Sprint("arrival  "), s.Zone, s.Arrivals, tick)
	}
	if s.Rejected > 0 {
		fmt.Printf("[%s] %s %s | %d record(s) rejected\n",
			timestamp, colorCollision.Sprint("rejected "), s.Zone, s.Rejected)
	}
}

// LogTransferRequest prints a dispatched transfer
func (rl *RunLogger) LogTransferRequest(id int, fromZone, toZone string) {
	fmt.Printf("[%s] %s UAV %d | %s -> %s\n",
		time.Now().Format("15:04:05.000"), colorTransfer.Sprint("transfer "), id, fromZone, toZone)
}

// PrintSummary prints a formatted end-of-run report
func (rl *RunLogger) PrintSummary(zoneCounts map[string]int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	duration := time.Since(rl.startTime).Round(time.Millisecond)

	colorHeading.Printf("\n=== Run %s summary ===\n", rl.runID.String()[:8])
	fmt.Printf("Duration: %v | Zone ticks: %d | Strategy: %s\n", duration, rl.ticks, rl.strategy)
	fmt.Printf("Moved: %d | Transfers advanced: %d | Arrivals: %d | Rejected: %d\n",
		rl.moved, rl.transfers, rl.arrivals, rl.rejected)
	fmt.Printf("Collisions reported: %d | Avoidance adjustments: %d\n",
		rl.collisions, rl.nearCollisions)

	if len(zoneCounts) > 0 {
		fmt.Println("\nFinal zone populations:")
		for zone, count := range zoneCounts {
			fmt.Printf("   %-12s: %d\n", zone, count)
		}
	}
}
