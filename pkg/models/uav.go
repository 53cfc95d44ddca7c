package models

import (
	"errors"
	"fmt"
)

// State represents the flight state of a UAV
type State string

// UAV flight states
const (
	StateNormal    State = "normal"    // unconstrained random-walk loitering
	StateAvoidance State = "avoidance" // flagged by a collision strategy this tick or a prior one
	StateTransfer  State = "transfer"  // relocating between zone anchors
)

// Sentinel errors shared by the engine and the stores
var (
	ErrUnknownZone  = errors.New("zone is not in the configured zone set")
	ErrUAVNotFound  = errors.New("uav not found in the stated zone")
	ErrMalformedUAV = errors.New("malformed uav record")
)

// Transfer tracks an in-flight relocation between two zones.
// Present if and only if the UAV's state is StateTransfer.
type Transfer struct {
	TargetZone string `yaml:"target_zone"`
	Progress   int    `yaml:"progress"` // 0..ProgressMax-1 while in flight
}

// UAV is the entity record the simulation core consumes and produces.
// IDs are stable across ticks and zones; a given ID is owned by exactly
// one zone in any snapshot.
type UAV struct {
	ID       int       `yaml:"id"`
	Zone     string    `yaml:"zone"`
	X        float64   `yaml:"x"`
	Y        float64   `yaml:"y"`
	Altitude float64   `yaml:"altitude"`
	Speed    float64   `yaml:"speed"`
	Heading  float64   `yaml:"heading"` // radians; not meaningful while transferring
	State    State     `yaml:"state"`
	Transfer *Transfer `yaml:"transfer,omitempty"`
}

// Validate checks the structural invariants of a UAV record. It rejects
// records rather than guessing defaults: a record with State == transfer
// but no transfer sub-record (or the reverse) would silently corrupt the
// state machine if patched up.
func (u *UAV) Validate() error {
	if u.ID <= 0 {
		return fmt.Errorf("%w: non-positive id %d", ErrMalformedUAV, u.ID)
	}
	if u.Zone == "" {
		return fmt.Errorf("%w: uav %d has empty zone", ErrMalformedUAV, u.ID)
	}
	if u.Speed < 0 {
		return fmt.Errorf("%w: uav %d has negative speed %g", ErrMalformedUAV, u.ID, u.Speed)
	}
	switch u.State {
	case StateNormal, StateAvoidance:
		if u.Transfer != nil {
			return fmt.Errorf("%w: uav %d has state %q with a transfer record", ErrMalformedUAV, u.ID, u.State)
		}
	case StateTransfer:
		if u.Transfer == nil {
			return fmt.Errorf("%w: uav %d is transferring without a transfer record", ErrMalformedUAV, u.ID)
		}
		if u.Transfer.TargetZone == "" {
			return fmt.Errorf("%w: uav %d transfer has empty target zone", ErrMalformedUAV, u.ID)
		}
		if u.Transfer.Progress < 0 {
			return fmt.Errorf("%w: uav %d transfer has negative progress %d", ErrMalformedUAV, u.ID, u.Transfer.Progress)
		}
	default:
		return fmt.Errorf("%w: uav %d has unknown state %q", ErrMalformedUAV, u.ID, u.State)
	}
	return nil
}

// Clone returns a deep copy. The engine works on copies so callers keep
// exclusive ownership of the slices they pass in.
func (u UAV) Clone() UAV {
	c := u
	if u.Transfer != nil {
		t := *u.Transfer
		c.Transfer = &t
	}
	return c
}

// CloneAll deep-copies a slice of UAVs.
func CloneAll(uavs []UAV) []UAV {
	out := make([]UAV, len(uavs))
	for i, u := range uavs {
		out[i] = u.Clone()
	}
	return out
}
