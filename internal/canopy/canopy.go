// Package canopy implements the deployment state machine for a single
// parachute: Freefall → Opening → Deployed, with Opening → Deployed driven
// purely by accumulated simulation time. Transitions are one-directional;
// the only way back to Freefall is an explicit Reset.
package canopy

import (
	"fmt"

	"skyfall/internal/env"
	"skyfall/internal/phys"
)

type Phase int

const (
	Freefall Phase = iota
	Opening
	Deployed
)

func (p Phase) String() string {
	switch p {
	case Freefall:
		return "freefall"
	case Opening:
		return "opening"
	case Deployed:
		return "deployed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// RejectReason explains why a deploy command was ignored.
type RejectReason int

const (
	ReasonNone RejectReason = iota
	ReasonAlreadyDeployed
	ReasonTooLow
)

func (r RejectReason) String() string {
	switch r {
	case ReasonNone:
		return "ok"
	case ReasonAlreadyDeployed:
		return "already deployed"
	case ReasonTooLow:
		return "too close to ground"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Default aerodynamic parameters. Freefall values model a belly-to-earth
// body; canopy values model a round canopy.
const (
	DefaultFreefallArea           = 0.7 // m²
	DefaultFreefallDragVertical   = 0.7
	DefaultFreefallDragHorizontal = 1.0

	DefaultRoundCanopyArea      = 28.0 // m²
	DefaultCanopyDragVertical   = 1.75
	DefaultCanopyDragHorizontal = 0.45

	DefaultOpeningDuration = 3.0 // s
)

// Canopy tracks deployment phase and the phase-dependent aerodynamic
// parameters (reference area and drag coefficients). Time arguments are
// accumulated simulation time, never wall-clock time.
type Canopy struct {
	phase      Phase
	deployTime float64

	openingDuration float64

	freefallArea      float64
	freefallDragVert  float64
	freefallDragHoriz float64
	canopyArea        float64
	canopyDragVert    float64
	canopyDragHoriz   float64
}

func New() *Canopy {
	return &Canopy{
		phase:             Freefall,
		openingDuration:   DefaultOpeningDuration,
		freefallArea:      DefaultFreefallArea,
		freefallDragVert:  DefaultFreefallDragVertical,
		freefallDragHoriz: DefaultFreefallDragHorizontal,
		canopyArea:        DefaultRoundCanopyArea,
		canopyDragVert:    DefaultCanopyDragVertical,
		canopyDragHoriz:   DefaultCanopyDragHorizontal,
	}
}

func (c *Canopy) Phase() Phase { return c.phase }

// Open reports whether the canopy has left freefall (opening or deployed).
func (c *Canopy) Open() bool { return c.phase != Freefall }

// Deploy requests the Freefall → Opening transition at simulation time now.
// The command is a no-op unless the phase is Freefall and the altitude
// exceeds the minimum ground clearance; the returned reason explains a
// rejection.
func (c *Canopy) Deploy(altitude, now float64) (bool, RejectReason) {
	if c.phase != Freefall {
		return false, ReasonAlreadyDeployed
	}
	if altitude <= env.MinDeployAltitude {
		return false, ReasonTooLow
	}
	c.phase = Opening
	c.deployTime = now
	return true, ReasonNone
}

// Update advances Opening → Deployed once the opening duration has elapsed.
// Called every step; all other phases are left untouched.
func (c *Canopy) Update(now float64) {
	if c.phase == Opening && c.Progress(now) >= 1.0 {
		c.phase = Deployed
	}
}

// Progress reports opening progress in [0,1]. It is 0 in freefall and 1
// once deployed.
func (c *Canopy) Progress(now float64) float64 {
	switch c.phase {
	case Freefall:
		return 0
	case Deployed:
		return 1
	}
	if c.openingDuration <= 0 {
		return 1
	}
	p := (now - c.deployTime) / c.openingDuration
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Reset returns the state machine to Freefall and clears deployment timing.
func (c *Canopy) Reset() {
	c.phase = Freefall
	c.deployTime = 0
}

// DeployTime returns the simulation time at which deployment began. Only
// meaningful while Open.
func (c *Canopy) DeployTime() float64 { return c.deployTime }

func (c *Canopy) OpeningDuration() float64 { return c.openingDuration }

func (c *Canopy) SetOpeningDuration(d float64) {
	if d > 0 {
		c.openingDuration = d
	}
}

// Area returns the current reference area for drag: the body's freefall
// area before deployment, the canopy area once opening begins.
func (c *Canopy) Area() float64 {
	if c.phase == Freefall {
		return c.freefallArea
	}
	return c.canopyArea
}

// CanopyArea returns the canopy surface itself: zero until deployment begins.
func (c *Canopy) CanopyArea() float64 {
	if c.phase == Freefall {
		return 0
	}
	return c.canopyArea
}

func (c *Canopy) DragVertical() float64 {
	if c.phase == Freefall {
		return c.freefallDragVert
	}
	return c.canopyDragVert
}

func (c *Canopy) DragHorizontal() float64 {
	if c.phase == Freefall {
		return c.freefallDragHoriz
	}
	return c.canopyDragHoriz
}

// SetArea configures the canopy surface area. Negative values are rejected
// and the previous area kept.
func (c *Canopy) SetArea(area float64) error {
	if area < 0 {
		return phys.ErrNegativeArea
	}
	c.canopyArea = area
	return nil
}

// SetDragCoefficients configures the canopy drag coefficients.
func (c *Canopy) SetDragCoefficients(vertical, horizontal float64) error {
	if vertical < 0 || horizontal < 0 {
		return phys.ErrNegativeDrag
	}
	c.canopyDragVert = vertical
	c.canopyDragHoriz = horizontal
	return nil
}
