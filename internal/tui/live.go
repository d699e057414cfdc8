// Package tui renders a live terminal view of one descent: a stats panel
// with altitude, speed, phase, and atmosphere readings, plus a scrolling
// descent-rate graph. It drives the simulator from bubbletea tick messages;
// the simulation itself stays wall-clock free.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"skyfall/internal/canopy"
	"skyfall/internal/sim"
)

const (
	historyCapacity = 240
	graphHeight     = 10
	graphWidth      = 60
	barHeight       = 18
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	phaseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	alertStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type TickMsg time.Time

// Model is the bubbletea model wrapping one simulator.
type Model struct {
	sim       *sim.Simulator
	dt        float64
	frameRate int

	initialAltitude float64
	rateHistory     []float64
	running         bool
	landedShown     bool
	message         string
}

func NewModel(s *sim.Simulator, dt float64, frameRate int) Model {
	if frameRate <= 0 {
		frameRate = 30
	}
	return Model{
		sim:             s,
		dt:              dt,
		frameRate:       frameRate,
		initialAltitude: s.Snapshot().Altitude,
		rateHistory:     make([]float64, 0, historyCapacity),
		running:         true,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "d":
			ok, reason := m.sim.DeployCanopy()
			if ok {
				m.message = "canopy deployed"
			} else {
				m.message = "deploy rejected: " + reason.String()
			}
		case "r":
			m.sim.Reset()
			m.rateHistory = m.rateHistory[:0]
			m.running = true
			m.landedShown = false
			m.message = ""
		case "w":
			if m.sim.Environment().WindEnabled() {
				m.sim.DisableWind()
				m.message = "wind off"
			} else if err := m.sim.SetWind(6, 0); err == nil {
				m.message = "wind 6 m/s"
			}
		}
		return m, nil

	case TickMsg:
		if m.running {
			// Advance simulation time by one frame's worth of fixed steps.
			frame := 1.0 / float64(m.frameRate)
			for t := 0.0; t < frame; t += m.dt {
				m.sim.Step(m.dt)
			}

			snap := m.sim.Snapshot()
			m.rateHistory = append(m.rateHistory, snap.DescentRate())
			if len(m.rateHistory) > historyCapacity {
				m.rateHistory = m.rateHistory[1:]
			}

			if snap.OnGround && snap.Speed() == 0 && !m.landedShown {
				m.running = false
				m.landedShown = true
				m.message = "landed"
			}
		}
		return m, m.tick()
	}

	return m, nil
}

func (m Model) View() string {
	snap := m.sim.Snapshot()

	stats := []string{
		headerStyle.Render("skyfall"),
		row("time", fmt.Sprintf("%8.2f s", snap.Time)),
		row("altitude", fmt.Sprintf("%8.1f m", snap.Altitude)),
		row("descent rate", fmt.Sprintf("%8.2f m/s", snap.DescentRate())),
		row("speed", fmt.Sprintf("%8.2f m/s", snap.Speed())),
		labelStyle.Render("phase") + phaseStyle.Render(snap.Phase.String()),
		row("terminal vel", fmt.Sprintf("%8.2f m/s", snap.TerminalVelocity)),
		row("air density", fmt.Sprintf("%8.4f kg/m³", snap.Density)),
		row("temperature", fmt.Sprintf("%8.1f °C", snap.Temperature)),
		row("pressure", fmt.Sprintf("%8.0f Pa", snap.Pressure)),
	}
	if m.message != "" {
		stats = append(stats, "", alertStyle.Render(m.message))
	}

	left := altitudeBar(snap.Altitude, m.initialAltitude, snap.Phase)
	right := statsStyle.Render(strings.Join(stats, "\n"))
	top := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	var graph string
	if len(m.rateHistory) > 1 {
		graph = graphStyle.Render(asciigraph.Plot(
			m.rateHistory,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("descent rate (m/s)"),
		))
	}

	help := helpStyle.Render("d deploy · r reset · w wind · space pause · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, top, graph, help)
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

// altitudeBar draws the jumper's height as a vertical track from start
// altitude down to the ground.
func altitudeBar(altitude, initial float64, phase canopy.Phase) string {
	if initial <= 0 {
		initial = 1
	}
	frac := altitude / initial
	if frac < 0 {
		frac = 0
	} else if frac > 1 {
		frac = 1
	}

	markerRow := int(math.Round((1 - frac) * float64(barHeight-1)))
	marker := "o"
	if phase != canopy.Freefall {
		marker = "☂"
	}

	var b strings.Builder
	for i := 0; i < barHeight; i++ {
		b.WriteString("│")
		if i == markerRow {
			b.WriteString(" " + marker)
		}
		b.WriteString("\n")
	}
	b.WriteString("┴───── ground")
	return b.String()
}

// Run starts the live view and blocks until the user quits.
func Run(s *sim.Simulator, dt float64, frameRate int) error {
	p := tea.NewProgram(NewModel(s, dt, frameRate))
	_, err := p.Run()
	return err
}
