package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"skyfall/internal/sim"
	"skyfall/internal/telemetry"
)

// Store persists descent runs under a base directory: one subdirectory per
// run holding metadata.json and trajectory.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Mass      float64            `json:"mass"`
	Altitude  float64            `json:"altitude"`
	Landed    bool               `json:"landed"`
	Metrics   map[string]float64 `json:"metrics"`
}

var trajectoryHeader = []string{
	"time", "x", "y", "z", "vx", "vy", "vz",
	"phase", "density", "terminal_velocity",
}

// Save writes one run and returns its generated ID.
func (s *Store) Save(preset string, dt, duration, mass, altitude float64, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("jump_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Preset:    preset,
		Timestamp: time.Now(),
		Dt:        dt,
		Duration:  duration,
		Mass:      mass,
		Altitude:  altitude,
		Landed:    result.Landed,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(trajectoryHeader); err != nil {
		return "", err
	}

	for _, snap := range result.Snapshots {
		row := []string{
			fmtFloat(snap.Time),
			fmtFloat(snap.Position.X), fmtFloat(snap.Position.Y), fmtFloat(snap.Position.Z),
			fmtFloat(snap.Velocity.X), fmtFloat(snap.Velocity.Y), fmtFloat(snap.Velocity.Z),
			strconv.Itoa(int(snap.Phase)),
			fmtFloat(snap.Density),
			fmtFloat(snap.TerminalVelocity),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// TrajectoryPoint is one parsed row of trajectory.csv.
type TrajectoryPoint struct {
	Time             float64
	X, Y, Z          float64
	VX, VY, VZ       float64
	Phase            int
	Density          float64
	TerminalVelocity float64
}

func (p TrajectoryPoint) Speed() float64 {
	return math.Sqrt(p.VX*p.VX + p.VY*p.VY + p.VZ*p.VZ)
}

// LoadTrajectory reads the recorded trajectory for a run.
func (s *Store) LoadTrajectory(runID string) ([]TrajectoryPoint, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	points := make([]TrajectoryPoint, 0, len(records))
	for i, record := range records {
		if i == 0 || len(record) < len(trajectoryHeader) {
			continue
		}

		vals := make([]float64, len(trajectoryHeader))
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}

		points = append(points, TrajectoryPoint{
			Time: vals[0],
			X:    vals[1], Y: vals[2], Z: vals[3],
			VX: vals[4], VY: vals[5], VZ: vals[6],
			Phase:            int(vals[7]),
			Density:          vals[8],
			TerminalVelocity: vals[9],
		})
	}

	return points, nil
}

// PointsToSnapshots converts trajectory points back into telemetry
// snapshots for offline analysis.
func PointsToSnapshots(points []TrajectoryPoint) []telemetry.Snapshot {
	snaps := make([]telemetry.Snapshot, len(points))
	for i, p := range points {
		snaps[i] = telemetry.Snapshot{
			Time:             p.Time,
			Density:          p.Density,
			TerminalVelocity: p.TerminalVelocity,
		}
		snaps[i].Position.X, snaps[i].Position.Y, snaps[i].Position.Z = p.X, p.Y, p.Z
		snaps[i].Velocity.X, snaps[i].Velocity.Y, snaps[i].Velocity.Z = p.VX, p.VY, p.VZ
		snaps[i].Altitude = p.Y
	}
	return snaps
}
