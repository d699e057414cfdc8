package export

import (
	"strings"
	"testing"

	"skyfall/internal/phys"
	"skyfall/internal/telemetry"
)

func descentSnaps() []telemetry.Snapshot {
	return []telemetry.Snapshot{
		{Time: 0, Altitude: 500, Position: phys.Vec3{Y: 500}},
		{Time: 1, Altitude: 495, Position: phys.Vec3{X: 2, Y: 495, Z: 1}},
		{Time: 2, Altitude: 481, Position: phys.Vec3{X: 5, Y: 481, Z: 3}},
	}
}

func TestAltitudeProfileSVG(t *testing.T) {
	svg := AltitudeProfileSVG(descentSnaps(), 400, 200, "#00ff00")

	if !strings.HasPrefix(svg, `<?xml`) {
		t.Error("missing XML header")
	}
	if !strings.Contains(svg, `width="400" height="200"`) {
		t.Error("dimensions not applied")
	}
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("stroke color not applied")
	}
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 line segments, got %d", strings.Count(svg, " L"))
	}
}

func TestGroundTrackSVG(t *testing.T) {
	svg := GroundTrackSVG(descentSnaps(), 300, 300, "#ff8800")
	if !strings.Contains(svg, "<path") {
		t.Error("missing path element")
	}
}

func TestSVG_TooFewPoints(t *testing.T) {
	if svg := AltitudeProfileSVG(descentSnaps()[:1], 400, 200, "#fff"); svg != "" {
		t.Errorf("expected empty output, got %q", svg)
	}
	if svg := GroundTrackSVG(nil, 400, 200, "#fff"); svg != "" {
		t.Errorf("expected empty output, got %q", svg)
	}
}

func TestSVG_DegenerateRange(t *testing.T) {
	// Constant altitude must not divide by zero.
	snaps := []telemetry.Snapshot{
		{Time: 0, Altitude: 100},
		{Time: 1, Altitude: 100},
	}
	svg := AltitudeProfileSVG(snaps, 400, 200, "#fff")
	if !strings.Contains(svg, "<path") {
		t.Error("degenerate range produced no path")
	}
	if strings.Contains(svg, "NaN") {
		t.Error("output contains NaN coordinates")
	}
}
