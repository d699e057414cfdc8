// Package export renders recorded descents as standalone SVG files.
package export

import (
	"fmt"
	"strings"

	"skyfall/internal/telemetry"
)

// AltitudeProfileSVG draws altitude against time as a single polyline.
func AltitudeProfileSVG(snaps []telemetry.Snapshot, width, height int, strokeColor string) string {
	points := make([][2]float64, len(snaps))
	for i, s := range snaps {
		points[i] = [2]float64{s.Time, s.Altitude}
	}
	return polylineSVG(points, width, height, strokeColor)
}

// GroundTrackSVG draws the horizontal path (x against z) of a descent,
// which shows wind drift under canopy.
func GroundTrackSVG(snaps []telemetry.Snapshot, width, height int, strokeColor string) string {
	points := make([][2]float64, len(snaps))
	for i, s := range snaps {
		points[i] = [2]float64{s.Position.X, s.Position.Z}
	}
	return polylineSVG(points, width, height, strokeColor)
}

func polylineSVG(points [][2]float64, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0][0], points[0][0]
	minY, maxY := points[0][1], points[0][1]
	for _, p := range points {
		if p[0] < minX {
			minX = p[0]
		}
		if p[0] > maxX {
			maxX = p[0]
		}
		if p[1] < minY {
			minY = p[1]
		}
		if p[1] > maxY {
			maxY = p[1]
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x := (p[0] - minX) / rangeX * float64(width)
		y := float64(height) - (p[1]-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
