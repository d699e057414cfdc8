package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mass <= 0 {
		t.Error("default mass must be positive")
	}
	if cfg.Dt <= 0 || cfg.Duration <= 0 {
		t.Error("default timing must be positive")
	}
	if cfg.CanopyArea <= 0 {
		t.Error("default canopy area must be positive")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jump.yaml")

	cfg := DefaultConfig()
	cfg.Mass = 92.5
	cfg.Altitude = 2500
	cfg.Wind = WindConfig{Strength: 6, Direction: 0.5}
	cfg.AutoDeployAltitude = 750

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Mass != 92.5 || loaded.Altitude != 2500 {
		t.Errorf("loaded config mismatch: %+v", loaded)
	}
	if loaded.Wind != cfg.Wind {
		t.Errorf("wind mismatch: %+v", loaded.Wind)
	}
	if loaded.AutoDeployAltitude != 750 {
		t.Errorf("auto deploy altitude = %v", loaded.AutoDeployAltitude)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPresets(t *testing.T) {
	if GetPreset("terminal") == nil {
		t.Fatal("terminal preset missing")
	}
	if GetPreset("nonexistent") != nil {
		t.Error("unknown preset should be nil")
	}

	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("no presets listed")
	}

	for _, name := range names {
		p := GetPreset(name)
		if p.Mass <= 0 || p.Dt <= 0 || p.Duration <= 0 {
			t.Errorf("preset %q has invalid values: %+v", name, p)
		}
	}
}

func TestBodyConfigMapping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mass = 95
	cfg.Altitude = 1800

	bc := cfg.BodyConfig()
	if bc.Mass != 95 {
		t.Errorf("body mass = %v", bc.Mass)
	}
	if bc.Position.Y != 1800 {
		t.Errorf("body altitude = %v", bc.Position.Y)
	}
}

func TestSimConfigMapping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dt = 0.005
	cfg.Duration = 42
	cfg.SubSteps = 4
	cfg.AutoDeployAltitude = 600

	sc := cfg.SimConfig()
	if sc.Dt != 0.005 || sc.Duration != 42 || sc.SubSteps != 4 || sc.AutoDeployAltitude != 600 {
		t.Errorf("sim config mismatch: %+v", sc)
	}
}
