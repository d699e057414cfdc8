package config

var Presets = map[string]*Config{
	"terminal": {
		Mass: 80, Altitude: 4000, Gravity: 9.81,
		CanopyArea: 28, DragVertical: 1.75, DragHorizontal: 0.45, OpeningDuration: 3,
		Dt: 0.01, Duration: 300, SubSteps: 1,
		AutoDeployAltitude: 800,
	},
	"hop-and-pop": {
		Mass: 80, Altitude: 1200, Gravity: 9.81,
		CanopyArea: 28, DragVertical: 1.75, DragHorizontal: 0.45, OpeningDuration: 3,
		Dt: 0.01, Duration: 240, SubSteps: 1,
		AutoDeployAltitude: 1000,
	},
	"accuracy": {
		Mass: 75, Altitude: 1000, Gravity: 9.81,
		CanopyArea: 32, DragVertical: 1.9, DragHorizontal: 0.5, OpeningDuration: 4,
		Dt: 0.005, Duration: 300, SubSteps: 2,
		AutoDeployAltitude: 900,
		Wind:               WindConfig{Strength: 4, Direction: 1.57},
	},
	"no-pull": {
		Mass: 80, Altitude: 2000, Gravity: 9.81,
		CanopyArea: 28, DragVertical: 1.75, DragHorizontal: 0.45, OpeningDuration: 3,
		Dt: 0.01, Duration: 60, SubSteps: 1,
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
