package contracts

import (
	"math"
	"testing"
)

func TestConfigSafeSpeed(t *testing.T) {
	tests := map[float64]float64{
		1:          1,
		2.5:        2.5,
		0.1:        MinSpeed,
		9:          MaxSpeed,
		0:          1,
		-3:         1,
		math.NaN(): 1,
	}
	for speed, want := range tests {
		if got := (Config{Speed: speed}).SafeSpeed(); got != want {
			t.Errorf("SafeSpeed(%v) = %v, want %v", speed, got, want)
		}
	}
}

func TestConfigGateActive(t *testing.T) {
	tests := []struct {
		cfg  Config
		want bool
	}{
		{Config{GateEnabled: true, TargetTitle: "Game"}, true},
		{Config{GateEnabled: false, TargetTitle: "Game"}, false},
		{Config{GateEnabled: true}, false},
		{Config{GateEnabled: true, TargetTitle: NoTargetWindow}, false},
	}
	for _, tt := range tests {
		if got := tt.cfg.GateActive(); got != tt.want {
			t.Errorf("%+v.GateActive() = %v, want %v", tt.cfg, got, tt.want)
		}
	}
}

func TestHotkeysWithDefaults(t *testing.T) {
	got := Hotkeys{Stop: "end"}.WithDefaults()
	want := Hotkeys{PlayPause: "f9", Stop: "end", TransposeUp: "page up", TransposeDown: "page down"}
	if got != want {
		t.Errorf("WithDefaults() = %+v, want %+v", got, want)
	}
}
