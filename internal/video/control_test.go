package video

import (
	"testing"
)

func TestControl(t *testing.T) {
	tests := []struct {
		name    string
		ctl     Control
		flip    bool
		pattern int
		blink   bool
		phase   uint8
		wide    bool
	}{
		{"zero", 0x00, false, 0, false, 0, false},
		{"flip screen", 0x01, true, 0, false, 0, false},
		{"pattern phase 1", 0x02, false, 1, false, 0, false},
		{"pattern phase 3", 0x06, false, 3, false, 0, false},
		{"blink enabled", 0x08, false, 0, true, 0, false},
		{"blink phase 2", 0x28, false, 0, true, 2, false},
		{"blink phase 3 without enable", 0x30, false, 0, false, 3, false},
		{"wide tile bank", 0x80, false, 0, false, 0, true},
		{"all together", 0xbf, true, 3, true, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.ctl.FlipScreen() != tt.flip {
				t.Errorf("expected FlipScreen %v, got %v", tt.flip, tt.ctl.FlipScreen())
			}
			if tt.ctl.PatternPhase() != tt.pattern {
				t.Errorf("expected PatternPhase %d, got %d", tt.pattern, tt.ctl.PatternPhase())
			}
			if tt.ctl.BlinkEnabled() != tt.blink {
				t.Errorf("expected BlinkEnabled %v, got %v", tt.blink, tt.ctl.BlinkEnabled())
			}
			if tt.ctl.BlinkPhase() != tt.phase {
				t.Errorf("expected BlinkPhase %d, got %d", tt.phase, tt.ctl.BlinkPhase())
			}
			if tt.ctl.WideTileBank() != tt.wide {
				t.Errorf("expected WideTileBank %v, got %v", tt.wide, tt.ctl.WideTileBank())
			}
		})
	}
}
