package data

import (
	"strings"
	"testing"
)

func TestParseStats(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		health  int
		speed   float64
		attack  int
		magic   int
		wantErr bool
	}{
		{
			name:   "sheet headers",
			input:  "Health,Speed,Physical damage,Magic Damage\n60,150,8,2\n",
			health: 60, speed: 150, attack: 8, magic: 2,
		},
		{
			name:   "lower case and spaces",
			input:  "health, speed, physical damage, magic damage\r\n 70 , 90 , 4 , 1\r\n",
			health: 70, speed: 90, attack: 4, magic: 1,
		},
		{
			name:   "decimal ints",
			input:  "Health,Speed,Physical damage,Magic Damage\n50.0,180.5,5.0,0\n",
			health: 50, speed: 180.5, attack: 5, magic: 0,
		},
		{
			name:    "garbage",
			input:   "Health\nlots\n",
			wantErr: true,
		},
		{
			name:    "negative speed",
			input:   "Speed\n-1\n",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := ParseStats(strings.NewReader(tc.input))
			if tc.wantErr {
				if err == nil {
					t.Errorf("ParseStats() should fail, got %+v", s)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStats() failed: %v", err)
			}
			if s.Health == nil || *s.Health != tc.health {
				t.Errorf("Health = %v, expected %d", s.Health, tc.health)
			}
			if s.Speed == nil || *s.Speed != tc.speed {
				t.Errorf("Speed = %v, expected %v", s.Speed, tc.speed)
			}
			if s.PhysicalDamage == nil || *s.PhysicalDamage != tc.attack {
				t.Errorf("PhysicalDamage = %v, expected %d", s.PhysicalDamage, tc.attack)
			}
			if s.MagicDamage == nil || *s.MagicDamage != tc.magic {
				t.Errorf("MagicDamage = %v, expected %d", s.MagicDamage, tc.magic)
			}
		})
	}
}

func TestParseStatsPartial(t *testing.T) {
	s, err := ParseStats(strings.NewReader("Health,Notes\n99,tough\n"))
	if err != nil {
		t.Fatalf("ParseStats() failed: %v", err)
	}
	if s.Health == nil || *s.Health != 99 {
		t.Errorf("Health = %v, expected 99", s.Health)
	}
	if s.Speed != nil || s.PhysicalDamage != nil || s.MagicDamage != nil {
		t.Errorf("missing columns should stay nil, got %+v", s)
	}
}

func TestParseStatsHeaderOnly(t *testing.T) {
	for _, input := range []string{"", "Health,Speed\n"} {
		s, err := ParseStats(strings.NewReader(input))
		if err != nil {
			t.Fatalf("ParseStats(%q) failed: %v", input, err)
		}
		if !s.Empty() {
			t.Errorf("ParseStats(%q) = %+v, expected empty", input, s)
		}
	}
}
