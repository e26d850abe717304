package timezone

import (
	"testing"
	"time"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		tz   string
		want bool
	}{
		{"UTC", true},
		{"Europe/Berlin", true},
		{"America/New_York", true},
		{"Not/A_Zone", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValid(tt.tz); got != tt.want {
			t.Errorf("IsValid(%q) = %v, want %v", tt.tz, got, tt.want)
		}
	}
}

func TestLocationFallsBackToUTC(t *testing.T) {
	if loc := Location("Not/A_Zone"); loc != time.UTC {
		t.Errorf("Location() = %v, want UTC", loc)
	}
	if loc := Location("Europe/Berlin"); loc.String() != "Europe/Berlin" {
		t.Errorf("Location() = %v, want Europe/Berlin", loc)
	}
}
