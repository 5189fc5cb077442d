package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{
			name:     "empty string returns local",
			timezone: "",
			wantErr:  false,
		},
		{
			name:     "Local returns local",
			timezone: "Local",
			wantErr:  false,
		},
		{
			name:     "valid timezone UTC",
			timezone: "UTC",
			wantErr:  false,
		},
		{
			name:     "invalid timezone",
			timezone: "Invalid/Timezone",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestParseDateInLocation(t *testing.T) {
	got, err := ParseDateInLocation("2025-06-11", time.UTC)
	if err != nil {
		t.Fatalf("ParseDateInLocation() error = %v", err)
	}
	want := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDateInLocation() = %v, want %v", got, want)
	}

	if _, err := ParseDateInLocation("06/11/2025", time.UTC); err == nil {
		t.Error("ParseDateInLocation() expected error for invalid format")
	}
}

func TestParseMonthInLocation(t *testing.T) {
	got, err := ParseMonthInLocation("2025-02", time.UTC)
	if err != nil {
		t.Fatalf("ParseMonthInLocation() error = %v", err)
	}
	if got.Day() != 1 || got.Month() != time.February || got.Year() != 2025 {
		t.Errorf("ParseMonthInLocation() = %v, want 2025-02-01", got)
	}

	if _, err := ParseMonthInLocation("2025-13", time.UTC); err == nil {
		t.Error("ParseMonthInLocation() expected error for month 13")
	}
}

func TestValidateTimezone(t *testing.T) {
	tests := []struct {
		timezone string
		want     bool
	}{
		{"", true},
		{"Local", true},
		{"UTC", true},
		{"Not/AZone", false},
	}

	for _, tt := range tests {
		t.Run(tt.timezone, func(t *testing.T) {
			if got := ValidateTimezone(tt.timezone); got != tt.want {
				t.Errorf("ValidateTimezone(%q) = %v, want %v", tt.timezone, got, tt.want)
			}
		})
	}
}
