package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetStorageTarget(t *testing.T) {
	gokeyring.MockInit()

	tests := []string{
		"postgres://habits@localhost:5432/habitual?sslmode=disable",
		"redis://localhost:6379/0",
	}

	for _, target := range tests {
		t.Run(target, func(t *testing.T) {
			if err := SetStorageTarget(target); err != nil {
				t.Fatalf("SetStorageTarget() failed: %v", err)
			}
			got, err := GetStorageTarget()
			if err != nil {
				t.Fatalf("GetStorageTarget() failed: %v", err)
			}
			if got != target {
				t.Errorf("GetStorageTarget() = %q, want %q", got, target)
			}
		})
	}
}

func TestSetStorageTargetRejects(t *testing.T) {
	gokeyring.MockInit()

	if err := SetStorageTarget(""); err == nil {
		t.Error("SetStorageTarget(\"\") should return an error")
	}
	if err := SetStorageTarget("/tmp/habits.db"); !errors.Is(err, ErrUnsupportedTarget) {
		t.Errorf("SetStorageTarget(file) error = %v, want %v", err, ErrUnsupportedTarget)
	}
}

func TestGetStorageTargetNotFound(t *testing.T) {
	gokeyring.MockInit()
	_ = DeleteStorageTarget()

	if _, err := GetStorageTarget(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetStorageTarget() error = %v, want %v", err, ErrNotFound)
	}
	if err := DeleteStorageTarget(); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteStorageTarget() error = %v, want %v", err, ErrNotFound)
	}
}

func TestIsAvailableWithMock(t *testing.T) {
	gokeyring.MockInit()
	if !IsAvailable() {
		t.Error("IsAvailable() = false with mock keyring")
	}
}

func TestIsRemoteTarget(t *testing.T) {
	tests := []struct {
		target string
		want   bool
	}{
		{"postgres://u@h/db", true},
		{"postgresql://u@h/db", true},
		{"rediss://h:6380", true},
		{"habits.json", false},
		{"~/.config/habitual/habitual.db", false},
	}
	for _, tt := range tests {
		if got := IsRemoteTarget(tt.target); got != tt.want {
			t.Errorf("IsRemoteTarget(%q) = %v, want %v", tt.target, got, tt.want)
		}
	}
}
