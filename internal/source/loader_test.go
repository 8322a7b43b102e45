package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeInput(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJSONSatisfactionPresence(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		present bool
		value   float64
	}{
		{"missing", `{"totalMessages":1234,"averageResponseTime":7,"resolvedChats":300,"activeAdmins":5}`, false, 0},
		{"null", `{"totalMessages":1,"customerSatisfaction":null}`, false, 0},
		{"zero", `{"totalMessages":1,"customerSatisfaction":0}`, true, 0},
		{"value", `{"totalMessages":1,"customerSatisfaction":92.5}`, true, 92.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := Load(writeInput(t, "metrics.json", tt.body))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if in.HasSatisfaction() != tt.present {
				t.Fatalf("HasSatisfaction = %v, want %v", in.HasSatisfaction(), tt.present)
			}
			if tt.present && *in.CustomerSatisfaction != tt.value {
				t.Errorf("CustomerSatisfaction = %v, want %v", *in.CustomerSatisfaction, tt.value)
			}
		})
	}
}

func TestLoadJSONFields(t *testing.T) {
	in, err := Load(writeInput(t, "m.JSON", `{"totalMessages":1234,"averageResponseTime":7.5,"resolvedChats":300,"activeAdmins":5}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.TotalMessages != 1234 || in.AverageResponseTime != 7.5 || in.ResolvedChats != 300 || in.ActiveAdmins != 5 {
		t.Errorf("decoded = %+v", in)
	}
}

func TestLoadTOML(t *testing.T) {
	body := "total_messages = 90\naverage_response_time = 31.5\nresolved_chats = 90\nactive_admins = 0\ncustomer_satisfaction = 0.0\n"
	snap, err := LoadSnapshot(writeInput(t, "metrics.toml", body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in := snap.Metrics
	if in.TotalMessages != 90 || in.AverageResponseTime != 31.5 || in.ActiveAdmins != 0 {
		t.Errorf("decoded = %+v", in)
	}
	if !in.HasSatisfaction() {
		t.Error("zero satisfaction in TOML should count as present")
	}
	if snap.CapturedAt.IsZero() || snap.Source == "" {
		t.Errorf("snapshot not stamped: %+v", snap)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); !errors.Is(err, ErrNoInput) {
		t.Errorf("empty path err = %v, want ErrNoInput", err)
	}
	if _, err := Load(writeInput(t, "metrics.yaml", "a: 1")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("yaml err = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing err = %v, want ErrNotExist", err)
	}
	if _, err := Load(writeInput(t, "bad.json", "{")); err == nil {
		t.Error("malformed json should fail")
	}
}
