package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "fleet.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadValidExplicitConfig(t *testing.T) {
	path := writeTempConfig(t, `
[general]
debug_mode = true
server_url = "ws://localhost:9000"
ocpp_version = "ocpp1.6"

[[charge_points]]
id = "CP001"
auth_header = "Basic dGVzdA=="
boot_delay_ms = 0
heartbeat_interval_s = 60
status_interval_s = 30
start_tx_after_s = 1
stop_tx_after_s = 2
id_tags = ["TAG1"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.General.OcppVersion != OcppVersion16 {
		t.Errorf("expected ocpp1.6, got %s", cfg.General.OcppVersion)
	}
	if len(cfg.ChargePoints) != 1 || cfg.ChargePoints[0].ID != "CP001" {
		t.Errorf("expected one charge point CP001, got %+v", cfg.ChargePoints)
	}
}

func TestLoadValidImplicitConfig(t *testing.T) {
	path := writeTempConfig(t, `
[general]
server_url = "wss://csms.example.com"
ocpp_version = "ocpp2.0.1"

[implicit_charge_points]
count = 3
prefix = "CP"
boot_delay_range = [0, 1000]
heartbeat_interval_range = [30, 60]
status_interval_range = [10, 20]
start_tx_after_range = [1, 5]
stop_tx_after_range = [5, 10]
id_tags = ["TAG1", "TAG2"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ImplicitChargePoints == nil || cfg.ImplicitChargePoints.Count != 3 {
		t.Fatalf("expected implicit config with count 3, got %+v", cfg.ImplicitChargePoints)
	}
}

func TestLoadRejectsBadURL(t *testing.T) {
	path := writeTempConfig(t, `
[general]
server_url = "http://localhost:9000"
ocpp_version = "ocpp1.6"

[[charge_points]]
id = "CP001"
`)

	if _, err := Load(path); err == nil {
		t.Error("expected error for non-ws(s) server_url")
	}
}

func TestLoadRejectsUnknownVersion(t *testing.T) {
	path := writeTempConfig(t, `
[general]
server_url = "ws://localhost:9000"
ocpp_version = "ocpp9.9"

[[charge_points]]
id = "CP001"
`)

	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown ocpp_version")
	}
}

func TestLoadRequiresAtLeastOneChargePointSource(t *testing.T) {
	path := writeTempConfig(t, `
[general]
server_url = "ws://localhost:9000"
ocpp_version = "ocpp1.6"
`)

	if _, err := Load(path); err == nil {
		t.Error("expected error when neither charge_points nor implicit_charge_points is set")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
