package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Load reads and validates a FleetConfig from the TOML file at path. Unlike
// the teacher's cleanenv-based loader there are no default search paths or
// environment-variable overrides: the core's only configuration input is
// the file named by --config-path (§6), and the file format is fixed TOML,
// so decoding goes straight through go-toml/v2 against the "toml" struct
// tags rather than cleanenv's yaml-tag-for-every-format convention.
func Load(path string) (*FleetConfig, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg FleetConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// validate performs the fatal, pre-session configuration checks from §7
// category 1: missing file is caught by Load itself; here we reject
// malformed URLs and unknown enum values before any session starts.
func validate(cfg *FleetConfig) error {
	if cfg.General.ServerURL == "" {
		return fmt.Errorf("general.server_url is required")
	}

	u, err := url.Parse(cfg.General.ServerURL)
	if err != nil {
		return fmt.Errorf("general.server_url is not a valid URL: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("general.server_url must use ws:// or wss://, got %q", u.Scheme)
	}

	if !cfg.General.OcppVersion.Valid() {
		return fmt.Errorf("general.ocpp_version must be one of ocpp1.6, ocpp2.0.1, ocpp2.1, got %q", cfg.General.OcppVersion)
	}

	if len(cfg.ChargePoints) == 0 && cfg.ImplicitChargePoints == nil {
		return fmt.Errorf("at least one of charge_points or implicit_charge_points must be configured")
	}

	for i, cp := range cfg.ChargePoints {
		if strings.TrimSpace(cp.ID) == "" {
			return fmt.Errorf("charge_points[%d].id is required", i)
		}
	}

	if icp := cfg.ImplicitChargePoints; icp != nil {
		if icp.Count <= 0 {
			return fmt.Errorf("implicit_charge_points.count must be positive")
		}
		for name, r := range map[string]Range{
			"boot_delay_range":         icp.BootDelayRange,
			"heartbeat_interval_range": icp.HeartbeatIntervalRange,
			"status_interval_range":    icp.StatusIntervalRange,
			"start_tx_after_range":     icp.StartTxAfterRange,
			"stop_tx_after_range":      icp.StopTxAfterRange,
		} {
			if r[0] > r[1] {
				return fmt.Errorf("implicit_charge_points.%s has lo > hi", name)
			}
		}
	}

	return nil
}
