// Package config holds the typed configuration records the fleet
// supervisor and session engine consume, and the TOML loader that
// populates them.
//
// Shape grounded on original_source/crates/common/src/lib.rs
// (GeneralConfig, ChargePointConfig, ImplicitChargePointConfig, Config);
// struct-tag and load/validate convention grounded on the teacher's
// internal/config/{config,loader}.go.
package config

// OcppVersion is the wire subprotocol string carried on the WebSocket
// handshake and used to select the action catalog.
type OcppVersion string

const (
	OcppVersion16  OcppVersion = "ocpp1.6"
	OcppVersion201 OcppVersion = "ocpp2.0.1"
	OcppVersion21  OcppVersion = "ocpp2.1"
)

// Valid reports whether v is one of the three supported versions.
func (v OcppVersion) Valid() bool {
	switch v {
	case OcppVersion16, OcppVersion201, OcppVersion21:
		return true
	default:
		return false
	}
}

// Mode selects the session engine's behavior.
type Mode string

const (
	ModeDynamic Mode = "dynamic"
	ModeIdle    Mode = "idle"
)

// Valid reports whether m is a supported mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeDynamic, ModeIdle:
		return true
	default:
		return false
	}
}

// GeneralConfig holds fleet-wide settings from the [general] TOML section.
type GeneralConfig struct {
	DebugMode   bool        `toml:"debug_mode"`
	ServerURL   string      `toml:"server_url"`
	OcppVersion OcppVersion `toml:"ocpp_version"`
}

// ChargePointConfig describes one charge point, either listed explicitly
// under [[charge_points]] or generated from an ImplicitChargePointConfig.
type ChargePointConfig struct {
	ID                string   `toml:"id"`
	AuthHeader        string   `toml:"auth_header"`
	BootDelayMs       uint64   `toml:"boot_delay_ms"`
	HeartbeatInterval uint64   `toml:"heartbeat_interval_s"`
	StatusInterval    uint64   `toml:"status_interval_s"`
	StartTxAfter      uint64   `toml:"start_tx_after_s"`
	StopTxAfter       uint64   `toml:"stop_tx_after_s"`
	IDTags            []string `toml:"id_tags"`
}

// Range is an inclusive [lo, hi] sampling range for an implicit charge
// point interval field.
type Range [2]uint64

// ImplicitChargePointConfig synthesizes Count charge points at runtime
// from a shared id Prefix and per-field uniform-random ranges, under the
// optional [implicit_charge_points] TOML section.
type ImplicitChargePointConfig struct {
	Count                  int      `toml:"count"`
	Prefix                 string   `toml:"prefix"`
	BootDelayRange         Range    `toml:"boot_delay_range"`
	HeartbeatIntervalRange Range    `toml:"heartbeat_interval_range"`
	StatusIntervalRange    Range    `toml:"status_interval_range"`
	StartTxAfterRange      Range    `toml:"start_tx_after_range"`
	StopTxAfterRange       Range    `toml:"stop_tx_after_range"`
	IDTags                 []string `toml:"id_tags"`
}

// FleetConfig is the root of the TOML configuration file.
type FleetConfig struct {
	General              GeneralConfig              `toml:"general"`
	ChargePoints         []ChargePointConfig        `toml:"charge_points"`
	ImplicitChargePoints *ImplicitChargePointConfig `toml:"implicit_charge_points"`
}
