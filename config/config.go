/*
 * NETCAP - Traffic Analysis Framework
 * Copyright (c) 2017-2020 Philipp Mieden <dreadl0ck [at] protonmail [dot] ch>
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package config loads the TOML configuration for a capture run, in the
// style of the katzenpost client's config loader: a single struct decoded
// wholesale with BurntSushi/toml, with CLI flags able to override a subset
// of fields afterward.
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Mode selects how packets are sourced.
type Mode string

const (
	ModeLive    Mode = "live"
	ModeReplay  Mode = "replay"
	ModeRecord  Mode = "record"
)

// Config is the root configuration document.
type Config struct {
	Capture CaptureConfig `toml:"capture"`
	LootDB  LootDBConfig  `toml:"lootdb"`
	Metrics MetricsConfig `toml:"metrics"`
	Log     LogConfig     `toml:"log"`
}

// CaptureConfig describes where packets come from and how replay is paced.
type CaptureConfig struct {
	Mode Mode `toml:"mode"`

	// Interface is the local UDP address (host:port) the adapter binds in
	// live and record modes.
	// Mirrors the original's LOCAL_ADAPTER_IP_ADDRESS build-time constant.
	Interface string `toml:"interface"`

	// PlayerIP is the IP address of the machine running the game client.
	// It is loaded from the config file but nothing reads it: UDPAdapter
	// reports every datagram as inbound. Mirrors the original's
	// MACHINE_PLAYING_GAME_IP_ADDRESS constant.
	PlayerIP string `toml:"player_ip"`

	// DumpPath is the file used for record/replay.
	DumpPath string `toml:"dump_path"`

	// TimeScale multiplies the delay between replayed packets; 1.0 plays
	// back at the originally captured pace.
	TimeScale float64 `toml:"time_scale"`
}

// LootDBConfig locates the item template database.
type LootDBConfig struct {
	Path string `toml:"path"`
}

// MetricsConfig controls the prometheus HTTP exporter.
type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Listen  string `toml:"listen"`
}

// LogConfig controls logger verbosity.
type LogConfig struct {
	Debug bool `toml:"debug"`
}

// Default returns a configuration with sane defaults, matching the
// original's implicit behavior when no flags are given (live capture, no
// dump, real-time replay pace).
func Default() Config {
	return Config{
		Capture: CaptureConfig{
			Mode:      ModeLive,
			TimeScale: 1.0,
		},
		Metrics: MetricsConfig{
			Listen: "127.0.0.1:9145",
		},
	}
}

// Load reads and decodes a TOML config file, starting from Default().
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "decode config %q", path)
	}

	return cfg, nil
}
