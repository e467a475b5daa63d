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

// Command eft-packet is the thin CLI shell wiring configuration, logging,
// metrics and the capture pipeline together. Named flags are the primary
// interface (SPEC_FULL §1.3); the first three positional arguments are
// still honored as shorthand for dump path / record flag / replay time
// scale, mirroring the original SDL_main's argv[1]/argv[2]/argv[3]
// contract.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/ucectoplasm/eft-packet/capture"
	"github.com/ucectoplasm/eft-packet/config"
	"github.com/ucectoplasm/eft-packet/logging"
	"github.com/ucectoplasm/eft-packet/lootdb"
	"github.com/ucectoplasm/eft-packet/metrics"
	"github.com/ucectoplasm/eft-packet/pipeline"
	"github.com/ucectoplasm/eft-packet/session"
	"github.com/ucectoplasm/eft-packet/types"
)

var snapshotJSON = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	var (
		configPath = flag.String("config", "", "path to a TOML configuration file")
		mode       = flag.String("mode", "", "capture mode: live, replay, or record (overrides config)")
		dumpPath   = flag.String("dump", "", "dump file path for replay/record mode (overrides config)")
		timeScale  = flag.Float64("timescale", 0, "replay time scale, 0 keeps the config/default value")
		debug      = flag.Bool("debug", false, "enable verbose development logging")
	)

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err.Error())
	}

	applyPositionalOverrides(&cfg, flag.Args())

	if *mode != "" {
		cfg.Capture.Mode = config.Mode(*mode)
	}

	if *dumpPath != "" {
		cfg.Capture.DumpPath = *dumpPath
	}

	if *timeScale > 0 {
		cfg.Capture.TimeScale = *timeScale
	}

	if *debug {
		cfg.Log.Debug = true
	}

	log, err := logging.New(cfg.Log.Debug)
	if err != nil {
		fatal("build logger: " + err.Error())
	}

	defer log.Sync() //nolint:errcheck

	reg := metrics.NewRegistry(cfg.Metrics.Enabled)

	var db *lootdb.Database

	if cfg.LootDB.Path != "" {
		db, err = lootdb.Load(cfg.LootDB.Path)
		if err != nil {
			fatal("load loot database: " + err.Error())
		}
	}

	source, closeSource, err := buildSource(cfg, log)
	if err != nil {
		fatal(err.Error())
	}

	defer closeSource()

	tracker := session.NewTracker(logging.Named(log, "session"))
	p := pipeline.New(source, tracker, db, reg, logging.Named(log, "pipeline"), 0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Listen != "" {
		go serveHTTP(ctx, cfg, reg, tracker, log)
	}

	if err := p.Run(ctx); err != nil {
		log.Warn("pipeline stopped", zap.Error(err))
	}
}

// applyPositionalOverrides maps the original's argv[1]/argv[2]/argv[3]
// onto cfg, giving flags priority when both are present.
func applyPositionalOverrides(cfg *config.Config, args []string) {
	if len(args) >= 1 && args[0] != "" {
		cfg.Capture.DumpPath = args[0]
	}

	if len(args) >= 2 && args[1] == "1" {
		cfg.Capture.Mode = config.ModeRecord
	} else if len(args) >= 1 && (cfg.Capture.Mode == "" || cfg.Capture.Mode == config.ModeLive) {
		cfg.Capture.Mode = config.ModeReplay
	}

	if len(args) >= 3 {
		if v, err := strconv.ParseFloat(args[2], 64); err == nil {
			cfg.Capture.TimeScale = v
		}
	}
}

// buildSource constructs the capture.Source for the configured mode and a
// cleanup func releasing whatever resources it opened.
func buildSource(cfg config.Config, log *zap.Logger) (capture.Source, func(), error) {
	noop := func() {}

	switch cfg.Capture.Mode {
	case config.ModeReplay:
		f, err := os.Open(cfg.Capture.DumpPath)
		if err != nil {
			return nil, noop, err
		}

		return capture.NewReplayer(f, cfg.Capture.TimeScale), func() { f.Close() }, nil //nolint:errcheck

	case config.ModeRecord:
		adapter, err := capture.NewUDPAdapter(cfg.Capture.Interface)
		if err != nil {
			return nil, noop, err
		}

		f, err := os.Create(cfg.Capture.DumpPath)
		if err != nil {
			adapter.Close() //nolint:errcheck
			return nil, noop, err
		}

		tee := capture.NewTeeSource(adapter, f)

		return tee, func() { adapter.Close(); f.Close() }, nil //nolint:errcheck

	default:
		log.Info("starting live capture", zap.String("interface", cfg.Capture.Interface))

		adapter, err := capture.NewUDPAdapter(cfg.Capture.Interface)
		if err != nil {
			return nil, noop, err
		}

		return adapter, func() { adapter.Close() }, nil //nolint:errcheck
	}
}

// serveHTTP mounts the prometheus exporter and the world snapshot contract
// (spec.md §6) on one listener, matching the teacher's single-exporter-
// per-process convention, until ctx is cancelled.
func serveHTTP(ctx context.Context, cfg config.Config, reg *metrics.Registry, tracker *session.Tracker, log *zap.Logger) {
	mux := http.NewServeMux()
	reg.ServeMux(mux)

	mux.HandleFunc("/snapshot", func(w http.ResponseWriter, r *http.Request) {
		sess := tracker.Current()
		if sess == nil {
			http.Error(w, "no active session", http.StatusServiceUnavailable)
			return
		}

		snap := types.BuildSnapshot(sess.World)

		body, err := snapshotJSON.Marshal(snap)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(body) //nolint:errcheck
	})

	srv := &http.Server{Addr: cfg.Metrics.Listen, Handler: mux}

	go func() {
		<-ctx.Done()
		srv.Close() //nolint:errcheck
	}()

	if err := srv.ListenAndServe(); err != nil && ctx.Err() == nil {
		log.Warn("http server exited", zap.Error(err))
	}
}

func fatal(msg string) {
	os.Stderr.WriteString(msg + "\n") //nolint:errcheck
	os.Exit(1)
}
