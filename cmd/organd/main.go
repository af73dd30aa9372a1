package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/danmuck/organctl/internal/capability"
	"github.com/danmuck/organctl/internal/config"
	"github.com/danmuck/organctl/internal/kernel"
	"github.com/danmuck/organctl/internal/memory"
	"github.com/danmuck/organctl/internal/observability"
	"github.com/danmuck/organctl/internal/organism"
	"github.com/danmuck/organctl/internal/server"
	"github.com/danmuck/organctl/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "organd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to organd.toml")
	flag.Parse()

	logger := observability.InitLogger("organd")

	cfg := config.DefaultConfig()
	cfg.ApplyEnv()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	topo := organism.SampleTopology()
	caps := capability.NewRegistry()
	capability.SeedFromTopology(caps, topo)

	store := organism.NewStore(topo)
	snapshots := telemetry.NewSnapshotStore()
	mem := memory.NewStore()

	var provider telemetry.Provider
	if cfg.TelemetryMode == telemetry.ModeReal {
		provider = telemetry.NewHost()
	} else {
		provider = telemetry.NewSimulated(cfg.SimLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Listener bind failure is the only fatal startup condition; it
	// must surface before the scheduler starts.
	srv := server.New(cfg.ListenAddr, cfg.CorsOrigins, store, snapshots, mem)
	if err := srv.Start(runCtx); err != nil {
		return err
	}

	bus := kernel.NewBus(cfg.TelemetryMode, cfg.SimLevel, cfg.LogFilter)
	sched := kernel.NewScheduler(cfg.PollInterval, bus)
	sched.Register(kernel.NewHeartbeatDaemon(cfg.HeartbeatInterval))
	sched.Register(kernel.NewStatusDaemon(cfg.StatusInterval, provider, store, snapshots))
	sched.Register(kernel.NewAIDaemon(cfg.AIInterval, mem))
	sched.Register(kernel.NewSimDaemon(cfg.SimInterval, store))
	sched.Register(kernel.NewCommandDaemon(kernel.ReadCommands(os.Stdin),
		store, snapshots, mem, caps, cfg.StatePath, cancel))

	logger.Info().
		Str("telemetry", cfg.TelemetryMode.String()).
		Str("sim_level", cfg.SimLevel.String()).
		Str("listen", cfg.ListenAddr).
		Msg("kernel_online")
	bus.Emit(kernel.PulseCommand, "runtime", "kernel online; type 'help' for commands")

	sched.Run(runCtx)
	return nil
}
