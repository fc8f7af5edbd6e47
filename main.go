package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pthm-cable/stormglass/config"
	"github.com/pthm-cable/stormglass/game"
	"github.com/pthm-cable/stormglass/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	condition := flag.String("condition", "", "Weather condition (empty = use config)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "Noise/RNG seed (0 = use config)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	unpaced := flag.Bool("unpaced", false, "Run ticks back to back instead of pacing to target FPS")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	condName := cfg.Weather.Condition
	if *condition != "" {
		condName = *condition
	}
	cond, err := game.ParseCondition(condName)
	if err != nil {
		slog.Error("invalid condition", "error", err)
		os.Exit(1)
	}

	// Use config stats window if not overridden by CLI
	statsWindowSec := cfg.Telemetry.StatsWindowSec
	if *statsWindow > 0 {
		statsWindowSec = *statsWindow
	}

	sim, err := game.NewSimulation(cfg, cond, *seed)
	if err != nil {
		slog.Error("failed to build simulation", "error", err)
		os.Exit(1)
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to set up output", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	feedSeed := *seed
	if feedSeed == 0 {
		feedSeed = cfg.Noise.Seed
	}
	feed := game.NewWeatherFeed(sim.Slot(), cfg, feedSeed)
	go feed.Run(ctx)

	slog.Info("starting simulation",
		"condition", cond.String(),
		"seed", feedSeed,
		"target_fps", cfg.Screen.TargetFPS,
		"max_particles", cfg.Physics.MaxParticles,
		"max_ticks", *maxTicks,
	)

	run(ctx, sim, output, runOptions{
		targetFrame:    cfg.Derived.TargetFrame,
		statsWindowSec: statsWindowSec,
		logStats:       *logStats,
		maxTicks:       *maxTicks,
		unpaced:        *unpaced,
	})

	slog.Info("simulation finished",
		"ticks", sim.Tick(),
		"stats", sim.Stats(),
	)
}

type runOptions struct {
	targetFrame    time.Duration
	statsWindowSec float64
	logStats       bool
	maxTicks       int
	unpaced        bool
}

// run drives the fixed-timestep loop: step, record the frame, emit
// telemetry, sleep out the remainder of the frame budget.
func run(ctx context.Context, sim *game.Simulation, output *telemetry.OutputManager, opts runOptions) {
	windowTicks := int64(opts.statsWindowSec * float64(time.Second) / float64(opts.targetFrame))
	if windowTicks < 1 {
		windowTicks = 1
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		start := time.Now()
		if err := sim.Step(); err != nil {
			slog.Error("step failed", "error", err, "tick", sim.Tick())
			return
		}
		frame := time.Since(start)
		sim.RecordFrame(frame)

		publishStart := time.Now()
		if err := output.WriteFrame(sim.FrameRecord(frame)); err != nil {
			slog.Error("frame output failed", "error", err)
			return
		}
		sim.Perf().AddPhase(telemetry.PhasePublish, time.Since(publishStart))

		if sim.Tick()%windowTicks == 0 {
			window := sim.Stats().Window(sim.Tick(), sim.Budget().Quality())
			if err := output.WriteWindow(window); err != nil {
				slog.Error("window output failed", "error", err)
				return
			}
			perfStats := sim.Perf().Stats()
			if err := output.WritePerf(perfStats, sim.Tick()); err != nil {
				slog.Error("perf output failed", "error", err)
				return
			}
			if opts.logStats {
				slog.Info("window",
					"tick", sim.Tick(),
					"particles", sim.Particles().Size(),
					"quality", sim.Budget().Quality(),
					"render", sim.Stats(),
					"perf", perfStats,
				)
			}
		}

		if opts.maxTicks > 0 && int(sim.Tick()) >= opts.maxTicks {
			slog.Info("max ticks reached", "tick", sim.Tick())
			return
		}

		if !opts.unpaced {
			if remaining := opts.targetFrame - frame; remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
}
