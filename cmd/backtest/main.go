package main

import (
	"context"
	"errors"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/solquant/solstice/internal/dbg"
	"github.com/solquant/solstice/pkg/audit"
	"github.com/solquant/solstice/pkg/bus"
	"github.com/solquant/solstice/pkg/common"
	"github.com/solquant/solstice/pkg/engine"
	"github.com/solquant/solstice/pkg/market"
	"github.com/solquant/solstice/pkg/market/duckdb"
	"github.com/solquant/solstice/pkg/market/historical"
	"github.com/solquant/solstice/pkg/market/synthetic"
	"github.com/solquant/solstice/pkg/middleware"
	"github.com/solquant/solstice/pkg/utility/fixed"
	"go.uber.org/zap"
)

const monitorFlags = middleware.MonitorOrderExpiries |
	middleware.MonitorOrderRejections |
	middleware.MonitorPositionsOpened |
	middleware.MonitorPositionsClosed

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	logger := dbg.NewDevLogger()
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	if err := run(*configPath, logger); err != nil {
		logger.Error("backtest failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("done")
}

func run(configPath string, logger *zap.Logger) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	start, end, err := cfg.Simulation.dateRange()
	if err != nil {
		return err
	}
	sequence, err := cfg.Simulation.triggerSequence()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store := market.NewMemoryStore()
	switch cfg.Data.Source {
	case "duckdb":
		reader := duckdb.NewReader(cfg.Data.DuckDB.DSN, cfg.Data.DuckDB.Table)
		if err := reader.Connect(); err != nil {
			return err
		}
		defer reader.Close()
		err := reader.LoadRange(ctx, start, end, func(bar common.DailyBar) error {
			store.Add(bar)
			return nil
		})
		if err != nil {
			return err
		}
	case "historical":
		source := historical.NewSource(cfg.Data.Historical.Path)
		if err := source.Open(); err != nil {
			return err
		}
		defer source.Close()
		if err := historical.LoadAll(source, store); err != nil {
			return err
		}
	case "synthetic":
		rng := rand.New(rand.NewSource(cfg.Data.Synthetic.Seed))
		gen := synthetic.NewBarGenerator(cfg.Data.Synthetic.Instrument, rng, start, end,
			cfg.Data.Synthetic.StartPrice, cfg.Data.Synthetic.Drift, cfg.Data.Synthetic.Volatility)
		gen.Fill(store)
	default:
		return errors.New("unknown data source " + cfg.Data.Source)
	}
	logger.Info("market data loaded",
		zap.String("source", cfg.Data.Source), zap.Int("bars", store.Len()))

	initialCash := fixed.FromFloat64(cfg.Simulation.InitialCash)

	router := bus.NewRouter(cfg.Simulation.EventCapacity)
	monitor := middleware.NewMonitor(monitorFlags)
	telemetry := middleware.NewTelemetry(logger)
	auditor := audit.NewAudit(initialCash)

	router.OnOrder = telemetry.WithOrder(monitor.WithOrder(middleware.NoopOrderHdl))
	router.OnOrderFill = telemetry.WithOrderFill(monitor.WithOrderFill(middleware.NoopOrderFilHdl))
	router.OnOrderExpiry = telemetry.WithOrderExpiry(monitor.WithOrderExpiry(middleware.NoopOrderExpHdl))
	router.OnOrderRejection = telemetry.WithOrderRejection(monitor.WithOrderRejection(middleware.NoopOrderRjcHdl))
	router.OnPositionOpen = telemetry.WithPositionOpen(monitor.WithPositionOpen(middleware.NoopPosOpnHdl))
	router.OnPositionClose = telemetry.WithPositionClose(monitor.WithPositionClose(auditor.OnPositionClose))
	router.OnAccount = telemetry.WithAccount(monitor.WithAccount(auditor.OnAccount))

	strategy := newBreakoutStrategy(store, cfg.Strategy)
	eng := engine.NewEngine(store, strategy, start, end, initialCash,
		engine.WithRouter(router),
		engine.WithTriggerSequence(sequence))

	done := router.ExecLoop(ctx, func() error {
		return eng.Step(ctx)
	})
	defer router.PrintStatistics()
	defer telemetry.PrintStatistics()

	if err := <-done; !errors.Is(err, engine.ErrDone) {
		return err
	}

	auditor.GenerateReport().Print(logger)
	return nil
}
