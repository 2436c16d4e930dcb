// Package main is the entry point of the clock controller.
package main

import (
	"context"
	"flag"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rpichess/clockd/pkg/ble"
	"github.com/rpichess/clockd/pkg/config"
	"github.com/rpichess/clockd/pkg/display"
	"github.com/rpichess/clockd/pkg/events"
	"github.com/rpichess/clockd/pkg/game"
	"github.com/rpichess/clockd/pkg/input"
	"github.com/rpichess/clockd/pkg/server"
)

// application encapsulates global dependencies
type application struct {
	Logger     *zap.Logger
	Config     *config.Config
	Controller *game.Controller
	Hub        *server.Hub
	Server     *http.Server

	StartTime time.Time

	cancelLoops context.CancelFunc
	closers     []func() error
}

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger := initLogger(*debug)
	defer logger.Sync()

	// The .env file is optional on the device; compiled defaults cover
	// the production wiring.
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file", zap.Error(err))
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("loading config error", zap.Error(err))
	}
	cfg.Debug = *debug

	clock := clockwork.NewRealClock()
	publisher := events.NewPublisher()
	controller := game.NewController(clock, publisher, logger)

	app := &application{
		Logger:     logger,
		Config:     cfg,
		Controller: controller,
		StartTime:  time.Now(),
	}

	// Display: a failed panel degrades to a dark clock, never a dead
	// clock.
	renderer, err := display.NewRenderer()
	if err != nil {
		logger.Fatal("load display fonts", zap.Error(err))
	}

	var sink display.Sink = display.NopSink{}
	if fb, err := display.NewFramebufferSink(cfg.FramebufferPath, cfg.DisplayRotation); err != nil {
		logger.Warn("display unavailable, running without panel", zap.Error(err))
	} else {
		sink = fb
		app.closers = append(app.closers, fb.Close)
	}

	sub := display.NewSubscriber(renderer, sink, logger)
	sub.Attach(publisher)

	// Buttons: a failed pin setup leaves the clock remote-controlled
	// only.
	reader, err := input.NewReader(cfg.WhiteButtonPin, cfg.BlackButtonPin, cfg.InvertButtons)
	if err != nil {
		logger.Warn("buttons unavailable", zap.Error(err))
		reader = nil
	} else {
		app.closers = append(app.closers, reader.Close)
	}

	// Wireless links: BLE in the field, websocket for development and
	// the health probe.
	app.Hub = server.NewHub(controller, publisher, logger)

	if link, err := ble.NewLink(cfg.AdvertisingName, controller, logger); err != nil {
		logger.Warn("BLE link unavailable", zap.Error(err))
	} else {
		app.closers = append(app.closers, link.Close)
	}

	ctx, cancel := context.WithCancel(context.Background())
	app.cancelLoops = cancel

	go controller.Run(ctx)
	if reader != nil {
		go input.NewWatcher(reader, controller, clock, logger).Run(ctx)
	}
	go app.Hub.Run()

	// First frame before any event arrives, so the idle banner shows
	// as soon as the process is up.
	sub.Draw(controller.Snapshot())

	logger.Info("chess clock controller running")

	if err := app.serve(); err != nil {
		logger.Fatal("error serving", zap.Error(err))
	}
}

func initLogger(debug bool) *zap.Logger {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	return logger
}

// Shutdown stops the loops and releases every acquired hardware
// resource, whatever the shutdown path was.
func (app *application) Shutdown() {
	if app.cancelLoops != nil {
		app.cancelLoops()
	}

	if app.Hub != nil {
		app.Hub.Shutdown()
	}

	for _, release := range app.closers {
		if err := release(); err != nil {
			app.Logger.Error("release resource", zap.Error(err))
		}
	}

	app.Logger.Info("All components shut down successfully")
}
