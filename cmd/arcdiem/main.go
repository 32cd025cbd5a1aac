// Command arcdiem drives an adaptive day/night clock face on a small
// monochrome panel, fed by phone notifications over MQTT.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/sweeney/arc-diem/internal/assets"
	"github.com/sweeney/arc-diem/internal/config"
	"github.com/sweeney/arc-diem/internal/display"
	"github.com/sweeney/arc-diem/internal/events"
	"github.com/sweeney/arc-diem/internal/face"
	"github.com/sweeney/arc-diem/internal/haptic"
	"github.com/sweeney/arc-diem/internal/logging"
	"github.com/sweeney/arc-diem/internal/metrics"
	"github.com/sweeney/arc-diem/internal/mqtt"
	"github.com/sweeney/arc-diem/internal/render"
	"github.com/sweeney/arc-diem/internal/status"
	"github.com/sweeney/arc-diem/internal/web"
)

// options are the command line flags.
type options struct {
	configPath string
	printFrame bool
	heartbeat  time.Duration

	broker   string
	httpAddr string
	driver   string
	out      string
	width    int
	height   int
	pin      int
	logLevel string
	logPath  string
	locale   string
	clock24  bool
}

func parseFlags(args []string, stderr io.Writer) (options, config.File, error) {
	fs := flag.NewFlagSet("arcdiem", flag.ContinueOnError)
	fs.SetOutput(stderr)

	def := config.DefaultFile()
	var o options
	fs.StringVar(&o.configPath, "config", "", "TOML configuration file (optional)")
	fs.BoolVar(&o.printFrame, "print-frame", false, "Render one frame to -out and exit")
	fs.DurationVar(&o.heartbeat, "heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	fs.StringVar(&o.broker, "broker", def.MQTT.Broker, "MQTT broker address")
	fs.StringVar(&o.httpAddr, "http", def.HTTP.Addr, "HTTP status address (empty to disable)")
	fs.StringVar(&o.driver, "display", def.Display.Driver, "Display driver: png, epaper or none")
	fs.StringVar(&o.out, "out", def.Display.Out, "PNG output path for the png driver")
	fs.IntVar(&o.width, "width", def.Display.Width, "Panel width in pixels")
	fs.IntVar(&o.height, "height", def.Display.Height, "Panel height in pixels")
	fs.IntVar(&o.pin, "haptic-pin", def.Haptic.Pin, "GPIO line of the vibration motor (0 to disable)")
	fs.StringVar(&o.logLevel, "log-level", def.Log.Level, "Log level: debug, info, warn or error")
	fs.StringVar(&o.logPath, "log-path", def.Log.Path, "Also append logs to this file")
	fs.StringVar(&o.locale, "locale", def.Clock.Locale, "Language for day and month names")
	fs.BoolVar(&o.clock24, "24h", def.Clock.Clock24, "Use a 24 hour clock")

	if err := fs.Parse(args); err != nil {
		return options{}, config.File{}, err
	}

	file := def
	if o.configPath != "" {
		var err error
		if file, err = config.LoadFile(o.configPath); err != nil {
			return options{}, config.File{}, err
		}
	}

	// Flags set on the command line override the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "broker":
			file.MQTT.Broker = o.broker
		case "http":
			file.HTTP.Addr = o.httpAddr
		case "display":
			file.Display.Driver = o.driver
		case "out":
			file.Display.Out = o.out
		case "width":
			file.Display.Width = o.width
		case "height":
			file.Display.Height = o.height
		case "haptic-pin":
			file.Haptic.Pin = o.pin
		case "log-level":
			file.Log.Level = o.logLevel
		case "log-path":
			file.Log.Path = o.logPath
		case "locale":
			file.Clock.Locale = o.locale
		case "24h":
			file.Clock.Clock24 = o.clock24
		}
	})
	if err := file.Validate(); err != nil {
		return options{}, config.File{}, err
	}
	return o, file, nil
}

func main() {
	o, file, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "arcdiem: %v\n", err)
		os.Exit(2)
	}

	logger, err := logging.New(os.Stdout, file.Log.Path, file.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "arcdiem: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()
	slog.SetDefault(logger.Logger)

	if o.printFrame {
		err = printFrame(file, time.Now())
	} else {
		err = run(o, file, logger.Logger)
	}
	if err != nil {
		logger.Error("fatal", "err", err)
		logger.Close()
		os.Exit(1)
	}
}

func run(o options, file config.File, log *slog.Logger) error {
	store := assets.NewStore()
	panel, err := openPanel(file.Display, log)
	if err != nil {
		return fmt.Errorf("init display: %w", err)
	}
	defer panel.Close()
	if err := store.Load(panel.Bounds().Size()); err != nil {
		return fmt.Errorf("load assets: %w", err)
	}
	defer store.Release()

	var vibrator haptic.Vibrator
	if file.Haptic.Pin > 0 {
		m, err := haptic.NewMotorVibrator(file.Haptic.Chip, file.Haptic.Pin, log)
		if err != nil {
			return fmt.Errorf("init haptic: %w", err)
		}
		defer m.Close()
		vibrator = m
	}

	client, err := mqtt.NewRealClient(mqtt.Options{
		Broker:   file.MQTT.Broker,
		ClientID: file.MQTT.ClientID,
		Topics:   mqtt.NewTopics(file.MQTT.TopicPrefix),
		Logger:   log,
	})
	if err != nil {
		return fmt.Errorf("init mqtt: %w", err)
	}
	defer client.Close()

	opts := face.Options{
		Settings: file.Settings,
		Locale:   file.Clock.Locale,
		Clock24:  file.Clock.Clock24,
		Vibrator: vibrator,
		Notifier: client,
		Logger:   log.With("component", "face"),
	}
	f, err := face.New(opts)
	if err != nil {
		return fmt.Errorf("init face: %w", err)
	}

	tracker := status.NewTracker(time.Now(), status.Config{
		Broker:      file.MQTT.Broker,
		TopicPrefix: file.MQTT.TopicPrefix,
		HTTPAddr:    file.HTTP.Addr,
		Display:     file.Display.Driver,
		Locale:      file.Clock.Locale,
	})
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	l := &loop{
		face:       f,
		dispatcher: events.NewDispatcher(),
		store:      config.NewStore(file.Settings),
		source:     client,
		publisher:  client,
		mqttStatus: client,
		panel:      panel,
		bitmaps:    store,
		tracker:    tracker,
		metrics:    metrics.New(reg, tracker),
		log:        log,
		now:        time.Now,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if file.HTTP.Addr != "" {
		srv := web.New(file.HTTP.Addr, tracker, reg)
		g.Go(func() error {
			log.Info("http status server listening", "addr", file.HTTP.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer scancel()
			return srv.Shutdown(sctx)
		})
	}

	var heartbeat <-chan time.Time
	if o.heartbeat > 0 {
		t := time.NewTicker(o.heartbeat)
		defer t.Stop()
		heartbeat = t.C
	}

	log.Info("started",
		"broker", file.MQTT.Broker,
		"display", file.Display.Driver,
		"size", panel.Bounds().Size().String(),
		"haptic_pin", file.Haptic.Pin,
		"locale", file.Clock.Locale,
		"heartbeat", o.heartbeat,
	)

	g.Go(func() error {
		defer cancel()
		return l.run(gctx, minuteTicker(gctx, time.Now), heartbeat, sigCh)
	})
	return g.Wait()
}

func openPanel(d config.Display, log *slog.Logger) (display.Panel, error) {
	switch d.Driver {
	case config.DriverPNG:
		return display.NewPNGPanel(d.Out, d.Width, d.Height)
	case config.DriverEPaper:
		return display.OpenEPaper(log)
	default:
		return display.NewNopPanel(d.Width, d.Height), nil
	}
}

// printFrame renders the face for now with the configured settings and
// writes it to the png output.
func printFrame(file config.File, now time.Time) error {
	f, err := face.New(face.Options{
		Settings: file.Settings,
		Locale:   file.Clock.Locale,
		Clock24:  file.Clock.Clock24,
	})
	if err != nil {
		return fmt.Errorf("init face: %w", err)
	}
	size := image.Pt(file.Display.Width, file.Display.Height)
	store := assets.NewStore()
	if err := store.Load(size); err != nil {
		return fmt.Errorf("load assets: %w", err)
	}
	defer store.Release()

	panel, err := display.NewPNGPanel(file.Display.Out, size.X, size.Y)
	if err != nil {
		return fmt.Errorf("init display: %w", err)
	}
	surface := render.NewRaster(size.X, size.Y, store)
	f.Draw(surface, now)
	if err := panel.Show(surface.Image()); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	fmt.Printf("wrote %s (%dx%d)\n", panel.Path(), size.X, size.Y)
	return nil
}
