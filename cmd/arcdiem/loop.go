package main

import (
	"context"
	"log/slog"
	"os"
	"syscall"
	"time"

	"github.com/sweeney/arc-diem/internal/config"
	"github.com/sweeney/arc-diem/internal/display"
	"github.com/sweeney/arc-diem/internal/events"
	"github.com/sweeney/arc-diem/internal/face"
	"github.com/sweeney/arc-diem/internal/metrics"
	"github.com/sweeney/arc-diem/internal/mqtt"
	"github.com/sweeney/arc-diem/internal/render"
	"github.com/sweeney/arc-diem/internal/status"
)

// loop owns the face and everything that feeds or observes it. All
// fields are used from the loop goroutine only, except tracker and
// metrics which are safe for concurrent readers.
type loop struct {
	face       *face.Face
	dispatcher *events.Dispatcher
	store      *config.Store
	source     mqtt.Source
	publisher  mqtt.Publisher
	mqttStatus mqtt.ConnectionStatus
	panel      display.Panel
	bitmaps    render.Bitmaps
	tracker    *status.Tracker
	metrics    *metrics.Metrics
	log        *slog.Logger
	now        func() time.Time

	subs     []events.Subscription
	storeSub config.Subscription
}

// subscribe connects the face handlers to the dispatcher and the settings
// store to the dispatcher.
func (l *loop) subscribe() {
	l.subs = []events.Subscription{
		l.dispatcher.Subscribe(events.Tick, func(e events.Event) {
			l.face.HandleTick(e.Time)
		}),
		l.dispatcher.Subscribe(events.BatteryChanged, func(e events.Event) {
			l.face.HandleBattery(e.Battery)
		}),
		l.dispatcher.Subscribe(events.ConnectivityChanged, func(e events.Event) {
			l.face.HandleConnectivity(e.Time, e.Connected)
		}),
		l.dispatcher.Subscribe(events.SettingsChanged, func(e events.Event) {
			l.face.HandleSettings(e.Time, e.Settings, l.source.PeekConnected)
		}),
	}
	l.storeSub = l.store.Subscribe(func(s config.Settings) {
		l.dispatcher.Dispatch(events.NewSettings(l.now(), s))
	})
}

// unsubscribe removes every handler registered by subscribe.
func (l *loop) unsubscribe() {
	l.store.Unsubscribe(l.storeSub)
	for _, s := range l.subs {
		l.dispatcher.Unsubscribe(s)
	}
	l.subs = nil
}

// run handles events until a signal arrives or ctx is cancelled. It
// publishes STARTUP before the first frame and SHUTDOWN on the way out.
// A nil heartbeat channel disables heartbeats.
func (l *loop) run(ctx context.Context, tick, heartbeat <-chan time.Time, sig <-chan os.Signal) error {
	l.subscribe()
	defer l.unsubscribe()

	l.publishStatus("STARTUP", "", true)
	l.redraw()

	for {
		select {
		case s := <-sig:
			l.log.Info("shutting down", "signal", s.String())
			l.publishStatus("SHUTDOWN", signalName(s), true)
			return nil

		case <-ctx.Done():
			l.log.Info("shutting down", "reason", "context")
			l.publishStatus("SHUTDOWN", "CANCELLED", true)
			return nil

		case <-tick:
			l.dispatcher.Dispatch(events.NewTick(l.now()))

		case <-heartbeat:
			l.refresh()
			l.publishStatus("HEARTBEAT", "", false)
			continue

		case b := <-l.source.Battery():
			l.dispatcher.Dispatch(events.NewBattery(l.now(), b))

		case c := <-l.source.Connection():
			l.dispatcher.Dispatch(events.NewConnectivity(l.now(), c))

		case data := <-l.source.Settings():
			// Apply notifies the store subscriber, which dispatches.
			if _, err := l.store.Apply(data); err != nil {
				l.log.Warn("settings rejected", "err", err)
				l.metrics.IncrementSettingsRejected()
			}
		}
		l.redraw()
	}
}

// redraw renders and shows a frame if any layer is dirty. The tracker is
// refreshed either way.
func (l *loop) redraw() {
	now := l.now()
	if l.face.Dirty() != face.LayerNone {
		start := time.Now()
		b := l.panel.Bounds()
		surface := render.NewRaster(b.Dx(), b.Dy(), l.bitmaps)
		dirty := l.face.Dirty()
		l.face.Draw(surface, now)
		img := surface.Image()

		if err := l.panel.Show(img); err != nil {
			l.log.Error("show frame failed", "err", err)
			l.metrics.IncrementShowErrors()
		}
		if png, err := display.EncodePNG(img); err != nil {
			l.log.Error("encode frame failed", "err", err)
		} else {
			l.tracker.SetFrame(png, now)
		}
		if len(surface.Missing) > 0 {
			l.log.Warn("missing bitmaps", "icons", surface.Missing)
		}
		l.metrics.ObserveDraw(start)
		l.log.Debug("redraw", "layers", dirty.String(), "took", time.Since(start))
	}
	l.refresh()
}

// refresh copies the current state into the tracker.
func (l *loop) refresh() {
	l.tracker.Update(l.face.Snapshot(l.now()))
	if l.mqttStatus != nil {
		l.tracker.SetMQTTConnected(l.mqttStatus.IsConnected())
	}
	byKind := make(map[string]uint64)
	for _, k := range events.Kinds() {
		byKind[k.String()] = l.dispatcher.Count(k)
	}
	l.tracker.SetEvents(status.EventCounts{
		Dispatched: l.dispatcher.Dispatched(),
		Delivered:  l.dispatcher.Delivered(),
		ByKind:     byKind,
	})
}

func (l *loop) publishStatus(event, reason string, retained bool) {
	l.refresh()
	snap := l.tracker.Snapshot()
	err := l.publisher.PublishSystem(mqtt.SystemEvent{
		Timestamp:  l.now(),
		Event:      event,
		Reason:     reason,
		Retained:   retained,
		RawPayload: status.FormatStatusEvent(snap, event, reason),
	})
	if err != nil {
		l.log.Error("publish system event failed", "event", event, "err", err)
		return
	}
	l.log.Info("published system event", "event", event)
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	default:
		return "UNKNOWN"
	}
}

// minuteTicker sends on the returned channel at every wall-clock minute
// boundary until ctx is done. A slow receiver misses ticks rather than
// queueing them.
func minuteTicker(ctx context.Context, now func() time.Time) <-chan time.Time {
	ch := make(chan time.Time, 1)
	go func() {
		for {
			t := time.NewTimer(untilNextMinute(now()))
			select {
			case <-ctx.Done():
				t.Stop()
				return
			case at := <-t.C:
				select {
				case ch <- at:
				default:
				}
			}
		}
	}()
	return ch
}

// untilNextMinute returns the time from now to the next hh:mm:00.
func untilNextMinute(now time.Time) time.Duration {
	next := now.Truncate(time.Minute).Add(time.Minute)
	return next.Sub(now)
}
