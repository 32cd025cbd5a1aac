package mqtt

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "github.com/BrandonKowalski/certifiable" // Add CA certificates to the default trust store
	paho "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/atomic"

	"github.com/sweeney/arc-diem/internal/logic"
)

// DefaultBufferSize is the number of outbound messages kept while the
// broker is unreachable.
const DefaultBufferSize = 64

// Options configure a RealClient.
type Options struct {
	Broker     string
	ClientID   string
	Topics     Topics
	BufferSize int
	Logger     *slog.Logger
}

// RealClient is the broker-backed Source and Publisher.
type RealClient struct {
	client paho.Client
	topics Topics
	log    *slog.Logger

	battery    chan logic.BatteryState
	connection chan bool
	settings   chan []byte
	done       chan struct{}
	closeOnce  sync.Once

	mu        sync.Mutex
	buf       *ringBuffer
	peek      bool
	peekKnown bool

	online   *atomic.Bool
	received *atomic.Uint64
	rejected *atomic.Uint64
}

var (
	_ Source           = (*RealClient)(nil)
	_ Publisher        = (*RealClient)(nil)
	_ ConnectionStatus = (*RealClient)(nil)
)

// NewRealClient connects to the broker and subscribes to the inbound
// topics. Subscriptions are renewed on every reconnect and messages
// published while offline are replayed.
func NewRealClient(o Options) (*RealClient, error) {
	if o.Broker == "" {
		return nil, errors.New("mqtt: broker is required")
	}
	o = o.withDefaults()
	c := newRealClient(o)

	will, err := FormatSystemPayload(SystemEvent{Timestamp: time.Now(), Event: "OFFLINE"})
	if err != nil {
		return nil, fmt.Errorf("format will: %w", err)
	}

	opts := paho.NewClientOptions().
		AddBroker(o.Broker).
		SetClientID(o.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5*time.Second).
		SetWill(o.Topics.System, string(will), 1, true).
		SetOnConnectHandler(c.onConnect).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			c.online.Store(false)
			c.log.Warn("connection lost", "err", err)
		})

	c.client = paho.NewClient(opts)
	token := c.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}
	return c, nil
}

func (o Options) withDefaults() Options {
	if o.ClientID == "" {
		o.ClientID = DefaultClientID()
	}
	if o.Topics == (Topics{}) {
		o.Topics = NewTopics(DefaultPrefix)
	}
	if o.BufferSize <= 0 {
		o.BufferSize = DefaultBufferSize
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// newRealClient builds the client state without a broker connection.
func newRealClient(o Options) *RealClient {
	c := &RealClient{
		topics:     o.Topics,
		log:        o.Logger.With("component", "mqtt"),
		battery:    make(chan logic.BatteryState, 8),
		connection: make(chan bool, 8),
		settings:   make(chan []byte, 8),
		done:       make(chan struct{}),
		buf:        newRingBuffer(o.BufferSize),
		online:     atomic.NewBool(false),
		received:   atomic.NewUint64(0),
		rejected:   atomic.NewUint64(0),
	}
	c.buf.log = c.log
	return c
}

func (c *RealClient) onConnect(client paho.Client) {
	c.online.Store(true)
	subs := map[string]byte{
		c.topics.Battery:    1,
		c.topics.Connection: 1,
		c.topics.Settings:   1,
	}
	token := client.SubscribeMultiple(subs, c.route)
	if token.WaitTimeout(5*time.Second) && token.Error() != nil {
		c.log.Error("subscribe failed", "err", token.Error())
	}

	c.mu.Lock()
	pending := c.buf.drainAll()
	c.mu.Unlock()
	if len(pending) > 0 {
		c.log.Info("replaying buffered messages", "count", len(pending))
	}
	for _, m := range pending {
		client.Publish(m.topic, m.qos, m.retained, m.payload)
	}
	c.log.Info("connected", "battery", c.topics.Battery, "connection", c.topics.Connection, "settings", c.topics.Settings)
}

func (c *RealClient) route(_ paho.Client, msg paho.Message) {
	c.received.Inc()
	if err := c.handle(msg.Topic(), msg.Payload()); err != nil {
		c.rejected.Inc()
		c.log.Warn("dropping message", "topic", msg.Topic(), "err", err)
	}
}

func (c *RealClient) handle(topic string, payload []byte) error {
	switch topic {
	case c.topics.Battery:
		s, err := ParseBattery(payload)
		if err != nil {
			return err
		}
		select {
		case c.battery <- s:
		case <-c.done:
		}
	case c.topics.Connection:
		connected, err := ParseConnection(payload)
		if err != nil {
			return err
		}
		c.mu.Lock()
		c.peek, c.peekKnown = connected, true
		c.mu.Unlock()
		select {
		case c.connection <- connected:
		case <-c.done:
		}
	case c.topics.Settings:
		if err := ValidateSettings(payload); err != nil {
			return err
		}
		data := append([]byte(nil), payload...)
		select {
		case c.settings <- data:
		case <-c.done:
		}
	default:
		return fmt.Errorf("unexpected topic %q", topic)
	}
	return nil
}

func (c *RealClient) Battery() <-chan logic.BatteryState { return c.battery }
func (c *RealClient) Connection() <-chan bool            { return c.connection }
func (c *RealClient) Settings() <-chan []byte            { return c.settings }

// PeekConnected returns the last connection value seen on the broker,
// even if it has not yet been read from Connection.
func (c *RealClient) PeekConnected() (connected, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.peek, c.peekKnown
}

// IsConnected reports whether the broker connection is up.
func (c *RealClient) IsConnected() bool {
	return c.online.Load()
}

// Received returns the number of inbound messages and how many of them
// were rejected.
func (c *RealClient) Received() (total, rejected uint64) {
	return c.received.Load(), c.rejected.Load()
}

// PublishSystem sends a system lifecycle event to the MQTT broker.
func (c *RealClient) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	// QoS 1 (at-least-once) for lifecycle events
	return c.publish(c.topics.System, 1, event.Retained, payload)
}

// PublishHaptic announces a fired haptic pattern.
func (c *RealClient) PublishHaptic(at time.Time, p logic.Pattern) error {
	payload, err := FormatHapticPayload(at, p)
	if err != nil {
		return fmt.Errorf("format haptic payload: %w", err)
	}
	return c.publish(c.topics.Haptic, 0, false, payload)
}

func (c *RealClient) publish(topic string, qos byte, retained bool, payload []byte) error {
	if !c.client.IsConnectionOpen() {
		c.mu.Lock()
		c.buf.push(bufferedMsg{topic: topic, payload: payload, qos: qos, retained: retained})
		c.mu.Unlock()
		return nil
	}
	token := c.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish %s timeout", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Close disconnects from the broker. Pending channel sends are released.
func (c *RealClient) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		c.client.Disconnect(1000) // 1 second timeout
		c.online.Store(false)
	})
	return nil
}
