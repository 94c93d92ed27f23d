// Package analytics publishes fire-and-forget gameplay events.
package analytics

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// Event kinds.
const (
	EventGameStarted   = "game_started"
	EventGameCompleted = "game_completed"
	EventPowerUpUsed   = "powerup_used"
)

// Event is the JSON document published for each gameplay milestone.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	ClientID   string    `json:"client_id,omitempty"`
	GameID     string    `json:"game_id"`
	Difficulty string    `json:"difficulty,omitempty"`
	Theme      string    `json:"theme,omitempty"`
	Daily      bool      `json:"daily,omitempty"`
	Moves      int       `json:"moves,omitempty"`
	Seconds    int       `json:"seconds,omitempty"`
	PowerUp    string    `json:"powerup,omitempty"`
	At         time.Time `json:"at"`
}

// Publisher sends events. Implementations never block gameplay on delivery.
type Publisher interface {
	Publish(e Event) error
	Close()
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(Event) error { return nil }
func (Nop) Close()              {}

type conn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// NATS publishes events as JSON on a single subject.
type NATS struct {
	nc       conn
	subject  string
	clientID string
	now      func() time.Time
}

// Connect dials url. The connection retries in the background so a broker
// that is briefly down does not fail startup.
func Connect(url, subject, clientID string) (*NATS, error) {
	nc, err := nats.Connect(url,
		nats.Name("memora"),
		nats.Timeout(5*time.Second),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(5),
		nats.RetryOnFailedConnect(true),
	)
	if err != nil {
		return nil, fmt.Errorf("analytics.Connect: %w", err)
	}
	return newNATS(nc, subject, clientID), nil
}

func newNATS(nc conn, subject, clientID string) *NATS {
	return &NATS{nc: nc, subject: subject, clientID: clientID, now: time.Now}
}

// Publish stamps e with an id, the client id and a timestamp, then sends it.
func (p *NATS) Publish(e Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.ClientID == "" {
		e.ClientID = p.clientID
	}
	if e.At.IsZero() {
		e.At = p.now().UTC()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("analytics.Publish: %w", err)
	}
	if err := p.nc.Publish(p.subject, data); err != nil {
		return fmt.Errorf("analytics.Publish %s: %w", e.Type, err)
	}
	return nil
}

// Close flushes pending events and closes the connection.
func (p *NATS) Close() {
	if err := p.nc.Drain(); err != nil {
		log.Printf("analytics: drain: %v", err)
	}
}

// New returns a NATS publisher when url is set, otherwise Nop. A connection
// failure is logged and degrades to Nop.
func New(url, subject, clientID string) Publisher {
	if url == "" {
		return Nop{}
	}
	p, err := Connect(url, subject, clientID)
	if err != nil {
		log.Printf("analytics disabled: %v", err)
		return Nop{}
	}
	return p
}
