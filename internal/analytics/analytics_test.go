package analytics

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeConn struct {
	subject string
	data    [][]byte
	err     error
	drained bool
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.subject = subject
	f.data = append(f.data, data)
	return nil
}

func (f *fakeConn) Drain() error {
	f.drained = true
	return nil
}

func TestPublishStampsEvent(t *testing.T) {
	fc := &fakeConn{}
	p := newNATS(fc, "memora.events", "install-1")
	fixed := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	if err := p.Publish(Event{Type: EventGameCompleted, GameID: "g1", Moves: 9, Seconds: 42}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if fc.subject != "memora.events" {
		t.Errorf("subject = %q", fc.subject)
	}
	if len(fc.data) != 1 {
		t.Fatalf("published %d messages, want 1", len(fc.data))
	}

	var got Event
	if err := json.Unmarshal(fc.data[0], &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, err := uuid.Parse(got.ID); err != nil {
		t.Errorf("id %q is not a uuid: %v", got.ID, err)
	}
	if got.ClientID != "install-1" {
		t.Errorf("client_id = %q", got.ClientID)
	}
	if !got.At.Equal(fixed) {
		t.Errorf("at = %v, want %v", got.At, fixed)
	}
	if got.Type != EventGameCompleted || got.Moves != 9 || got.Seconds != 42 {
		t.Errorf("event = %+v", got)
	}
}

func TestPublishError(t *testing.T) {
	p := newNATS(&fakeConn{err: errors.New("nats: connection closed")}, "s", "")
	if err := p.Publish(Event{Type: EventPowerUpUsed}); err == nil {
		t.Fatal("expected error")
	}
}

func TestCloseDrains(t *testing.T) {
	fc := &fakeConn{}
	newNATS(fc, "s", "").Close()
	if !fc.drained {
		t.Error("Close did not drain")
	}
}

func TestNewWithoutURLIsNop(t *testing.T) {
	p := New("", "memora.events", "id")
	if _, ok := p.(Nop); !ok {
		t.Fatalf("New(\"\") = %T, want Nop", p)
	}
	if err := p.Publish(Event{Type: EventGameStarted}); err != nil {
		t.Errorf("Nop.Publish: %v", err)
	}
	p.Close()
}
