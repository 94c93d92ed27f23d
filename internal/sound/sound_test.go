package sound

import (
	"bytes"
	"errors"
	"testing"
)

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPlayWritesBells(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, true)
	p.Play(Match)
	p.Play(Win)
	if got := buf.String(); got != "\a\a\a\a\a" {
		t.Errorf("output = %q, want 5 bells", got)
	}
}

func TestEveryCueIsAudible(t *testing.T) {
	for _, cue := range []Cue{Flip, Match, Mismatch, Win, PowerUp} {
		var buf bytes.Buffer
		New(&buf, true).Play(cue)
		if buf.Len() == 0 {
			t.Errorf("cue %d wrote nothing", cue)
		}
	}
}

func TestFlipAndMismatchRing(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, true)
	p.Play(Flip)
	if buf.String() != "\a" {
		t.Errorf("flip output = %q", buf.String())
	}
	p.Play(Mismatch)
	if buf.String() != "\a\a" {
		t.Errorf("after mismatch output = %q", buf.String())
	}
}

func TestDisabledAndToggle(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, false)
	p.Play(Win)
	if buf.Len() != 0 {
		t.Fatalf("disabled player wrote %q", buf.String())
	}
	if !p.Toggle() {
		t.Fatal("Toggle should enable")
	}
	p.Play(Flip)
	if buf.String() != "\a" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWriteErrorsAreSwallowed(t *testing.T) {
	p := New(failWriter{}, true)
	p.Play(Win)
}

func TestNilPlayer(t *testing.T) {
	var p *Player
	p.Play(Win)
	if p.Enabled() || p.Toggle() {
		t.Error("nil player must report disabled")
	}
	if New(nil, true).Toggle() {
		t.Error("player without output cannot be enabled")
	}
}
