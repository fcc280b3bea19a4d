package chat

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/ecocoleta/ecocoleta-backend/internal/dto"
	"github.com/google/uuid"
)

// fakeSession records broadcast frames and can simulate a dead socket.
type fakeSession struct {
	frames [][]byte
	fail   bool
}

func (f *fakeSession) WriteMessage(messageType int, data []byte) error {
	if f.fail {
		return errors.New("connection closed")
	}
	f.frames = append(f.frames, data)
	return nil
}

func event(text string) dto.ChatEvent {
	return dto.ChatEvent{
		Event: "chat_message",
		Data:  dto.ChatMessageData{ID: uuid.New(), User: "Ana", Text: text},
	}
}

func TestBroadcastReachesAllSessions(t *testing.T) {
	hub := NewHub()
	a, b := &fakeSession{}, &fakeSession{}
	hub.Register(a)
	hub.Register(b)

	hub.Broadcast(event("hello"))

	for name, s := range map[string]*fakeSession{"a": a, "b": b} {
		if len(s.frames) != 1 {
			t.Fatalf("session %s got %d frames, want 1", name, len(s.frames))
		}
		var evt dto.ChatEvent
		if err := json.Unmarshal(s.frames[0], &evt); err != nil {
			t.Fatalf("session %s got an unparseable frame: %v", name, err)
		}
		if evt.Event != "chat_message" || evt.Data.Text != "hello" {
			t.Errorf("session %s got %+v", name, evt)
		}
	}
}

func TestBroadcastDropsDeadSessions(t *testing.T) {
	hub := NewHub()
	alive, dead := &fakeSession{}, &fakeSession{fail: true}
	hub.Register(alive)
	hub.Register(dead)

	hub.Broadcast(event("first"))
	if hub.Count() != 1 {
		t.Fatalf("dead session not dropped: count = %d", hub.Count())
	}

	// The survivor keeps receiving.
	hub.Broadcast(event("second"))
	if len(alive.frames) != 2 {
		t.Errorf("alive session got %d frames, want 2", len(alive.frames))
	}
}

func TestUnregisterStopsDelivery(t *testing.T) {
	hub := NewHub()
	s := &fakeSession{}
	hub.Register(s)
	hub.Unregister(s)

	hub.Broadcast(event("gone"))
	if len(s.frames) != 0 {
		t.Errorf("unregistered session still received %d frames", len(s.frames))
	}
}

func TestClosedHubRejectsRegistrations(t *testing.T) {
	hub := NewHub()
	hub.Register(&fakeSession{})
	hub.Close()
	if hub.Count() != 0 {
		t.Errorf("close left %d sessions", hub.Count())
	}

	hub.Register(&fakeSession{})
	if hub.Count() != 0 {
		t.Error("closed hub accepted a registration")
	}
}
