package game

import (
	"sync"
	"testing"
)

type recordedEvent struct {
	kind   string // broadcast, except, direct
	roomID string
	target string
	event  string
	data   any
}

// fakeNotifier records outbound notifications for assertions. It must be
// safe for concurrent use: the simulation loop emits from its own goroutine.
type fakeNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (f *fakeNotifier) Broadcast(roomID string, event string, data any) {
	f.record(recordedEvent{kind: "broadcast", roomID: roomID, event: event, data: data})
}

func (f *fakeNotifier) BroadcastExcept(roomID string, exceptID string, event string, data any) {
	f.record(recordedEvent{kind: "except", roomID: roomID, target: exceptID, event: event, data: data})
}

func (f *fakeNotifier) Send(connID string, event string, data any) {
	f.record(recordedEvent{kind: "direct", target: connID, event: event, data: data})
}

func (f *fakeNotifier) record(e recordedEvent) {
	f.mu.Lock()
	f.events = append(f.events, e)
	f.mu.Unlock()
}

func (f *fakeNotifier) byEvent(event string) []recordedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []recordedEvent
	for _, e := range f.events {
		if e.event == event {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeNotifier) count(event string) int {
	return len(f.byEvent(event))
}

// setupRoom creates a registry with one room and the given players. The
// first player is the creator and host.
func setupRoom(t *testing.T, roomID string, players ...string) (*Registry, *Room, *fakeNotifier) {
	t.Helper()

	notifier := &fakeNotifier{}
	registry := NewRegistry(notifier)

	room, err := registry.Create(roomID, players[0], players[0])
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	for _, p := range players[1:] {
		if _, err := registry.Join(roomID, p, p); err != nil {
			t.Fatalf("Join failed: %v", err)
		}
	}
	t.Cleanup(room.close)
	return registry, room, notifier
}

// advanceToBuilding walks the room to the building phase on the volcano
// scenario.
func advanceToBuilding(t *testing.T, room *Room) {
	t.Helper()

	scenario, ok := FindScenario("volcano")
	if !ok {
		t.Fatal("volcano scenario missing from catalog")
	}
	room.StartScenarioSelection(room.Host)
	room.SelectScenario(room.Host, scenario)
	if room.State().Phase != PhaseBuilding {
		t.Fatalf("expected building phase, got %s", room.State().Phase)
	}
}

// advanceToPlaying walks the room through item selection into play.
func advanceToPlaying(t *testing.T, room *Room) {
	t.Helper()

	advanceToBuilding(t, room)
	room.StartRound(room.Host)
	snap := room.State()
	for id := range snap.Players {
		room.MarkItemPlaced(id)
	}
	if room.State().Phase != PhasePlaying {
		t.Fatalf("expected playing phase, got %s", room.State().Phase)
	}
}
