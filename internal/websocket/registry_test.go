package websocket

import "testing"

func TestRegistrySetGetDelete(t *testing.T) {
	registry := NewRegistry()
	client := newWSClient(nil, "c1")

	if _, ok := registry.Get(client); ok {
		t.Fatal("expected no entry for fresh client")
	}

	registry.Set(client, ClientInfo{Username: "alice"})
	info, ok := registry.Get(client)
	if !ok || info.Username != "alice" || info.RoomID != "" {
		t.Fatalf("unexpected info %#v ok=%v", info, ok)
	}

	// join_room replaces the whole entry
	registry.Set(client, ClientInfo{Username: "alice", RoomID: "room1"})
	info, _ = registry.Get(client)
	if info.RoomID != "room1" {
		t.Fatalf("expected room1, got %q", info.RoomID)
	}

	registry.Delete(client)
	if _, ok := registry.Get(client); ok {
		t.Fatal("expected entry gone after delete")
	}
	if registry.Len() != 0 {
		t.Fatalf("expected empty registry, len=%d", registry.Len())
	}

	// deleting twice is harmless
	registry.Delete(client)
}
