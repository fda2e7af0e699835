package stream

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func expectMessage(t *testing.T, client *Client, want string) {
	t.Helper()
	select {
	case msg := <-client.Send:
		if string(msg) != want {
			t.Fatalf("expected %q, got %q", want, msg)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timeout waiting for %q", want)
	}
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register("activity")
	defer hub.Unregister(client)
	other := hub.Register("other")
	defer hub.Unregister(other)

	hub.Broadcast("activity", []byte("hello"))
	expectMessage(t, client, "hello")

	select {
	case <-other.Send:
		t.Fatalf("other topic should not receive")
	default:
	}
}

func TestHubHelpers(t *testing.T) {
	ch := redisChannel("activity")
	if ch != "site:activity:events" {
		t.Fatalf("unexpected channel %q", ch)
	}
	if topicFromChannel(ch) != "activity" {
		t.Fatalf("unexpected topic")
	}
	if topicFromChannel("bad") != "" || topicFromChannel("tracking:x:broadcast") != "" {
		t.Fatalf("expected empty topic")
	}
}

func TestUnregisterClosesOnce(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register("activity")
	if hub.Subscribers("activity") != 1 {
		t.Fatalf("expected one subscriber")
	}
	hub.Unregister(client)
	hub.Unregister(client)
	if _, ok := <-client.Send; ok {
		t.Fatalf("expected channel closed")
	}
	if hub.Subscribers("activity") != 0 {
		t.Fatalf("expected no subscribers")
	}
}

func TestHubRedisDeliversOnce(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer rdb.Close()

	hub := NewHub(rdb)
	defer hub.Close()
	ws := hub.Register("activity")
	defer hub.Unregister(ws)

	hub.Broadcast("activity", []byte("ping"))
	expectMessage(t, ws, "ping")

	select {
	case msg := <-ws.Send:
		t.Fatalf("duplicate delivery %q", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubRedisFansOutAcrossInstances(t *testing.T) {
	s := miniredis.RunT(t)
	a := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer a.Close()
	b := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer b.Close()

	hubA := NewHub(a)
	defer hubA.Close()
	hubB := NewHub(b)
	defer hubB.Close()

	client := hubB.Register("activity")
	defer hubB.Unregister(client)

	hubA.Broadcast("activity", []byte("from-a"))
	expectMessage(t, client, "from-a")
}

func TestHubRedisUnavailableStaysLocal(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	s.Close()
	defer rdb.Close()

	hub := NewHub(rdb)
	client := hub.Register("activity")
	defer hub.Unregister(client)

	hub.Broadcast("activity", []byte("local"))
	expectMessage(t, client, "local")
}
