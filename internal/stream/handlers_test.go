package stream

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/websocket"
)

func allow(c *fiber.Ctx) error { return c.Next() }

func serve(t *testing.T, app *fiber.App) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen error: %v", err)
	}
	go func() {
		_ = app.Listener(ln)
	}()
	t.Cleanup(func() { _ = app.Shutdown() })
	return ln.Addr().String()
}

func waitForSubscribers(t *testing.T, hub *Hub, topic string, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for hub.Subscribers(topic) != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d subscribers on %s, got %d", n, topic, hub.Subscribers(topic))
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStreamHandlersUpgradeRequired(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/admin"), NewHub(nil), allow)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/ws", nil))
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode != http.StatusUpgradeRequired {
		t.Fatalf("expected 426, got %d", resp.StatusCode)
	}
}

func TestStreamHandlersRequireAuth(t *testing.T) {
	app := fiber.New()
	deny := func(c *fiber.Ctx) error { return fiber.ErrUnauthorized }
	RegisterRoutes(app.Group("/admin"), NewHub(nil), deny)

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/admin/ws", nil))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestStreamHandlersWebsocketBroadcast(t *testing.T) {
	hub := NewHub(nil)
	app := fiber.New()
	RegisterRoutes(app.Group("/admin"), hub, allow)
	addr := serve(t, app)

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+"/admin/ws", nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()
	waitForSubscribers(t, hub, DefaultTopic, 1)

	hub.Broadcast(DefaultTopic, []byte("hello"))
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if string(msg) != "hello" {
		t.Fatalf("unexpected message %q", msg)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("ignored")); err != nil {
		t.Fatalf("write error: %v", err)
	}
}

func TestStreamHandlersTopicParam(t *testing.T) {
	hub := NewHub(nil)
	app := fiber.New()
	RegisterRoutes(app.Group("/admin"), hub, allow)
	addr := serve(t, app)

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+"/admin/ws/reviews", nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()
	waitForSubscribers(t, hub, "reviews", 1)
}

func TestStreamHandlersCloseUnregisters(t *testing.T) {
	hub := NewHub(nil)
	app := fiber.New()
	RegisterRoutes(app.Group("/admin"), hub, allow)
	addr := serve(t, app)

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+"/admin/ws", nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	waitForSubscribers(t, hub, DefaultTopic, 1)

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
	conn.Close()
	waitForSubscribers(t, hub, DefaultTopic, 0)
}
