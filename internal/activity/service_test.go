package activity

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
)

type recordingHub struct {
	mu     sync.Mutex
	topics []string
	events []Entry
}

func (h *recordingHub) Broadcast(topic string, payload []byte) {
	var e Entry
	_ = json.Unmarshal(payload, &e)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.topics = append(h.topics, topic)
	h.events = append(h.events, e)
}

func TestRecordPersistsAndBroadcasts(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO admin_activity`).
		WithArgs(pgxmock.AnyArg(), "admin@example.com", "places", "p1", ActionToggle, 200, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	hub := &recordingHub{}
	svc := NewService(mock, hub)
	entry, err := svc.Record(context.Background(), Entry{Admin: "admin@example.com", Entity: "places", EntityID: "p1", Action: ActionToggle, Status: 200})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if entry.ID == "" || entry.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamp, got %+v", entry)
	}
	if len(hub.events) != 1 || hub.topics[0] != Topic || hub.events[0].ID != entry.ID {
		t.Fatalf("unexpected broadcast: %v %v", hub.topics, hub.events)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordWithoutDatabaseStillBroadcasts(t *testing.T) {
	hub := &recordingHub{}
	svc := NewService(nil, hub)
	if _, err := svc.Record(context.Background(), Entry{Entity: "blogs", Action: ActionDelete}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(hub.events) != 1 {
		t.Fatalf("expected broadcast")
	}

	entries, err := svc.Recent(context.Background(), 10)
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected empty recent list, got %v %v", entries, err)
	}
	if err := svc.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema without db: %v", err)
	}
}

func TestRecordInsertErrorStillBroadcasts(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO admin_activity`).WillReturnError(errors.New("db down"))

	hub := &recordingHub{}
	svc := NewService(mock, hub)
	if _, err := svc.Record(context.Background(), Entry{Entity: "places", Action: ActionCreate}); err == nil {
		t.Fatalf("expected insert error")
	}
	if len(hub.events) != 1 {
		t.Fatalf("expected broadcast despite insert error")
	}
}

func TestRecentClampsLimit(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, admin_email, entity, entity_id, action, status, created_at`).
		WithArgs(maxLimit).
		WillReturnRows(pgxmock.NewRows([]string{"id", "admin_email", "entity", "entity_id", "action", "status", "created_at"}).
			AddRow("e2", "a@b.c", "reviews", "r1", ActionToggle, 200, now).
			AddRow("e1", "a@b.c", "places", "p1", ActionCreate, 201, now.Add(-time.Minute)))

	svc := NewService(mock, nil)
	entries, err := svc.Recent(context.Background(), 1000)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "e2" || entries[1].Entity != "places" {
		t.Fatalf("unexpected entries: %+v", entries)
	}

	mock.ExpectQuery(`FROM admin_activity`).WithArgs(defaultLimit).WillReturnError(errors.New("boom"))
	if _, err := svc.Recent(context.Background(), 0); err == nil {
		t.Fatalf("expected query error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureSchema(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS admin_activity`).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	if err := NewService(mock, nil).EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
