package activity

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"web-travelsite/internal/db"

	"github.com/google/uuid"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// Broadcaster is satisfied by *stream.Hub.
type Broadcaster interface {
	Broadcast(topic string, payload []byte)
}

type Service struct {
	db  db.Querier
	hub Broadcaster
}

// NewService accepts a nil database (nothing is persisted) and a nil hub.
func NewService(q db.Querier, hub Broadcaster) *Service {
	return &Service{db: q, hub: hub}
}

func (s *Service) EnsureSchema(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS admin_activity (
			id TEXT PRIMARY KEY,
			admin_email TEXT NOT NULL,
			entity TEXT NOT NULL,
			entity_id TEXT NOT NULL DEFAULT '',
			action TEXT NOT NULL,
			status INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

// Record persists the entry when a database is configured and always
// broadcasts it. A failed insert is returned after the broadcast.
func (s *Service) Record(ctx context.Context, e Entry) (Entry, error) {
	e.ID = uuid.NewString()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	var err error
	if s.db != nil {
		_, err = s.db.Exec(ctx, `
			INSERT INTO admin_activity (id, admin_email, entity, entity_id, action, status, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, e.ID, e.Admin, e.Entity, e.EntityID, e.Action, e.Status, e.CreatedAt)
	}

	if s.hub != nil {
		payload, mErr := json.Marshal(e)
		if mErr != nil {
			log.Printf("activity encode error: %v", mErr)
		} else {
			s.hub.Broadcast(Topic, payload)
		}
	}
	return e, err
}

func (s *Service) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if s.db == nil {
		return []Entry{}, nil
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, admin_email, entity, entity_id, action, status, created_at
		FROM admin_activity
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Admin, &e.Entity, &e.EntityID, &e.Action, &e.Status, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
