package session

import (
	"context"
	"fmt"

	"github.com/example/holdbot/internal/db"
	"github.com/example/holdbot/internal/domain/session"
)

const DefaultName = "default"

// PostgresStore keeps sealed blobs in browser_sessions, one row per name.
type PostgresStore struct {
	db    *db.DB
	name  string
	codec *Codec
}

func NewPostgresStore(d *db.DB, name string, codec *Codec) *PostgresStore {
	if name == "" {
		name = DefaultName
	}
	return &PostgresStore{db: d, name: name, codec: codec}
}

func (s *PostgresStore) Exists(ctx context.Context) (bool, error) {
	var ok bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM browser_sessions WHERE name=$1)`, s.name).Scan(&ok)
	if err != nil {
		return false, db.WrapNotFound(err)
	}
	return ok, nil
}

func (s *PostgresStore) Load(ctx context.Context) (session.Blob, error) {
	var payload string
	err := s.db.QueryRow(ctx, `SELECT payload FROM browser_sessions WHERE name=$1`, s.name).Scan(&payload)
	if err != nil {
		if db.IsNotFound(err) {
			return session.Blob{}, session.ErrNotFound
		}
		return session.Blob{}, db.WrapNotFound(err)
	}
	b, err := s.codec.Decode(payload)
	if err != nil {
		return session.Blob{}, fmt.Errorf("decode session %q: %w", s.name, err)
	}
	return b, nil
}

func (s *PostgresStore) Save(ctx context.Context, b session.Blob) error {
	payload, err := s.codec.Encode(b)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.db.Exec(ctx, `
		INSERT INTO browser_sessions (name, payload, origin, captured_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE
		SET payload = EXCLUDED.payload,
		    origin = EXCLUDED.origin,
		    captured_at = EXCLUDED.captured_at,
		    updated_at = now()`,
		s.name, payload, b.Origin, b.CapturedAt)
}
