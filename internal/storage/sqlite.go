package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const timeLayout = time.RFC3339Nano

// SQLiteRepository stores trainings in a single table; the ordered
// exercise list is serialized as a JSON array so arbitrary free text
// survives the round trip.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	r := &SQLiteRepository{db: db}
	if err := r.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS trainings (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL,
  username TEXT,
  start_time TEXT NOT NULL,
  end_time TEXT NOT NULL,
  exercises TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trainings_user ON trainings(user_id);
`
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create trainings table: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, rec TrainingRecord) (int64, error) {
	exercises := rec.Exercises
	if exercises == nil {
		exercises = []string{}
	}
	payload, err := json.Marshal(exercises)
	if err != nil {
		return 0, fmt.Errorf("marshal exercises: %w", err)
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO trainings (user_id, username, start_time, end_time, exercises) VALUES (?, ?, ?, ?, ?)`,
		rec.UserID,
		rec.Username,
		rec.StartTime.Format(timeLayout),
		rec.EndTime.Format(timeLayout),
		string(payload),
	)
	if err != nil {
		return 0, fmt.Errorf("insert training: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("training id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) ByUser(ctx context.Context, userID int64) ([]TrainingRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, username, start_time, end_time, exercises FROM trainings WHERE user_id = ? ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query trainings: %w", err)
	}
	defer rows.Close()

	var recs []TrainingRecord
	for rows.Next() {
		var (
			rec        TrainingRecord
			start, end string
			payload    string
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Username, &start, &end, &payload); err != nil {
			return nil, fmt.Errorf("scan training: %w", err)
		}
		if rec.StartTime, err = time.Parse(timeLayout, start); err != nil {
			return nil, fmt.Errorf("parse start time: %w", err)
		}
		if rec.EndTime, err = time.Parse(timeLayout, end); err != nil {
			return nil, fmt.Errorf("parse end time: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &rec.Exercises); err != nil {
			return nil, fmt.Errorf("unmarshal exercises: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trainings: %w", err)
	}
	return recs, nil
}

func (r *SQLiteRepository) Users(ctx context.Context) ([]UserRef, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT user_id, username FROM trainings ORDER BY user_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []UserRef
	for rows.Next() {
		var u UserRef
		if err := rows.Scan(&u.UserID, &u.Username); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
