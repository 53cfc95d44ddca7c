package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/skylane/uav-simulations/pkg/models"
)

// SQLiteStore persists UAV records to a local SQLite database, keyed by
// UAV ID. It satisfies Store with the same semantics as MemoryStore;
// durability is the only difference the engine's callers can observe.
type SQLiteStore struct {
	db    *sql.DB
	zones map[string]struct{}
}

// OpenSQLite opens (and if needed initializes) a SQLite-backed store at
// the given path.
func OpenSQLite(path string, zones []models.Zone) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("empty database path")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// The simulation runner is the only writer; a single connection
	// keeps modernc's locking out of the picture.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("pragma %s: %w", p, err)
		}
	}

	schema := `CREATE TABLE IF NOT EXISTS uavs (
		uav_id      INTEGER PRIMARY KEY,
		zone        TEXT NOT NULL,
		x           REAL NOT NULL,
		y           REAL NOT NULL,
		altitude    REAL NOT NULL,
		speed       REAL NOT NULL,
		heading     REAL NOT NULL,
		state       TEXT NOT NULL,
		target_zone TEXT,
		progress    INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_uavs_zone ON uavs(zone);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	names := make(map[string]struct{}, len(zones))
	for _, z := range zones {
		names[z.Name] = struct{}{}
	}
	return &SQLiteStore{db: db, zones: names}, nil
}

// UpsertUAV creates or fully overwrites one UAV record.
func (s *SQLiteStore) UpsertUAV(ctx context.Context, u models.UAV) error {
	if err := u.Validate(); err != nil {
		return err
	}
	if _, ok := s.zones[u.Zone]; !ok {
		return fmt.Errorf("upsert uav %d: zone %q: %w", u.ID, u.Zone, models.ErrUnknownZone)
	}

	var targetZone sql.NullString
	var progress sql.NullInt64
	if u.Transfer != nil {
		targetZone = sql.NullString{String: u.Transfer.TargetZone, Valid: true}
		progress = sql.NullInt64{Int64: int64(u.Transfer.Progress), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO uavs
		(uav_id, zone, x, y, altitude, speed, heading, state, target_zone, progress)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uav_id) DO UPDATE SET
			zone = excluded.zone,
			x = excluded.x,
			y = excluded.y,
			altitude = excluded.altitude,
			speed = excluded.speed,
			heading = excluded.heading,
			state = excluded.state,
			target_zone = excluded.target_zone,
			progress = excluded.progress`,
		u.ID, u.Zone, u.X, u.Y, u.Altitude, u.Speed, u.Heading, string(u.State), targetZone, progress)
	if err != nil {
		return fmt.Errorf("upsert uav %d: %w", u.ID, err)
	}
	return nil
}

// SaveZone upserts an updated entity set inside one transaction.
func (s *SQLiteStore) SaveZone(ctx context.Context, uavs []models.UAV) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save zone: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO uavs
		(uav_id, zone, x, y, altitude, speed, heading, state, target_zone, progress)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uav_id) DO UPDATE SET
			zone = excluded.zone,
			x = excluded.x,
			y = excluded.y,
			altitude = excluded.altitude,
			speed = excluded.speed,
			heading = excluded.heading,
			state = excluded.state,
			target_zone = excluded.target_zone,
			progress = excluded.progress`)
	if err != nil {
		return fmt.Errorf("save zone: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, u := range uavs {
		if err := u.Validate(); err != nil {
			return err
		}
		if _, ok := s.zones[u.Zone]; !ok {
			return fmt.Errorf("save uav %d: zone %q: %w", u.ID, u.Zone, models.ErrUnknownZone)
		}
		var targetZone sql.NullString
		var progress sql.NullInt64
		if u.Transfer != nil {
			targetZone = sql.NullString{String: u.Transfer.TargetZone, Valid: true}
			progress = sql.NullInt64{Int64: int64(u.Transfer.Progress), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, u.ID, u.Zone, u.X, u.Y, u.Altitude, u.Speed,
			u.Heading, string(u.State), targetZone, progress); err != nil {
			return fmt.Errorf("save uav %d: %w", u.ID, err)
		}
	}
	return tx.Commit()
}

// ListUAVs returns a zone's UAVs ordered by ID.
func (s *SQLiteStore) ListUAVs(ctx context.Context, zone string, state models.State) ([]models.UAV, error) {
	if _, ok := s.zones[zone]; !ok {
		return nil, fmt.Errorf("list zone %q: %w", zone, models.ErrUnknownZone)
	}

	query := `SELECT uav_id, zone, x, y, altitude, speed, heading, state, target_zone, progress
		FROM uavs WHERE zone = ?`
	args := []interface{}{zone}
	if state != "" {
		query += " AND state = ?"
		args = append(args, string(state))
	}
	query += " ORDER BY uav_id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list zone %q: %w", zone, err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.UAV
	for rows.Next() {
		var u models.UAV
		var st string
		var targetZone sql.NullString
		var progress sql.NullInt64
		if err := rows.Scan(&u.ID, &u.Zone, &u.X, &u.Y, &u.Altitude, &u.Speed,
			&u.Heading, &st, &targetZone, &progress); err != nil {
			return nil, fmt.Errorf("scan uav: %w", err)
		}
		u.State = models.State(st)
		if targetZone.Valid {
			u.Transfer = &models.Transfer{
				TargetZone: targetZone.String,
				Progress:   int(progress.Int64),
			}
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// CountUAVs returns the number of UAVs currently in a zone.
func (s *SQLiteStore) CountUAVs(ctx context.Context, zone string) (int, error) {
	if _, ok := s.zones[zone]; !ok {
		return 0, fmt.Errorf("count zone %q: %w", zone, models.ErrUnknownZone)
	}
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM uavs WHERE zone = ?", zone).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count zone %q: %w", zone, err)
	}
	return n, nil
}

// RequestTransfer flips a UAV into transfer state with progress zero.
func (s *SQLiteStore) RequestTransfer(ctx context.Context, id int, fromZone, toZone string) error {
	if _, ok := s.zones[fromZone]; !ok {
		return fmt.Errorf("transfer from %q: %w", fromZone, models.ErrUnknownZone)
	}
	if _, ok := s.zones[toZone]; !ok {
		return fmt.Errorf("transfer to %q: %w", toZone, models.ErrUnknownZone)
	}

	var current string
	err := s.db.QueryRowContext(ctx, "SELECT zone FROM uavs WHERE uav_id = ?", id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && current != fromZone) {
		return fmt.Errorf("transfer uav %d from %q: %w", id, fromZone, models.ErrUAVNotFound)
	}
	if err != nil {
		return fmt.Errorf("transfer uav %d: %w", id, err)
	}

	_, err = s.db.ExecContext(ctx,
		"UPDATE uavs SET state = ?, target_zone = ?, progress = 0 WHERE uav_id = ?",
		string(models.StateTransfer), toZone, id)
	if err != nil {
		return fmt.Errorf("transfer uav %d: %w", id, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
