// Package storage provides SQLite-based persistence for room plans.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Every write goes through a transaction that reloads the room, checks the
// caller's expected version, validates the change with the layout engine and
// bumps the version.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/roomplan/internal/core"
	"github.com/vovakirdan/roomplan/internal/layout"
)

var (
	// ErrVersionConflict is returned when the room changed since the caller
	// loaded it.
	ErrVersionConflict = errors.New("storage: room was modified by someone else")
	// ErrInvalidPlacement is returned when a write would break the layout.
	ErrInvalidPlacement = errors.New("storage: invalid placement")
	// ErrRoomNotFound is returned when the room does not exist.
	ErrRoomNotFound = errors.New("storage: room not found")
	// ErrPlacementNotFound is returned when deleting an unknown placement.
	ErrPlacementNotFound = errors.New("storage: placement not found")
)

// PlacementError reports why a placement was refused. It matches
// ErrInvalidPlacement with errors.Is.
type PlacementError struct {
	PlacementID string
	Verdict     layout.Verdict
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("storage: invalid placement %s: %s", e.PlacementID, e.Verdict)
}

// Is reports whether target is ErrInvalidPlacement.
func (e *PlacementError) Is(target error) bool {
	return target == ErrInvalidPlacement
}

// Store manages the SQLite database connection for room persistence.
// It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// RoomRecord is a stored room with its full plan.
type RoomRecord struct {
	ID        string
	Name      string
	Plan      layout.Plan
	Version   int64
	UpdatedAt time.Time
}

// RoomSummary is one row of the room list.
type RoomSummary struct {
	ID         string
	Name       string
	Shape      string
	Placements int
	HasDoor    bool
	Version    int64
	UpdatedAt  time.Time
}

// CommitEntry is one entry of a room's change history.
type CommitEntry struct {
	ID          int64
	RoomID      string
	Version     int64
	Action      string // "save", "placement", "delete_placement", "door", "shape"
	PlacementID string
	CreatedAt   time.Time
}

// NewID returns a fresh identifier for rooms and placements.
func NewID() string {
	return uuid.NewString()
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One connection: SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rooms (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			shape_kind TEXT NOT NULL,
			width REAL NOT NULL,
			height REAL NOT NULL,
			cutout_corner TEXT NOT NULL DEFAULT '',
			cutout_width REAL NOT NULL DEFAULT 0,
			cutout_height REAL NOT NULL DEFAULT 0,
			door_wall TEXT,
			door_position REAL,
			door_width REAL,
			version INTEGER NOT NULL DEFAULT 1,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS placements (
			room_id TEXT NOT NULL,
			id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			kind TEXT NOT NULL,
			label TEXT NOT NULL DEFAULT '',
			x REAL NOT NULL,
			y REAL NOT NULL,
			w REAL NOT NULL,
			h REAL NOT NULL,
			rotation INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (room_id, id)
		);
		CREATE INDEX IF NOT EXISTS idx_placements_room ON placements(room_id, seq);

		CREATE TABLE IF NOT EXISTS commits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			room_id TEXT NOT NULL,
			version INTEGER NOT NULL,
			action TEXT NOT NULL,
			placement_id TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_commits_room ON commits(room_id, id DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRoom creates or replaces a room with all of its placements and door.
// An empty rec.ID gets a fresh id. The plan must pass layout.Plan.Audit.
// On success rec.ID, rec.Version and rec.UpdatedAt are updated.
func (s *Store) SaveRoom(rec *RoomRecord) error {
	if err := rec.Plan.Shape.Validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if problems := rec.Plan.Audit(); len(problems) > 0 {
		return problemsError(problems)
	}
	if rec.ID == "" {
		rec.ID = NewID()
	}
	if rec.Plan.Door != nil {
		d, _ := rec.Plan.Door.Revalidate(rec.Plan.Shape)
		rec.Plan.Door = &d
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	var version int64 = 1
	var current int64
	err = tx.QueryRow("SELECT version FROM rooms WHERE id = ?", rec.ID).Scan(&current)
	switch {
	case err == nil:
		version = current + 1
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("storage: cannot query room: %w", err)
	}

	sh := rec.Plan.Shape
	wall, pos, width := doorColumns(rec.Plan.Door)
	_, err = tx.Exec(
		`INSERT INTO rooms
		 (id, name, shape_kind, width, height, cutout_corner, cutout_width, cutout_height,
		  door_wall, door_position, door_width, version, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET
		  name = excluded.name, shape_kind = excluded.shape_kind,
		  width = excluded.width, height = excluded.height,
		  cutout_corner = excluded.cutout_corner, cutout_width = excluded.cutout_width,
		  cutout_height = excluded.cutout_height, door_wall = excluded.door_wall,
		  door_position = excluded.door_position, door_width = excluded.door_width,
		  version = excluded.version, updated_at = CURRENT_TIMESTAMP`,
		rec.ID, rec.Name, sh.Kind.String(), sh.Width, sh.Height,
		cutoutCorner(sh), sh.Cutout.Width, sh.Cutout.Height,
		wall, pos, width, version,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save room: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM placements WHERE room_id = ?", rec.ID); err != nil {
		return fmt.Errorf("storage: cannot clear placements: %w", err)
	}
	for i, p := range rec.Plan.Placements {
		if err := insertPlacement(tx, rec.ID, i, p); err != nil {
			return err
		}
	}
	if err := logCommit(tx, rec.ID, version, "save", ""); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit room: %w", err)
	}
	rec.Version = version
	rec.UpdatedAt = time.Now().UTC()
	return nil
}

// Room loads a room with its plan. Returns nil, nil if the room does not exist.
func (s *Store) Room(id string) (*RoomRecord, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	rec, err := loadRoom(tx, id)
	if errors.Is(err, ErrRoomNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListRooms returns every room ordered by name.
func (s *Store) ListRooms() ([]RoomSummary, error) {
	rows, err := s.db.Query(
		`SELECT r.id, r.name, r.shape_kind, r.width, r.height, r.cutout_corner,
		        r.door_wall IS NOT NULL, r.version, r.updated_at,
		        (SELECT COUNT(*) FROM placements p WHERE p.room_id = r.id)
		 FROM rooms r
		 ORDER BY r.name, r.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rooms: %w", err)
	}
	defer rows.Close()

	var rooms []RoomSummary
	for rows.Next() {
		var r RoomSummary
		var kind, corner string
		var w, h float64
		var updatedAt any
		if err := rows.Scan(&r.ID, &r.Name, &kind, &w, &h, &corner, &r.HasDoor, &r.Version, &updatedAt, &r.Placements); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Shape = fmt.Sprintf("%gx%g %s", w, h, kind)
		if corner != "" {
			r.Shape += " " + corner
		}
		r.UpdatedAt = parseTime(updatedAt)
		rooms = append(rooms, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rooms, nil
}

// DeleteRoom removes a room, its placements and its history.
func (s *Store) DeleteRoom(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM rooms WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete room: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	if _, err := tx.Exec("DELETE FROM placements WHERE room_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete placements: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM commits WHERE room_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// CommitPlacement writes one placement, typically at the end of a drag or
// resize gesture. The placement is created if its id is new to the room.
// Returns the room's new version.
func (s *Store) CommitPlacement(roomID string, expectedVersion int64, p layout.Placement) (int64, error) {
	return s.update(roomID, expectedVersion, "placement", p.ID, func(tx *sql.Tx, rec *RoomRecord) error {
		if v := layout.Check(p, rec.Plan.Placements, rec.Plan.Shape); !v.OK() {
			return &PlacementError{PlacementID: p.ID, Verdict: v}
		}
		seq := len(rec.Plan.Placements)
		if i := rec.Plan.Index(p.ID); i >= 0 {
			seq = i
		}
		return upsertPlacement(tx, roomID, seq, p)
	})
}

// DeletePlacement removes one placement from a room.
// Returns the room's new version.
func (s *Store) DeletePlacement(roomID string, expectedVersion int64, placementID string) (int64, error) {
	return s.update(roomID, expectedVersion, "delete_placement", placementID, func(tx *sql.Tx, rec *RoomRecord) error {
		if rec.Plan.Index(placementID) < 0 {
			return fmt.Errorf("%w: %s in room %s", ErrPlacementNotFound, placementID, roomID)
		}
		if _, err := tx.Exec("DELETE FROM placements WHERE room_id = ? AND id = ?", roomID, placementID); err != nil {
			return fmt.Errorf("storage: cannot delete placement: %w", err)
		}
		return nil
	})
}

// CommitDoor sets the room's door, or clears it when door is nil. The door is
// revalidated against the stored shape first.
// Returns the room's new version.
func (s *Store) CommitDoor(roomID string, expectedVersion int64, door *layout.Door) (int64, error) {
	return s.update(roomID, expectedVersion, "door", "", func(tx *sql.Tx, rec *RoomRecord) error {
		if door != nil {
			d, ok := door.Revalidate(rec.Plan.Shape)
			if !ok {
				return fmt.Errorf("storage: door does not fit wall %s: %w", door.Wall, ErrInvalidPlacement)
			}
			door = &d
		}
		return writeDoor(tx, roomID, door)
	})
}

// UpdateShape replaces the room's shape. The door is re-clamped to the new
// walls, or removed if its wall no longer exists or is too short. Placements
// are not rejected; the ones that no longer fit are returned so the caller
// can show them. Returns the room's new version.
func (s *Store) UpdateShape(roomID string, expectedVersion int64, shape layout.Shape) (int64, []layout.Problem, error) {
	if err := shape.Validate(); err != nil {
		return 0, nil, fmt.Errorf("storage: %w", err)
	}
	var problems []layout.Problem
	version, err := s.update(roomID, expectedVersion, "shape", "", func(tx *sql.Tx, rec *RoomRecord) error {
		_, err := tx.Exec(
			`UPDATE rooms SET shape_kind = ?, width = ?, height = ?,
			 cutout_corner = ?, cutout_width = ?, cutout_height = ?
			 WHERE id = ?`,
			shape.Kind.String(), shape.Width, shape.Height,
			cutoutCorner(shape), shape.Cutout.Width, shape.Cutout.Height, roomID,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot update shape: %w", err)
		}

		plan := rec.Plan
		plan.Shape = shape
		if plan.Door != nil {
			if d, ok := plan.Door.Revalidate(shape); ok {
				plan.Door = &d
			} else {
				plan.Door = nil
			}
			if err := writeDoor(tx, roomID, plan.Door); err != nil {
				return err
			}
		}
		problems = plan.Audit()
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return version, problems, nil
}

// History returns the most recent changes to a room, newest first.
func (s *Store) History(roomID string, limit int) ([]CommitEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, room_id, version, action, placement_id, created_at
		 FROM commits
		 WHERE room_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		roomID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query history: %w", err)
	}
	defer rows.Close()

	var entries []CommitEntry
	for rows.Next() {
		var e CommitEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RoomID, &e.Version, &e.Action, &e.PlacementID, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// update runs fn inside a transaction on a freshly loaded room whose version
// matches expectedVersion, then bumps the version and records the change.
func (s *Store) update(roomID string, expectedVersion int64, action, placementID string, fn func(*sql.Tx, *RoomRecord) error) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	rec, err := loadRoom(tx, roomID)
	if err != nil {
		return 0, err
	}
	if rec.Version != expectedVersion {
		return 0, fmt.Errorf("%w: have version %d, room is at %d", ErrVersionConflict, expectedVersion, rec.Version)
	}

	if err := fn(tx, rec); err != nil {
		return 0, err
	}

	version := rec.Version + 1
	if _, err := tx.Exec(
		"UPDATE rooms SET version = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		version, roomID,
	); err != nil {
		return 0, fmt.Errorf("storage: cannot bump version: %w", err)
	}
	if err := logCommit(tx, roomID, version, action, placementID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit: %w", err)
	}
	return version, nil
}

func loadRoom(tx *sql.Tx, id string) (*RoomRecord, error) {
	rec := RoomRecord{ID: id}
	var kind, corner string
	var width, height, cw, ch float64
	var doorWall sql.NullString
	var doorPos, doorWidth sql.NullFloat64
	var updatedAt any

	err := tx.QueryRow(
		`SELECT name, shape_kind, width, height, cutout_corner, cutout_width, cutout_height,
		        door_wall, door_position, door_width, version, updated_at
		 FROM rooms WHERE id = ?`,
		id,
	).Scan(&rec.Name, &kind, &width, &height, &corner, &cw, &ch,
		&doorWall, &doorPos, &doorWidth, &rec.Version, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query room: %w", err)
	}
	rec.UpdatedAt = parseTime(updatedAt)

	shape, err := layout.ParseShape(kind, width, height, corner, cw, ch)
	if err != nil {
		return nil, fmt.Errorf("storage: room %s has a corrupt shape: %w", id, err)
	}
	rec.Plan.Shape = shape

	if doorWall.Valid {
		wall, ok := layout.ParseWallID(doorWall.String)
		if !ok {
			return nil, fmt.Errorf("storage: room %s has unknown door wall %q", id, doorWall.String)
		}
		rec.Plan.Door = &layout.Door{Wall: wall, Position: doorPos.Float64, Width: doorWidth.Float64}
	}

	rows, err := tx.Query(
		`SELECT id, kind, label, x, y, w, h, rotation
		 FROM placements WHERE room_id = ?
		 ORDER BY seq, id`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query placements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p layout.Placement
		var kindText string
		var x, y, w, h float64
		if err := rows.Scan(&p.ID, &kindText, &p.Label, &x, &y, &w, &h, &p.Rotation); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		k, ok := layout.ParseKind(kindText)
		if !ok {
			return nil, fmt.Errorf("storage: placement %s has unknown kind %q", p.ID, kindText)
		}
		p.Kind = k
		p.Rect = core.NewRect(x, y, w, h)
		rec.Plan.Placements = append(rec.Plan.Placements, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &rec, nil
}

func insertPlacement(tx *sql.Tx, roomID string, seq int, p layout.Placement) error {
	_, err := tx.Exec(
		`INSERT INTO placements (room_id, id, seq, kind, label, x, y, w, h, rotation)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		roomID, p.ID, seq, p.Kind.String(), p.Label, p.Rect.X, p.Rect.Y, p.Rect.W, p.Rect.H, p.Rotation,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save placement %s: %w", p.ID, err)
	}
	return nil
}

func upsertPlacement(tx *sql.Tx, roomID string, seq int, p layout.Placement) error {
	_, err := tx.Exec(
		`INSERT INTO placements (room_id, id, seq, kind, label, x, y, w, h, rotation)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(room_id, id) DO UPDATE SET
		  kind = excluded.kind, label = excluded.label,
		  x = excluded.x, y = excluded.y, w = excluded.w, h = excluded.h,
		  rotation = excluded.rotation`,
		roomID, p.ID, seq, p.Kind.String(), p.Label, p.Rect.X, p.Rect.Y, p.Rect.W, p.Rect.H, p.Rotation,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save placement %s: %w", p.ID, err)
	}
	return nil
}

func writeDoor(tx *sql.Tx, roomID string, door *layout.Door) error {
	wall, pos, width := doorColumns(door)
	_, err := tx.Exec(
		"UPDATE rooms SET door_wall = ?, door_position = ?, door_width = ? WHERE id = ?",
		wall, pos, width, roomID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save door: %w", err)
	}
	return nil
}

func logCommit(tx *sql.Tx, roomID string, version int64, action, placementID string) error {
	_, err := tx.Exec(
		"INSERT INTO commits (room_id, version, action, placement_id) VALUES (?, ?, ?, ?)",
		roomID, version, action, placementID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record commit: %w", err)
	}
	return nil
}

func doorColumns(d *layout.Door) (sql.NullString, sql.NullFloat64, sql.NullFloat64) {
	if d == nil {
		return sql.NullString{}, sql.NullFloat64{}, sql.NullFloat64{}
	}
	return sql.NullString{String: d.Wall.String(), Valid: true},
		sql.NullFloat64{Float64: d.Position, Valid: true},
		sql.NullFloat64{Float64: d.Width, Valid: true}
}

func cutoutCorner(s layout.Shape) string {
	if s.Kind != layout.LShape {
		return ""
	}
	return s.Cutout.Corner.String()
}

func problemsError(problems []layout.Problem) error {
	errs := make([]error, 0, len(problems))
	for _, p := range problems {
		if p.Door {
			errs = append(errs, fmt.Errorf("storage: %s: %w", p, ErrInvalidPlacement))
			continue
		}
		errs = append(errs, &PlacementError{PlacementID: p.PlacementID, Verdict: p.Verdict})
	}
	return errors.Join(errs...)
}

// parseTime handles the datetime forms the driver may return.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
