package storage

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/vovakirdan/roomplan/internal/core"
	"github.com/vovakirdan/roomplan/internal/layout"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func unit(id string, x, y, w, h float64) layout.Placement {
	return layout.Placement{ID: id, Kind: layout.KindUnit, Label: id, Rect: core.NewRect(x, y, w, h)}
}

func saveTestRoom(t *testing.T, store *Store) *RoomRecord {
	t.Helper()
	shape, err := layout.NewLShape(10, 10, layout.BottomRight, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	rec := &RoomRecord{
		Name: "Basement",
		Plan: layout.Plan{
			Shape:      shape,
			Placements: []layout.Placement{unit("a", 0, 0, 2, 2), unit("b", 2, 0, 2, 2)},
			Door:       &layout.Door{Wall: layout.North, Position: 0.5, Width: 1},
		},
	}
	if err := store.SaveRoom(rec); err != nil {
		t.Fatalf("SaveRoom() failed: %v", err)
	}
	return rec
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndLoadRoom(t *testing.T) {
	store := openTestStore(t)
	rec := saveTestRoom(t, store)

	if rec.ID == "" {
		t.Fatal("SaveRoom should assign an id")
	}
	if rec.Version != 1 {
		t.Errorf("Version = %d, expected 1", rec.Version)
	}

	got, err := store.Room(rec.ID)
	if err != nil {
		t.Fatalf("Room() failed: %v", err)
	}
	if got == nil {
		t.Fatal("Room() returned nil")
	}
	if got.Name != "Basement" || got.Plan.Shape != rec.Plan.Shape {
		t.Errorf("loaded room %+v does not match saved", got)
	}
	if len(got.Plan.Placements) != 2 || got.Plan.Placements[0] != rec.Plan.Placements[0] {
		t.Errorf("placements = %+v", got.Plan.Placements)
	}
	if got.Plan.Door == nil || *got.Plan.Door != *rec.Plan.Door {
		t.Errorf("door = %+v", got.Plan.Door)
	}

	// Saving again replaces and bumps the version.
	rec.Plan.Placements = rec.Plan.Placements[:1]
	rec.Plan.Door = nil
	if err := store.SaveRoom(rec); err != nil {
		t.Fatalf("SaveRoom() failed: %v", err)
	}
	got, _ = store.Room(rec.ID)
	if got.Version != 2 || len(got.Plan.Placements) != 1 || got.Plan.Door != nil {
		t.Errorf("replaced room = %+v", got)
	}
}

func TestStoreRoomMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.Room("nope")
	if err != nil {
		t.Fatalf("Room() failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
	if err := store.DeleteRoom("nope"); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("DeleteRoom() = %v, expected ErrRoomNotFound", err)
	}
	if _, err := store.CommitPlacement("nope", 1, unit("a", 0, 0, 1, 1)); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("CommitPlacement() = %v, expected ErrRoomNotFound", err)
	}
}

func TestStoreSaveRoomRejectsInvalidPlan(t *testing.T) {
	store := openTestStore(t)
	shape, _ := layout.NewRectangle(4, 4)
	rec := &RoomRecord{
		Name: "Overlap",
		Plan: layout.Plan{
			Shape:      shape,
			Placements: []layout.Placement{unit("a", 0, 0, 2, 2), unit("b", 1, 1, 2, 2)},
		},
	}

	err := store.SaveRoom(rec)
	if !errors.Is(err, ErrInvalidPlacement) {
		t.Fatalf("SaveRoom() = %v, expected ErrInvalidPlacement", err)
	}
	var pe *PlacementError
	if !errors.As(err, &pe) || pe.PlacementID != "b" || pe.Verdict.ConflictID != "a" {
		t.Errorf("expected PlacementError for b colliding with a, got %v", err)
	}
}

func TestStoreCommitPlacement(t *testing.T) {
	store := openTestStore(t)
	rec := saveTestRoom(t, store)

	tests := []struct {
		name    string
		p       layout.Placement
		wantErr error
	}{
		{"move a", unit("a", 0, 3, 2, 2), nil},
		{"collides with b", unit("a", 1, 0, 2, 2), ErrInvalidPlacement},
		{"into the notch", unit("c", 7, 7, 1, 1), ErrInvalidPlacement},
		{"new placement", unit("c", 0, 6, 1, 1), nil},
	}

	version := rec.Version
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, err := store.CommitPlacement(rec.ID, version, tc.p)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("CommitPlacement() = %v, expected %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CommitPlacement() failed: %v", err)
			}
			if v != version+1 {
				t.Errorf("version = %d, expected %d", v, version+1)
			}
			version = v
		})
	}

	got, _ := store.Room(rec.ID)
	if len(got.Plan.Placements) != 3 {
		t.Fatalf("expected 3 placements, got %d", len(got.Plan.Placements))
	}
	if got.Plan.Placements[0].Rect != core.NewRect(0, 3, 2, 2) {
		t.Errorf("a = %v, expected moved to (0,3)", got.Plan.Placements[0].Rect)
	}
	if got.Plan.Placements[2].ID != "c" {
		t.Errorf("new placement should be appended, got order %v", got.Plan.Placements)
	}
	if problems := got.Plan.Audit(); len(problems) != 0 {
		t.Errorf("stored plan has problems: %v", problems)
	}
}

func TestStoreVersionConflict(t *testing.T) {
	store := openTestStore(t)
	rec := saveTestRoom(t, store)

	if _, err := store.CommitPlacement(rec.ID, rec.Version, unit("a", 0, 3, 2, 2)); err != nil {
		t.Fatalf("first commit failed: %v", err)
	}
	// A second editor still holding the old version loses.
	_, err := store.CommitPlacement(rec.ID, rec.Version, unit("b", 2, 3, 2, 2))
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("CommitPlacement() = %v, expected ErrVersionConflict", err)
	}

	got, _ := store.Room(rec.ID)
	if got.Plan.Placements[1].Rect != core.NewRect(2, 0, 2, 2) {
		t.Errorf("stale write reached the store: %v", got.Plan.Placements[1].Rect)
	}
}

func TestStoreConcurrentCommits(t *testing.T) {
	store := openTestStore(t)
	rec := saveTestRoom(t, store)

	const writers = 8
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := unit("a", 0, float64(i)*0.1+3, 1, 1)
			if _, err := store.CommitPlacement(rec.ID, rec.Version, p); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			} else if !errors.Is(err, ErrVersionConflict) {
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("%d writers succeeded with the same version, expected 1", wins)
	}
}

func TestStoreDeletePlacement(t *testing.T) {
	store := openTestStore(t)
	rec := saveTestRoom(t, store)

	v, err := store.DeletePlacement(rec.ID, rec.Version, "b")
	if err != nil {
		t.Fatalf("DeletePlacement() failed: %v", err)
	}
	if _, err := store.DeletePlacement(rec.ID, v, "b"); !errors.Is(err, ErrPlacementNotFound) {
		t.Errorf("second delete = %v, expected ErrPlacementNotFound", err)
	}

	got, _ := store.Room(rec.ID)
	if len(got.Plan.Placements) != 1 || got.Plan.Placements[0].ID != "a" {
		t.Errorf("placements = %+v", got.Plan.Placements)
	}
}

func TestStoreCommitDoor(t *testing.T) {
	store := openTestStore(t)
	rec := saveTestRoom(t, store)

	door := &layout.Door{Wall: layout.CutoutVertical, Position: 0, Width: 1}
	v, err := store.CommitDoor(rec.ID, rec.Version, door)
	if err != nil {
		t.Fatalf("CommitDoor() failed: %v", err)
	}
	got, _ := store.Room(rec.ID)
	if got.Plan.Door == nil || got.Plan.Door.Wall != layout.CutoutVertical {
		t.Fatalf("door = %+v", got.Plan.Door)
	}
	if got.Plan.Door.Position <= 0 {
		t.Errorf("door position %g was not clamped into the margins", got.Plan.Door.Position)
	}

	if _, err := store.CommitDoor(rec.ID, v, &layout.Door{Wall: layout.East, Position: 0.5, Width: 9}); !errors.Is(err, ErrInvalidPlacement) {
		t.Errorf("oversized door = %v, expected ErrInvalidPlacement", err)
	}

	v, err = store.CommitDoor(rec.ID, v, nil)
	if err != nil {
		t.Fatalf("clearing door failed: %v", err)
	}
	got, _ = store.Room(rec.ID)
	if got.Plan.Door != nil || got.Version != v {
		t.Errorf("door should be cleared, got %+v at version %d", got.Plan.Door, got.Version)
	}
}

func TestStoreUpdateShape(t *testing.T) {
	store := openTestStore(t)
	rec := saveTestRoom(t, store)
	if _, err := store.CommitDoor(rec.ID, rec.Version, &layout.Door{Wall: layout.CutoutHorizontal, Position: 0.5, Width: 1}); err != nil {
		t.Fatal(err)
	}

	// Shrinking to a 3x3 rectangle drops the cutout door and strands b.
	shape, _ := layout.NewRectangle(3, 3)
	v, problems, err := store.UpdateShape(rec.ID, rec.Version+1, shape)
	if err != nil {
		t.Fatalf("UpdateShape() failed: %v", err)
	}
	if v != rec.Version+2 {
		t.Errorf("version = %d, expected %d", v, rec.Version+2)
	}
	if len(problems) != 1 || problems[0].PlacementID != "b" || problems[0].Verdict.Reason != layout.ReasonOutOfBounds {
		t.Errorf("problems = %v, expected b out of bounds", problems)
	}

	got, _ := store.Room(rec.ID)
	if got.Plan.Shape != shape {
		t.Errorf("shape = %s, expected %s", got.Plan.Shape, shape)
	}
	if got.Plan.Door != nil {
		t.Errorf("door on a vanished wall should be removed, got %+v", got.Plan.Door)
	}
}

func TestStoreRejectsMalformedShape(t *testing.T) {
	store := openTestStore(t)
	rec := saveTestRoom(t, store)

	wide := layout.Shape{
		Kind:   layout.LShape,
		Width:  10,
		Height: 10,
		Cutout: layout.Cutout{Corner: layout.BottomRight, Width: 12, Height: 4},
	}
	if _, _, err := store.UpdateShape(rec.ID, rec.Version, wide); !errors.Is(err, layout.ErrInvalidShape) {
		t.Fatalf("UpdateShape() = %v, expected ErrInvalidShape", err)
	}

	got, err := store.Room(rec.ID)
	if err != nil {
		t.Fatalf("room must stay readable after a rejected shape: %v", err)
	}
	if got.Version != rec.Version || got.Plan.Shape != rec.Plan.Shape {
		t.Errorf("room changed: version %d shape %s", got.Version, got.Plan.Shape)
	}

	bad := &RoomRecord{Name: "Flat", Plan: layout.Plan{Shape: layout.Shape{Kind: layout.Rectangle, Width: 4}}}
	if err := store.SaveRoom(bad); !errors.Is(err, layout.ErrInvalidShape) {
		t.Errorf("SaveRoom() = %v, expected ErrInvalidShape", err)
	}
	if bad.ID != "" {
		t.Errorf("rejected room was given id %q", bad.ID)
	}
}

func TestStoreListAndDelete(t *testing.T) {
	store := openTestStore(t)
	rec := saveTestRoom(t, store)

	shape, _ := layout.NewRectangle(3, 2)
	attic := &RoomRecord{ID: "attic", Name: "Attic", Plan: layout.Plan{Shape: shape}}
	if err := store.SaveRoom(attic); err != nil {
		t.Fatal(err)
	}

	rooms, err := store.ListRooms()
	if err != nil {
		t.Fatalf("ListRooms() failed: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(rooms))
	}
	if rooms[0].Name != "Attic" || rooms[1].Name != "Basement" {
		t.Errorf("rooms not sorted by name: %s, %s", rooms[0].Name, rooms[1].Name)
	}
	if rooms[1].Placements != 2 || !rooms[1].HasDoor || rooms[1].Shape != "10x10 l_shape bottom_right" {
		t.Errorf("unexpected summary %+v", rooms[1])
	}

	if err := store.DeleteRoom(rec.ID); err != nil {
		t.Fatalf("DeleteRoom() failed: %v", err)
	}
	rooms, _ = store.ListRooms()
	if len(rooms) != 1 {
		t.Errorf("expected 1 room after delete, got %d", len(rooms))
	}
	history, _ := store.History(rec.ID, 10)
	if len(history) != 0 {
		t.Errorf("history of a deleted room should be empty, got %d entries", len(history))
	}
}

func TestStoreHistory(t *testing.T) {
	store := openTestStore(t)
	rec := saveTestRoom(t, store)

	v, err := store.CommitPlacement(rec.ID, rec.Version, unit("a", 0, 3, 2, 2))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.CommitDoor(rec.ID, v, nil); err != nil {
		t.Fatal(err)
	}

	history, err := store.History(rec.ID, 10)
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(history))
	}
	if history[0].Action != "door" || history[1].Action != "placement" || history[1].PlacementID != "a" || history[2].Action != "save" {
		t.Errorf("unexpected history %+v", history)
	}
	if history[0].Version != 3 {
		t.Errorf("latest version = %d, expected 3", history[0].Version)
	}
}
