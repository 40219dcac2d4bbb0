package store

import (
	"path/filepath"
	"testing"

	"github.com/dkovalenko-dev/gridcalc"
)

func testSnapshot() gridcalc.Snapshot {
	return gridcalc.Snapshot{
		Rows:    3,
		Columns: 3,
		Cells: []gridcalc.SnapshotCell{
			{Row: 0, Col: 0, Expression: "10"},
			{Row: 1, Col: 1, Expression: "=A1*2"},
		},
	}
}

func assertSnapshotsEqual(t *testing.T, want, got gridcalc.Snapshot) {
	t.Helper()
	if got.Rows != want.Rows || got.Columns != want.Columns {
		t.Fatalf("dimensions = %dx%d, want %dx%d", got.Rows, got.Columns, want.Rows, want.Columns)
	}
	if len(got.Cells) != len(want.Cells) {
		t.Fatalf("cells = %d, want %d", len(got.Cells), len(want.Cells))
	}
	for i := range want.Cells {
		if got.Cells[i] != want.Cells[i] {
			t.Errorf("cell %d = %+v, want %+v", i, got.Cells[i], want.Cells[i])
		}
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	for _, name := range []string{"sheet.json", "sheet.yaml", "sheet.yml"} {
		t.Run(name, func(t *testing.T) {
			fs := NewFileStore(nil)
			path := filepath.Join(t.TempDir(), name)

			if err := fs.Save(path, testSnapshot()); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			loaded, err := fs.Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			assertSnapshotsEqual(t, testSnapshot(), loaded)
		})
	}
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	fs := NewFileStore(nil)
	path := filepath.Join(t.TempDir(), "sheet.json")

	if err := fs.Save(path, testSnapshot()); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	updated := testSnapshot()
	updated.Cells = updated.Cells[:1]
	if err := fs.Save(path, updated); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	loaded, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertSnapshotsEqual(t, updated, loaded)
}

func TestFileStoreCreatesParentDirectories(t *testing.T) {
	fs := NewFileStore(nil)
	path := filepath.Join(t.TempDir(), "nested", "deeper", "sheet.json")

	if err := fs.Save(path, testSnapshot()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := fs.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
}

func TestFileStoreRejectsInvalidSnapshot(t *testing.T) {
	fs := NewFileStore(nil)
	path := filepath.Join(t.TempDir(), "sheet.json")

	bad := gridcalc.Snapshot{Rows: 0, Columns: 3}
	if err := fs.Save(path, bad); err == nil {
		t.Error("Save should reject an invalid snapshot")
	}
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	fs := NewFileStore(nil)
	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load should fail for a missing file")
	}
}
