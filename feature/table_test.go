package feature

import (
	"errors"
	"testing"
)

func TestScoreTable_AppendAndGet(t *testing.T) {
	tbl := newScoreTable("vif")
	if err := tbl.append(5, 0.9); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := tbl.get(5)
	if err != nil {
		t.Fatalf("get(5): %v", err)
	}
	if got != 0.9 {
		t.Fatalf("get(5) = %v, want 0.9", got)
	}
}

func TestScoreTable_UnwrittenCellNotFound(t *testing.T) {
	tbl := newScoreTable("vif")
	if err := tbl.append(5, 0.9); err != nil {
		t.Fatalf("append: %v", err)
	}

	if _, err := tbl.get(4); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get(4) error = %v, want ErrNotFound", err)
	}
}

func TestScoreTable_OutOfRangeNotFound(t *testing.T) {
	tbl := newScoreTable("vif")
	if _, err := tbl.get(1000); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get(1000) error = %v, want ErrNotFound", err)
	}
}

func TestScoreTable_DuplicateWriteRejected(t *testing.T) {
	tbl := newScoreTable("vif")
	if err := tbl.append(5, 0.9); err != nil {
		t.Fatalf("first append: %v", err)
	}
	err := tbl.append(5, 0.8)
	if !errors.Is(err, ErrAlreadyWritten) {
		t.Fatalf("second append error = %v, want ErrAlreadyWritten", err)
	}

	got, gerr := tbl.get(5)
	if gerr != nil {
		t.Fatalf("get(5): %v", gerr)
	}
	if got != 0.9 {
		t.Fatalf("get(5) = %v after rejected overwrite, want 0.9", got)
	}
}

func TestScoreTable_GrowsPastInitialCapacity(t *testing.T) {
	tbl := newScoreTable("vif")
	if err := tbl.append(1000, 1.23); err != nil {
		t.Fatalf("append(1000): %v", err)
	}
	got, err := tbl.get(1000)
	if err != nil {
		t.Fatalf("get(1000): %v", err)
	}
	if got != 1.23 {
		t.Fatalf("get(1000) = %v, want 1.23", got)
	}
	// An earlier, never-written index within the grown range stays absent.
	if _, err := tbl.get(999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get(999) error = %v, want ErrNotFound", err)
	}
}

func TestScoreTable_Name(t *testing.T) {
	tbl := newScoreTable("motion")
	if tbl.Name() != "motion" {
		t.Fatalf("Name() = %q, want %q", tbl.Name(), "motion")
	}
}
