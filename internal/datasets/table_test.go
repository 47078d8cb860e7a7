package datasets

import (
	"errors"
	"reflect"
	"testing"
)

func TestFromRowsColumnOrderAndBackfill(t *testing.T) {
	tbl := FromRows([]Row{
		{"text": "a", "polarity": int64(0)},
		{"text": "b", "polarity": int64(1), "extra": "x"},
	})

	if got, want := tbl.Columns(), []string{"polarity", "text", "extra"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("columns = %v, want %v", got, want)
	}
	if tbl.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", tbl.Len())
	}
	extra, err := tbl.Column("extra")
	if err != nil {
		t.Fatalf("Column(extra): %v", err)
	}
	if extra[0] != nil || extra[1] != "x" {
		t.Fatalf("expected backfilled nil then x, got %v", extra)
	}
}

func TestColumnMissing(t *testing.T) {
	tbl := FromRows([]Row{{"a": "1"}})
	if _, err := tbl.Column("b"); !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound, got %v", err)
	}
}

func TestRenameColumnKeepsValuesAndOrder(t *testing.T) {
	tbl := FromRows([]Row{
		{"polarity": int64(1)},
		{"polarity": int64(0)},
		{"polarity": int64(1)},
	})
	renamed, err := tbl.RenameColumn("polarity", "label")
	if err != nil {
		t.Fatalf("RenameColumn: %v", err)
	}
	got, err := renamed.Column("label")
	if err != nil {
		t.Fatalf("Column(label): %v", err)
	}
	if want := []any{int64(1), int64(0), int64(1)}; !reflect.DeepEqual(got, want) {
		t.Fatalf("label = %v, want %v", got, want)
	}
	if renamed.HasColumn("polarity") {
		t.Fatal("expected polarity to be gone after rename")
	}
	if !tbl.HasColumn("polarity") {
		t.Fatal("expected original table to be untouched")
	}
}

func TestRenameColumnTwiceFails(t *testing.T) {
	tbl := FromRows([]Row{{"polarity": int64(1)}})
	renamed, err := tbl.RenameColumn("polarity", "label")
	if err != nil {
		t.Fatalf("first rename: %v", err)
	}
	if _, err := renamed.RenameColumn("polarity", "label"); !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound on second rename, got %v", err)
	}

	both := FromRows([]Row{{"polarity": int64(1), "label": int64(1)}})
	if _, err := both.RenameColumn("polarity", "label"); !errors.Is(err, ErrColumnExists) {
		t.Fatalf("expected ErrColumnExists, got %v", err)
	}
}

func TestSelect(t *testing.T) {
	tbl := FromRows([]Row{{"v": "a"}, {"v": "b"}, {"v": "c"}})
	sub, err := tbl.Select([]int{2, 0})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	got, _ := sub.StringColumn("v")
	if want := []string{"c", "a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("selected = %v, want %v", got, want)
	}
	if _, err := tbl.Select([]int{3}); err == nil {
		t.Fatal("expected out of range error")
	}
}

func TestAddColumnLengthMismatch(t *testing.T) {
	tbl := NewTable()
	if err := tbl.AddColumn("a", []any{"x", "y"}); err != nil {
		t.Fatalf("AddColumn: %v", err)
	}
	if err := tbl.AddColumn("b", []any{"x"}); err == nil {
		t.Fatal("expected length mismatch error")
	}
	if err := tbl.AddColumn("a", []any{"x", "y"}); !errors.Is(err, ErrColumnExists) {
		t.Fatalf("expected ErrColumnExists, got %v", err)
	}
}

func TestStringColumnRejectsNonString(t *testing.T) {
	tbl := FromRows([]Row{{"v": int64(3)}})
	if _, err := tbl.StringColumn("v"); err == nil {
		t.Fatal("expected type error")
	}
}

func TestDatasetDictRename(t *testing.T) {
	dd := DatasetDict{
		"train": FromRows([]Row{{"polarity": int64(0)}}),
		"test":  FromRows([]Row{{"polarity": int64(1)}}),
	}
	out, err := dd.RenameColumn("polarity", "label")
	if err != nil {
		t.Fatalf("RenameColumn: %v", err)
	}
	for _, split := range []string{"train", "test"} {
		if !out[split].HasColumn("label") {
			t.Fatalf("split %s missing label", split)
		}
	}
	if _, err := out.Split("dev"); !errors.Is(err, ErrSplitNotFound) {
		t.Fatalf("expected ErrSplitNotFound, got %v", err)
	}
}

func TestDatasetDictRenameNilSplit(t *testing.T) {
	dd := DatasetDict{
		"test":  FromRows([]Row{{"polarity": int64(1)}}),
		"train": nil,
	}
	if _, err := dd.RenameColumn("polarity", "label"); !errors.Is(err, ErrSplitNotFound) {
		t.Fatalf("expected ErrSplitNotFound for a nil split, got %v", err)
	}
}
