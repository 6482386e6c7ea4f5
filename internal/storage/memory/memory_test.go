package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"finsight/internal/core"
	"finsight/internal/ports"
)

func expense(id, date string, amount float64) core.Transaction {
	return core.Transaction{ID: id, Amount: amount, Type: core.Expense, Category: core.Food, Date: date}
}

func TestMemoryStoreInsertListDelete(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.Insert(ctx, expense("b", "2026-02-02", 5)); err != nil {
		t.Fatalf("insert b: %v", err)
	}
	if err := s.Insert(ctx, expense("a", "2026-02-01", 7)); err != nil {
		t.Fatalf("insert a: %v", err)
	}
	if err := s.Insert(ctx, expense("a", "2026-02-01", 7)); err == nil {
		t.Fatalf("expected duplicate id to be rejected")
	}
	if err := s.Insert(ctx, expense("c", "2026-02-01", 0)); err == nil {
		t.Fatalf("expected zero amount to be rejected")
	}

	got, err := s.List(ctx)
	if err != nil || len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("unexpected list: %v err=%v", got, err)
	}

	// List hands out a copy
	got[0].Amount = 999
	again, _ := s.List(ctx)
	if again[0].Amount != 7 {
		t.Fatalf("store mutated through List result")
	}

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "a"); err != ports.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.Get(ctx, "b"); err != nil {
		t.Fatalf("get b: %v", err)
	}
}

func TestMemoryStoreOrdersByCreatedAtWithinDate(t *testing.T) {
	ctx := context.Background()
	later := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	earlier := later.Add(-time.Hour)

	x := expense("x", "2026-01-01", 1)
	x.CreatedAt = later
	y := expense("y", "2026-01-01", 1)
	y.CreatedAt = earlier
	s := New(x, y)

	got, _ := s.List(ctx)
	if got[0].ID != "y" || got[1].ID != "x" {
		t.Fatalf("unexpected order: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestNewFromFile(t *testing.T) {
	dir := t.TempDir()

	// Missing file -> empty store
	s, err := NewFromFile(filepath.Join(dir, "missing.csv"))
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if got, _ := s.List(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty store, got %d", len(got))
	}

	path := filepath.Join(dir, "seed.csv")
	content := "id,date,type,category,amount\n" +
		"1,2026-03-01,income,Salary,2500\n" +
		"2,2026-03-02,expense,Food,42.10\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	s, err = NewFromFile(path)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	got, _ := s.List(context.Background())
	if len(got) != 2 || got[1].Amount != 42.10 {
		t.Fatalf("unexpected seeded records: %v", got)
	}

	bad := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(bad, []byte("id,date,type,category,amount\n1,2026-03-01,income,Salary,-1\n"), 0o644); err != nil {
		t.Fatalf("write bad: %v", err)
	}
	if _, err := NewFromFile(bad); err == nil {
		t.Fatalf("expected error for malformed seed")
	}
}
