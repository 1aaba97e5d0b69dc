package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

func testDefinition(name string, reduction int) *model.MitigationDefinition {
	return &model.MitigationDefinition{
		ID:               types.NewMitigationID(),
		Name:             name,
		Description:      "test mitigation",
		Category:         types.MitigationCategoryGeneral,
		DefaultReduction: reduction,
	}
}

func TestMitigationLedger_Add(t *testing.T) {
	now := time.Now().UTC()

	t.Run("add snapshots the definition", func(t *testing.T) {
		ledger := model.NewMitigationLedger(nil)
		def := testDefinition("Enable 2FA", 20)

		if err := ledger.Add(def, "alice", now); err != nil {
			t.Fatalf("Add() failed: %v", err)
		}

		entries := ledger.Entries()
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		e := entries[0]
		if e.MitigationID != def.ID {
			t.Errorf("expected mitigation ID %s, got %s", def.ID, e.MitigationID)
		}
		if e.AppliedReduction != 20 {
			t.Errorf("expected applied reduction 20, got %d", e.AppliedReduction)
		}
		if e.AppliedBy != "alice" {
			t.Errorf("expected applied by alice, got %s", e.AppliedBy)
		}
		if !e.AppliedAt.Equal(now) {
			t.Errorf("expected applied at %v, got %v", now, e.AppliedAt)
		}

		// Editing the definition after application must not change the entry
		def.DefaultReduction = 90
		if ledger.TotalReduction() != 20 {
			t.Errorf("applied reduction changed after definition edit: %d", ledger.TotalReduction())
		}
	})

	t.Run("duplicate add is rejected and ledger unchanged", func(t *testing.T) {
		ledger := model.NewMitigationLedger(nil)
		def := testDefinition("Enable 2FA", 20)

		if err := ledger.Add(def, "alice", now); err != nil {
			t.Fatalf("first Add() failed: %v", err)
		}

		err := ledger.Add(def, "bob", now)
		if !errors.Is(err, model.ErrDuplicateMitigation) {
			t.Errorf("expected ErrDuplicateMitigation, got %v", err)
		}
		if ledger.Len() != 1 {
			t.Errorf("ledger length changed after rejected add: %d", ledger.Len())
		}
		if ledger.TotalReduction() != 20 {
			t.Errorf("total reduction changed after rejected add: %d", ledger.TotalReduction())
		}
	})

	t.Run("insertion order is preserved", func(t *testing.T) {
		ledger := model.NewMitigationLedger(nil)
		first := testDefinition("First", 5)
		second := testDefinition("Second", 10)

		if err := ledger.Add(first, "alice", now); err != nil {
			t.Fatal(err)
		}
		if err := ledger.Add(second, "alice", now); err != nil {
			t.Fatal(err)
		}

		entries := ledger.Entries()
		if entries[0].Name != "First" || entries[1].Name != "Second" {
			t.Errorf("unexpected order: %s, %s", entries[0].Name, entries[1].Name)
		}
	})

	t.Run("invalid definition is rejected", func(t *testing.T) {
		ledger := model.NewMitigationLedger(nil)
		def := testDefinition("Too big", 120)

		if err := ledger.Add(def, "alice", now); err == nil {
			t.Error("expected error for out-of-range default reduction")
		}
	})
}

func TestMitigationLedger_Remove(t *testing.T) {
	now := time.Now().UTC()

	t.Run("remove deletes entry", func(t *testing.T) {
		ledger := model.NewMitigationLedger(nil)
		def := testDefinition("Enable 2FA", 20)
		if err := ledger.Add(def, "alice", now); err != nil {
			t.Fatal(err)
		}

		ledger.Remove(def.ID)

		if ledger.Len() != 0 {
			t.Errorf("expected empty ledger, got %d entries", ledger.Len())
		}
		if ledger.TotalReduction() != 0 {
			t.Errorf("expected total reduction 0, got %d", ledger.TotalReduction())
		}
	})

	t.Run("removing absent ID is a no-op", func(t *testing.T) {
		ledger := model.NewMitigationLedger(nil)
		def := testDefinition("Enable 2FA", 20)
		if err := ledger.Add(def, "alice", now); err != nil {
			t.Fatal(err)
		}

		ledger.Remove(types.NewMitigationID())

		if ledger.Len() != 1 {
			t.Errorf("ledger changed after removing absent ID: %d entries", ledger.Len())
		}
		if ledger.TotalReduction() != 20 {
			t.Errorf("total reduction changed after removing absent ID: %d", ledger.TotalReduction())
		}
	})
}

func TestMitigationLedger_Update(t *testing.T) {
	now := time.Now().UTC()

	t.Run("update replaces only supplied fields", func(t *testing.T) {
		ledger := model.NewMitigationLedger(nil)
		def := testDefinition("Enable 2FA", 20)
		if err := ledger.Add(def, "alice", now); err != nil {
			t.Fatal(err)
		}

		reduction := 35
		if err := ledger.Update(def.ID, model.MitigationPatch{AppliedReduction: &reduction}); err != nil {
			t.Fatalf("Update() failed: %v", err)
		}

		e := ledger.Entries()[0]
		if e.AppliedReduction != 35 {
			t.Errorf("expected reduction 35, got %d", e.AppliedReduction)
		}
		if e.Notes != "" {
			t.Errorf("notes changed unexpectedly: %q", e.Notes)
		}
		if e.AppliedBy != "alice" || !e.AppliedAt.Equal(now) {
			t.Error("update must preserve original AppliedBy/AppliedAt")
		}

		notes := "hardware keys issued"
		if err := ledger.Update(def.ID, model.MitigationPatch{Notes: &notes}); err != nil {
			t.Fatalf("Update() failed: %v", err)
		}
		e = ledger.Entries()[0]
		if e.Notes != notes {
			t.Errorf("expected notes %q, got %q", notes, e.Notes)
		}
		if e.AppliedReduction != 35 {
			t.Errorf("reduction changed unexpectedly: %d", e.AppliedReduction)
		}
	})

	t.Run("update of absent ID fails", func(t *testing.T) {
		ledger := model.NewMitigationLedger(nil)
		reduction := 10
		err := ledger.Update(types.NewMitigationID(), model.MitigationPatch{AppliedReduction: &reduction})
		if !errors.Is(err, model.ErrMitigationNotFound) {
			t.Errorf("expected ErrMitigationNotFound, got %v", err)
		}
	})

	t.Run("out-of-range reduction is rejected", func(t *testing.T) {
		ledger := model.NewMitigationLedger(nil)
		def := testDefinition("Enable 2FA", 20)
		if err := ledger.Add(def, "alice", now); err != nil {
			t.Fatal(err)
		}

		bad := 150
		if err := ledger.Update(def.ID, model.MitigationPatch{AppliedReduction: &bad}); err == nil {
			t.Error("expected error for out-of-range reduction")
		}
		if ledger.TotalReduction() != 20 {
			t.Errorf("reduction changed after rejected update: %d", ledger.TotalReduction())
		}
	})
}

func TestMitigationLedger_TotalReduction(t *testing.T) {
	now := time.Now().UTC()

	t.Run("empty ledger sums to zero", func(t *testing.T) {
		ledger := model.NewMitigationLedger(nil)
		if got := ledger.TotalReduction(); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
	})

	t.Run("no clamping above 100", func(t *testing.T) {
		ledger := model.NewMitigationLedger(nil)
		for _, r := range []int{60, 70} {
			if err := ledger.Add(testDefinition("m", r), "alice", now); err != nil {
				t.Fatal(err)
			}
		}
		if got := ledger.TotalReduction(); got != 130 {
			t.Errorf("expected 130, got %d", got)
		}
	})

	t.Run("total is independent of add order", func(t *testing.T) {
		a := testDefinition("A", 15)
		b := testDefinition("B", 20)

		ab := model.NewMitigationLedger(nil)
		if err := ab.Add(a, "alice", now); err != nil {
			t.Fatal(err)
		}
		if err := ab.Add(b, "alice", now); err != nil {
			t.Fatal(err)
		}

		ba := model.NewMitigationLedger(nil)
		if err := ba.Add(b, "alice", now); err != nil {
			t.Fatal(err)
		}
		if err := ba.Add(a, "alice", now); err != nil {
			t.Fatal(err)
		}

		if ab.TotalReduction() != ba.TotalReduction() {
			t.Errorf("order changed total: %d vs %d", ab.TotalReduction(), ba.TotalReduction())
		}
	})
}
