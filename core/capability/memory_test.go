package capability

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStore_CreateAndFetch(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.Create(ctx, "Performance & Assurance", "Monitors results and compliance.")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("Create returned empty id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("Create did not stamp timestamps")
	}

	got, err := s.FetchByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FetchByID: %v", err)
	}
	if got.Name != "Performance & Assurance" {
		t.Fatalf("Name = %q", got.Name)
	}
}

func TestMemoryStore_FetchByID_Unknown(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.FetchByID(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_Update_Partial(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	created, _ := s.Create(ctx, "Old Name", "Old description")

	newName := "New Name"
	updated, err := s.Update(ctx, created.ID, Update{Name: &newName})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "New Name" {
		t.Fatalf("Name = %q, want updated", updated.Name)
	}
	if updated.Description != "Old description" {
		t.Fatalf("Description = %q, want untouched", updated.Description)
	}
}

func TestMemoryStore_Update_NotFound(t *testing.T) {
	s := NewMemoryStore()
	name := "x"
	if _, err := s.Update(context.Background(), "missing", Update{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_SoftDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	created, _ := s.Create(ctx, "Doomed", "")

	ok, err := s.Delete(ctx, created.ID)
	if err != nil || !ok {
		t.Fatalf("Delete = %v, %v; want true, nil", ok, err)
	}

	// Deleted records are invisible to every fetch.
	if _, err := s.FetchByID(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("FetchByID after delete: err = %v, want ErrNotFound", err)
	}
	all, _ := s.FetchAll(ctx)
	if len(all) != 0 {
		t.Fatalf("FetchAll returned %d records after delete, want 0", len(all))
	}

	// Second delete is a no-op.
	ok, err = s.Delete(ctx, created.ID)
	if err != nil || ok {
		t.Fatalf("second Delete = %v, %v; want false, nil", ok, err)
	}

	// Updates no longer reach the record.
	name := "resurrected"
	if _, err := s.Update(ctx, created.ID, Update{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update after delete: err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_FetchAll_SortedWithProcesses(t *testing.T) {
	s, err := LoadSeed(builtinSeed)
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}

	all, err := s.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("FetchAll returned %d capabilities, want 4", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Name > all[i].Name {
			t.Fatalf("FetchAll not sorted: %q before %q", all[i-1].Name, all[i].Name)
		}
	}
	for _, c := range all {
		if len(c.Processes) == 0 {
			t.Errorf("capability %q has no processes attached", c.Name)
		}
	}
}

func TestMemoryStore_FetchByName(t *testing.T) {
	s, err := LoadSeed(builtinSeed)
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}

	c, err := s.FetchByName(context.Background(), "Strategy & Resource Mobilization")
	if err != nil {
		t.Fatalf("FetchByName: %v", err)
	}
	if len(c.Processes) != 2 {
		t.Fatalf("Processes = %d, want 2", len(c.Processes))
	}
	if c.Processes[0].Subprocesses[0].LifecyclePhase == "" {
		t.Fatal("subprocess missing lifecycle phase")
	}

	if _, err := s.FetchByName(context.Background(), "No Such Capability"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_CopiesAreDefensive(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	created, _ := s.Create(ctx, "Immutable", "desc")

	created.Name = "mutated"
	got, _ := s.FetchByID(ctx, created.ID)
	if got.Name != "Immutable" {
		t.Fatalf("store state mutated through returned copy: %q", got.Name)
	}
}

func TestLoadSeed_Invalid(t *testing.T) {
	if _, err := LoadSeed([]byte("capabilities: [{description: no name}]")); err == nil {
		t.Fatal("expected error for entry without a name")
	}
	if _, err := LoadSeed([]byte("{not yaml")); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
