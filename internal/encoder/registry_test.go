package encoder

import (
	"fmt"
	"sync"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// stubEncoder is the minimal Encoder used by registry tests.
type stubEncoder struct {
	Base
}

func newStub(id string, reversible bool) *stubEncoder {
	return &stubEncoder{Base: Base{
		IDValue:          id,
		DescriptionValue: "stub " + id,
		ReversibleValue:  reversible,
	}}
}

func (s *stubEncoder) Encode(text string, p Param) (string, error) {
	return text, nil
}

func TestNewRegistry(t *testing.T) {
	r, err := NewRegistry([]Encoder{newStub("alpha", true), newStub("beta", false)})
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	enc, ok := r.Get("alpha")
	if !ok {
		t.Fatal("alpha not found")
	}
	if enc.ID() != "alpha" {
		t.Errorf("expected id alpha, got %s", enc.ID())
	}
	if _, ok := r.Get("gamma"); ok {
		t.Error("gamma should not exist")
	}
}

func TestNewRegistryRejectsBadBuiltins(t *testing.T) {
	tests := []struct {
		name     string
		builtins []Encoder
	}{
		{"nil encoder", []Encoder{nil}},
		{"empty id", []Encoder{newStub("", true)}},
		{"duplicate id", []Encoder{newStub("alpha", true), newStub("alpha", false)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRegistry(tt.builtins); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRegistryListSorted(t *testing.T) {
	r, err := NewRegistry([]Encoder{newStub("zulu", true), newStub("alpha", false), newStub("mike", true)})
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	var ids []string
	for _, enc := range r.List() {
		ids = append(ids, enc.ID())
	}
	want := []string{"alpha", "mike", "zulu"}
	if len(ids) != len(want) {
		t.Fatalf("expected %d encoders, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], ids[i])
		}
	}

	var reversible []string
	for _, enc := range r.ListReversible() {
		reversible = append(reversible, enc.ID())
	}
	if len(reversible) != 2 || reversible[0] != "mike" || reversible[1] != "zulu" {
		t.Errorf("unexpected reversible set: %v", reversible)
	}
}

func TestRegistryCustomLifecycle(t *testing.T) {
	r, err := NewRegistry([]Encoder{newStub("builtin", true)})
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	if err := r.AddCustom(newStub("mine", true)); err != nil {
		t.Fatalf("AddCustom failed: %v", err)
	}
	if _, ok := r.Get("mine"); !ok {
		t.Fatal("custom encoder not retrievable")
	}

	// Ids cannot be shadowed, built-in or custom.
	if err := r.AddCustom(newStub("builtin", true)); err == nil {
		t.Error("shadowing a built-in should fail")
	}
	if err := r.AddCustom(newStub("mine", true)); err == nil {
		t.Error("shadowing a custom should fail")
	}

	if err := r.RemoveCustom("mine"); err != nil {
		t.Fatalf("RemoveCustom failed: %v", err)
	}
	if _, ok := r.Get("mine"); ok {
		t.Error("removed encoder still retrievable")
	}

	if err := r.RemoveCustom("builtin"); err == nil {
		t.Error("removing a built-in should fail")
	}
	if err := r.RemoveCustom("ghost"); err == nil {
		t.Error("removing an unknown id should fail")
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r, err := NewRegistry([]Encoder{newStub("base", true)})
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("custom-%d", n)
			if err := r.AddCustom(newStub(id, true)); err != nil {
				t.Errorf("AddCustom %s failed: %v", id, err)
			}
			for j := 0; j < 100; j++ {
				r.Get("base")
				r.List()
			}
			if err := r.RemoveCustom(id); err != nil {
				t.Errorf("RemoveCustom %s failed: %v", id, err)
			}
		}(i)
	}
	wg.Wait()

	if got := len(r.List()); got != 1 {
		t.Errorf("expected 1 encoder after cleanup, got %d", got)
	}
}
