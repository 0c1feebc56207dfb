// Package params persists per-encoder parameter values as a flat key-value
// bag. Single-value encoders store under their id ("caesar" -> 7);
// multi-key encoders store under dotted sub-paths
// ("doubletransposition.key1" -> "ZEBRA"). The bag serializes as plain
// JSON and resolves back into typed engine parameters on demand.
package params

import (
	"fmt"
	"os"
	"sync"

	"github.com/harlowgray/transmute/internal/encoder"
	"github.com/harlowgray/transmute/internal/wire"
)

// Bag is a concurrency-safe flat parameter store.
type Bag struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewBag builds an empty bag.
func NewBag() *Bag {
	return &Bag{values: make(map[string]any)}
}

// Set stores a value under a path.
func (b *Bag) Set(path string, value any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[path] = value
}

// Get retrieves the value at a path.
func (b *Bag) Get(path string) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.values[path]
	return v, ok
}

// Delete removes a path.
func (b *Bag) Delete(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.values, path)
}

// Param resolves the stored values for an encoder into a typed parameter.
// kind is one of the wire parameter kinds. Paths with nothing stored
// resolve to nil, meaning the encoder's default.
func (b *Bag) Param(id, kind string) (encoder.Param, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	switch kind {
	case wire.KindShift:
		n, ok, err := b.intAt(id)
		if err != nil || !ok {
			return nil, err
		}
		return encoder.ShiftParam(n), nil
	case wire.KindInt:
		n, ok, err := b.intAt(id)
		if err != nil || !ok {
			return nil, err
		}
		return encoder.IntParam(n), nil
	case wire.KindKey:
		s, ok, err := b.stringAt(id)
		if err != nil || !ok {
			return nil, err
		}
		return encoder.KeyParam(s), nil
	case wire.KindText:
		s, ok, err := b.stringAt(id)
		if err != nil || !ok {
			return nil, err
		}
		return encoder.TextParam(s), nil
	case wire.KindDualKey:
		first, ok1, err := b.stringAt(id + ".key1")
		if err != nil {
			return nil, err
		}
		second, ok2, err := b.stringAt(id + ".key2")
		if err != nil {
			return nil, err
		}
		if !ok1 && !ok2 {
			return nil, nil
		}
		return encoder.DualKeyParam{First: first, Second: second}, nil
	case wire.KindPair:
		a, okA, err := b.intAt(id + ".a")
		if err != nil {
			return nil, err
		}
		bb, okB, err := b.intAt(id + ".b")
		if err != nil {
			return nil, err
		}
		if !okA && !okB {
			return nil, nil
		}
		return encoder.PairParam{A: a, B: bb}, nil
	default:
		return nil, fmt.Errorf("unknown parameter kind %q for %s", kind, id)
	}
}

func (b *Bag) intAt(path string) (int, bool, error) {
	v, ok := b.values[path]
	if !ok {
		return 0, false, nil
	}
	switch n := v.(type) {
	case int:
		return n, true, nil
	// JSON numbers arrive as float64.
	case float64:
		return int(n), true, nil
	default:
		return 0, false, fmt.Errorf("%s holds %T, want a number", path, v)
	}
}

func (b *Bag) stringAt(path string) (string, bool, error) {
	v, ok := b.values[path]
	if !ok {
		return "", false, nil
	}
	s, isString := v.(string)
	if !isString {
		return "", false, fmt.Errorf("%s holds %T, want a string", path, v)
	}
	return s, true, nil
}

// Snapshot copies the bag for serialization.
func (b *Bag) Snapshot() map[string]any {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(map[string]any, len(b.values))
	for k, v := range b.values {
		out[k] = v
	}
	return out
}

// SaveFile writes the bag as indented JSON.
func (b *Bag) SaveFile(path string) error {
	data, err := wire.JSONCodec{Indent: true}.Marshal(b.Snapshot())
	if err != nil {
		return fmt.Errorf("serialize parameter bag: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write parameter bag: %w", err)
	}
	return nil
}

// LoadFile reads a bag written by SaveFile, replacing current contents.
func (b *Bag) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read parameter bag: %w", err)
	}

	values := make(map[string]any)
	if err := (wire.JSONCodec{}).Unmarshal(data, &values); err != nil {
		return fmt.Errorf("parse parameter bag: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.values = values
	return nil
}
