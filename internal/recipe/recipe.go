// Package recipe persists named chain specs as JSON files so pipelines can
// be saved, shared and replayed by name.
package recipe

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/harlowgray/transmute/internal/wire"
)

// Recipe is a named, tagged chain spec with bookkeeping timestamps.
type Recipe struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Chain       wire.ChainSpec `json:"chain"`
	CreatedAt   string         `json:"created_at,omitempty"`
	UpdatedAt   string         `json:"updated_at,omitempty"`
}

// Manager stores recipes in memory and mirrors them to a directory of JSON
// files when a store path is configured. Safe for concurrent use.
type Manager struct {
	mu        sync.RWMutex
	recipes   map[string]*Recipe
	storePath string
	fileCodec wire.JSONCodec
}

// NewManager builds a manager. An empty storePath keeps recipes in memory
// only.
func NewManager(storePath string) *Manager {
	return &Manager{
		recipes:   make(map[string]*Recipe),
		storePath: storePath,
		fileCodec: wire.JSONCodec{Indent: true},
	}
}

// Save stores a recipe, stamping timestamps and overwriting any previous
// recipe of the same name.
func (m *Manager) Save(recipe *Recipe) error {
	if recipe.Name == "" {
		return fmt.Errorf("recipe name cannot be empty")
	}
	if len(recipe.Chain.Steps) == 0 {
		return fmt.Errorf("recipe %s has no steps", recipe.Name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	if prev, exists := m.recipes[recipe.Name]; exists && prev.CreatedAt != "" {
		recipe.CreatedAt = prev.CreatedAt
	} else if recipe.CreatedAt == "" {
		recipe.CreatedAt = now
	}
	recipe.UpdatedAt = now

	m.recipes[recipe.Name] = recipe

	if m.storePath != "" {
		return m.persist(recipe)
	}
	return nil
}

// Get retrieves a recipe by name.
func (m *Manager) Get(name string) (*Recipe, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	recipe, exists := m.recipes[name]
	return recipe, exists
}

// List returns all recipes sorted by name.
func (m *Manager) List() []*Recipe {
	m.mu.RLock()
	defer m.mu.RUnlock()

	recipes := make([]*Recipe, 0, len(m.recipes))
	for _, recipe := range m.recipes {
		recipes = append(recipes, recipe)
	}
	sort.Slice(recipes, func(i, j int) bool {
		return recipes[i].Name < recipes[j].Name
	})
	return recipes
}

// Delete removes a recipe from memory and disk. Deleting an unknown name
// is a no-op.
func (m *Manager) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.recipes, name)

	if m.storePath != "" {
		path := filepath.Join(m.storePath, sanitizeFilename(name)+".json")
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("delete recipe file: %w", err)
		}
	}
	return nil
}

// Load reads every recipe file from the store path.
func (m *Manager) Load() error {
	if m.storePath == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.storePath, 0o755); err != nil {
		return fmt.Errorf("create recipes directory: %w", err)
	}

	entries, err := os.ReadDir(m.storePath)
	if err != nil {
		return fmt.Errorf("read recipes directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(m.storePath, entry.Name()))
		if err != nil {
			return fmt.Errorf("read recipe %s: %w", entry.Name(), err)
		}

		var recipe Recipe
		if err := m.fileCodec.Unmarshal(data, &recipe); err != nil {
			return fmt.Errorf("parse recipe %s: %w", entry.Name(), err)
		}
		m.recipes[recipe.Name] = &recipe
	}
	return nil
}

// Search finds recipes whose name, description or tags contain the query,
// case-insensitively.
func (m *Manager) Search(query string) []*Recipe {
	m.mu.RLock()
	defer m.mu.RUnlock()

	q := strings.ToLower(query)
	results := make([]*Recipe, 0)
	for _, recipe := range m.recipes {
		if matches(recipe, q) {
			results = append(results, recipe)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})
	return results
}

func matches(recipe *Recipe, q string) bool {
	if strings.Contains(strings.ToLower(recipe.Name), q) ||
		strings.Contains(strings.ToLower(recipe.Description), q) {
		return true
	}
	for _, tag := range recipe.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func (m *Manager) persist(recipe *Recipe) error {
	if err := os.MkdirAll(m.storePath, 0o755); err != nil {
		return fmt.Errorf("create recipes directory: %w", err)
	}

	data, err := m.fileCodec.Marshal(recipe)
	if err != nil {
		return fmt.Errorf("serialize recipe: %w", err)
	}

	path := filepath.Join(m.storePath, sanitizeFilename(recipe.Name)+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write recipe file: %w", err)
	}
	return nil
}

// sanitizeFilename keeps recipe names from escaping the store directory.
func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "recipe"
	}
	return b.String()
}
