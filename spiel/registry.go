package spiel

import (
	"fmt"
	"sort"
	"sync"
)

// Factory builds a game from its parameters. Unknown parameters are
// ignored by convention so configs can be shared across games.
type Factory func(params map[string]any) (Game, error)

var (
	registryMu sync.Mutex
	registry   = make(map[string]Factory)
)

// Register makes a game loadable by name. Registering the same name
// twice panics, it indicates an init collision.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[name]; ok {
		panic(fmt.Sprintf("spiel: game %q registered twice", name))
	}
	registry[name] = factory
}

// LoadGame instantiates a registered game. A nil params map loads the
// game with its defaults.
func LoadGame(name string, params map[string]any) (Game, error) {
	registryMu.Lock()
	factory, ok := registry[name]
	registryMu.Unlock()
	if !ok {
		return nil, fmt.Errorf("spiel: unknown game %q (registered: %v)", name, RegisteredGames())
	}
	game, err := factory(params)
	if err != nil {
		return nil, fmt.Errorf("spiel: loading %q: %w", name, err)
	}
	return game, nil
}

// RegisteredGames lists the registered game names, sorted.
func RegisteredGames() []string {
	registryMu.Lock()
	defer registryMu.Unlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IntParam reads an integer game parameter, tolerating the types a YAML
// or JSON config produces.
func IntParam(params map[string]any, key string, def int) int {
	if params == nil {
		return def
	}
	switch v := params[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}
