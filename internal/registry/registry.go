// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"image"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/duel-arcade/internal/core"
)

// Game is the core interface that all arcade games must implement.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "hockey").
	// Used for CLI commands, config files and outcome storage.
	ID() string

	// Title returns a human-readable name for display (e.g., "Air Hockey").
	Title() string

	// Players returns how many people share the surface.
	Players() int

	// Reset initializes the game and returns it to its first phase.
	// The RuntimeConfig provides the clock, RNG seed and outcome recorder.
	Reset(cfg core.RuntimeConfig)

	// HandleAction applies a discrete shell action (confirm, restart, ...).
	HandleAction(a core.Action)

	// HandlePointer applies one pointer event with any number of contacts.
	HandlePointer(ev core.PointerEvent)

	// Step advances the simulation by one tick at time now.
	// Returns the result of this tick including current game state and
	// any audio/visual cues raised during it.
	Step(now time.Time) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call. Render never mutates state.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// PointerSurfacer is implemented by games that accept pointer input. It
// reports where on a w by h cell screen the play field is drawn, so hosts can
// map mouse positions, and the logical field size events are mapped onto.
type PointerSurfacer interface {
	PointerSurface(w, h int) core.SurfaceRect
	Field() core.Vec2
}

// ImageRenderer is implemented by games that can draw a raster frame.
type ImageRenderer interface {
	RenderImage(scale int) *image.RGBA
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID      string
	Title   string
	Players int
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get metadata by creating a temporary instance
	g := f()
	infos[id] = GameInfo{ID: id, Title: g.Title(), Players: g.Players()}
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
