// Package systems contains ECS systems for the walker.
package systems

import "github.com/mlange-42/ark/ecs"

// System is per-frame logic driven by the host loop.
// Initialize runs once before the first frame, Update once per frame and
// Finalize once on shutdown, all on the loop's goroutine.
type System interface {
	Initialize(w *ecs.World)
	Update(w *ecs.World, dt float32)
	Finalize(w *ecs.World)
}

// SystemInfo describes a registered system for perf tracking and display.
type SystemInfo struct {
	ID          string // Internal identifier (used as the perf phase name)
	Name        string // Display name
	Description string // What this system does
}

// PhaseTimer receives phase boundaries while systems run.
type PhaseTimer interface {
	StartPhase(phase string)
}

type entry struct {
	info   SystemInfo
	system System
}

// Registry holds systems in execution order.
type Registry struct {
	entries []entry
	byID    map[string]int

	initialized bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]int)}
}

// Register appends a system. Registering an existing ID replaces it in place.
func (r *Registry) Register(info SystemInfo, s System) {
	if i, ok := r.byID[info.ID]; ok {
		r.entries[i] = entry{info: info, system: s}
		return
	}
	r.byID[info.ID] = len(r.entries)
	r.entries = append(r.entries, entry{info: info, system: s})
}

// Initialize runs Initialize on every system once, in order.
func (r *Registry) Initialize(w *ecs.World) {
	if r.initialized {
		return
	}
	r.initialized = true
	for _, e := range r.entries {
		e.system.Initialize(w)
	}
}

// Update runs every system for one frame. timer may be nil.
func (r *Registry) Update(w *ecs.World, dt float32, timer PhaseTimer) {
	for _, e := range r.entries {
		if timer != nil {
			timer.StartPhase(e.info.ID)
		}
		e.system.Update(w, dt)
	}
}

// Finalize runs Finalize on every system in reverse order.
func (r *Registry) Finalize(w *ecs.World) {
	if !r.initialized {
		return
	}
	for i := len(r.entries) - 1; i >= 0; i-- {
		r.entries[i].system.Finalize(w)
	}
	r.initialized = false
}

// Get returns system info by ID.
func (r *Registry) Get(id string) (SystemInfo, bool) {
	i, ok := r.byID[id]
	if !ok {
		return SystemInfo{}, false
	}
	return r.entries[i].info, true
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *Registry) GetName(id string) string {
	if info, ok := r.Get(id); ok {
		return info.Name
	}
	return id
}

// IDs returns all system IDs in execution order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.info.ID
	}
	return ids
}
