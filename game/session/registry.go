package session

import (
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/wricardo/ping-game/game/engine"
)

const recentLimit = 32

// Stats summarizes the registry for observers.
type Stats struct {
	Waiting   int `json:"waiting"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

// Registry is the process-wide matchmaking state: a FIFO queue of waiting
// players and the set of live matches.
type Registry struct {
	mu        sync.Mutex
	waiting   []*Player
	matches   map[string]*Match
	recent    []MatchInfo
	completed int
	debug     bool

	newEngine func() engine.Engine
	newID     func() string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		matches:   make(map[string]*Match),
		newEngine: func() engine.Engine { return engine.NewEngine() },
		newID:     uuid.NewString,
	}
}

// SetDebug makes matches created from now on log every board after each
// action.
func (r *Registry) SetDebug(on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debug = on
}

// Join queues p, or pairs it with the longest-waiting player. When a pair
// is formed the waiting player becomes white, p becomes black, and the new
// match is returned; the caller starts it.
func (r *Registry) Join(p *Player) (*Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, w := range r.waiting {
		if w == p {
			return nil, ErrAlreadyWaiting
		}
	}

	if len(r.waiting) == 0 {
		r.waiting = append(r.waiting, p)
		log.Printf("[REGISTRY] %q waiting for an opponent", p.Name())
		return nil, nil
	}

	white := r.waiting[0]
	r.waiting = r.waiting[1:]

	m := NewMatch(r.newID(), white, p, r.newEngine(), r.finished)
	m.debug = r.debug
	r.matches[m.ID] = m
	white.attach(m, engine.White)
	p.attach(m, engine.Black)

	log.Printf("[REGISTRY] paired %q (white) with %q (black) in match %s", white.Name(), p.Name(), m.ID)
	return m, nil
}

// Leave removes p from the waiting queue. It is a no-op for players that are
// not waiting.
func (r *Registry) Leave(p *Player) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, w := range r.waiting {
		if w == p {
			r.waiting = append(r.waiting[:i], r.waiting[i+1:]...)
			log.Printf("[REGISTRY] %q left the queue", p.Name())
			return
		}
	}
}

// finished runs with the match lock held.
func (r *Registry) finished(m *Match) {
	info := m.snapshotLocked()

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.matches, m.ID)
	r.completed++
	r.recent = append(r.recent, info)
	if len(r.recent) > recentLimit {
		r.recent = r.recent[len(r.recent)-recentLimit:]
	}
}

func (r *Registry) live() []*Match {
	r.mu.Lock()
	defer r.mu.Unlock()

	matches := make([]*Match, 0, len(r.matches))
	for _, m := range r.matches {
		matches = append(matches, m)
	}
	return matches
}

// List returns the live matches, oldest first.
func (r *Registry) List() []MatchInfo {
	// Snapshots take the match lock, so the registry lock must not be held.
	matches := r.live()
	infos := make([]MatchInfo, 0, len(matches))
	for _, m := range matches {
		infos = append(infos, m.Snapshot())
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].CreatedAt.Equal(infos[j].CreatedAt) {
			return infos[i].ID < infos[j].ID
		}
		return infos[i].CreatedAt.Before(infos[j].CreatedAt)
	})
	return infos
}

// Recent returns the most recently finished matches, newest last.
func (r *Registry) Recent() []MatchInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]MatchInfo(nil), r.recent...)
}

// Get returns a live or recently finished match by id.
func (r *Registry) Get(id string) (MatchInfo, error) {
	r.mu.Lock()
	m, ok := r.matches[id]
	if !ok {
		for i := len(r.recent) - 1; i >= 0; i-- {
			if r.recent[i].ID == id {
				info := r.recent[i]
				r.mu.Unlock()
				return info, nil
			}
		}
	}
	r.mu.Unlock()

	if !ok {
		return MatchInfo{}, ErrMatchNotFound
	}
	return m.Snapshot(), nil
}

// Stats returns queue and match counters.
func (r *Registry) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{
		Waiting:   len(r.waiting),
		Active:    len(r.matches),
		Completed: r.completed,
	}
}
