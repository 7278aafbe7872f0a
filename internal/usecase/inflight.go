package usecase

import "sync"

// inflight tracks entities with a pending status transition.
type inflight struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newInflight() *inflight {
	return &inflight{keys: make(map[string]struct{})}
}

// acquire marks key busy. The returned release func must be called once the
// submission resolves; ok is false when key is already busy.
func (g *inflight) acquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.keys[key]; busy {
		return nil, false
	}
	g.keys[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.keys, key)
			g.mu.Unlock()
		})
	}, true
}

func entityKey(entity, id string) string {
	return entity + ":" + id
}
