package catalog

import (
	"sync"
	"time"

	"github.com/MarcGrol/storefront/lib/mytime"
)

type cacheEntry struct {
	generation uint64
	fetchedAt  time.Time
	view       CategoryProducts
}

// viewCache holds the last product list per scope. Each fetch takes a generation number
// when it starts; a fetch that finishes after a newer one for the same scope is discarded.
type viewCache struct {
	sync.Mutex
	ttl        time.Duration
	nower      mytime.Nower
	generation uint64
	entries    map[string]cacheEntry
}

func newViewCache(ttl time.Duration, nower mytime.Nower) *viewCache {
	return &viewCache{
		ttl:     ttl,
		nower:   nower,
		entries: map[string]cacheEntry{},
	}
}

func (vc *viewCache) get(scope string) (CategoryProducts, bool) {
	vc.Lock()
	defer vc.Unlock()

	entry, found := vc.entries[scope]
	if !found || vc.nower.Now().Sub(entry.fetchedAt) >= vc.ttl {
		return CategoryProducts{}, false
	}
	return entry.view, true
}

func (vc *viewCache) begin() uint64 {
	vc.Lock()
	defer vc.Unlock()

	vc.generation++
	return vc.generation
}

// commit stores view unless a newer fetch for scope was committed already.
// It returns the view that is current after the call.
func (vc *viewCache) commit(scope string, generation uint64, view CategoryProducts) (CategoryProducts, bool) {
	vc.Lock()
	defer vc.Unlock()

	current, found := vc.entries[scope]
	if found && current.generation > generation {
		return current.view, false
	}

	vc.entries[scope] = cacheEntry{
		generation: generation,
		fetchedAt:  vc.nower.Now(),
		view:       view,
	}
	return view, true
}
