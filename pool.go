// Package datapool provides an unbounded, dynamically sized pool for reusing
// expensive session-local data. All threads share one lock-guarded bank
// instead of caching per goroutine, which maximizes reuse of the handles.
package datapool

import (
	"sync"
	"sync/atomic"
)

// seedCapacity is the first allocation Return makes on a pool that has never
// grown. Session workloads tend to batch in the hundreds.
const seedCapacity = 128

// Stat is a best-effort snapshot of the pool counters. The fields are read
// independently without the pool lock, so under concurrent mutation they may
// not describe the same instant.
type Stat struct {
	NFree    uint32 // handles currently banked for reuse
	NCreated uint32 // handles created since the last Reset
}

// Pool banks opaque data handles for reuse. Construction and destruction of
// handles is delegated to a Factory; the pool itself never looks inside
// them. The zero value is not usable, use New.
type Pool struct {
	mu sync.Mutex

	// capacity and size are written under mu only. Lock-free loads serve as
	// fast-path hints and are always re-checked after locking.
	capacity atomic.Uint32
	size     atomic.Uint32

	// ncreated is advisory statistics; the Borrow fallback increments it
	// without taking mu.
	ncreated atomic.Uint32

	slots []any // guarded by mu; slots[:size] hold banked handles

	factory atomic.Pointer[factoryBox]

	alloc func(n uint32) []any // swapped in tests to simulate failed growth
}

// factoryBox keeps the factory reference loadable without the pool lock, for
// the Borrow fallback and for Return's failed-growth destroy path.
type factoryBox struct{ f Factory }

// New returns an empty pool over f. No handles are constructed; capacity,
// size and the creation counter all start at zero. f may be nil, in which
// case Borrow returns nil until a factory is installed via Reset.
func New(f Factory) *Pool {
	p := &Pool{alloc: defaultAlloc}
	p.factory.Store(&factoryBox{f: f})
	return p
}

func defaultAlloc(n uint32) []any { return make([]any, n) }

// Borrow hands out one handle; the caller owns it exclusively until it is
// passed back to Return. Banked handles are reused in LIFO order. When the
// bank is empty a fresh handle is constructed via the factory without the
// pool lock held; nil means the factory could not produce one.
func (p *Pool) Borrow() any {
	if p.size.Load() != 0 {
		p.mu.Lock()
		if n := p.size.Load(); n != 0 {
			h := p.slots[n-1]
			p.slots[n-1] = nil // don't retain a stale reference
			p.size.Store(n - 1)
			p.mu.Unlock()
			return h
		}
		p.mu.Unlock()
	}

	f := p.factory.Load().f
	if f == nil {
		return nil
	}
	h := f.CreateData()
	if h != nil {
		p.ncreated.Add(1)
	}
	return h
}

// Return banks a previously borrowed handle for reuse. Nil handles are
// ignored. When the bank is full and cannot grow, the handle is destroyed
// via the factory instead of being banked; the destroy call runs after the
// lock is released.
func (p *Pool) Return(h any) {
	if h == nil {
		return
	}

	p.mu.Lock()
	size := p.size.Load()
	if capa := p.capacity.Load(); size == capa {
		var newCap uint32 = seedCapacity
		if capa != 0 {
			// integer 3/2 growth stalls at capacity 1, force progress
			newCap = max(capa*3/2, capa+1)
		}
		buf := p.alloc(newCap)
		if buf == nil {
			f := p.factory.Load().f
			p.mu.Unlock()
			if f != nil {
				f.DestroyData(h)
			}
			return
		}
		copy(buf, p.slots[:size])
		p.slots = buf
		p.capacity.Store(newCap)
	}
	p.slots[size] = h
	p.size.Store(size + 1)
	p.mu.Unlock()
}

// Reserve grows the bank to hold at least n handles and pre-constructs
// handles up to n, so later Borrow calls skip construction cost. Best
// effort: it gives up silently when the buffer cannot grow or the factory
// stops producing, leaving the pool in its previous valid state.
func (p *Pool) Reserve(n uint32) {
	if p.capacity.Load() >= n {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	capa := p.capacity.Load()
	if capa >= n {
		return
	}
	buf := p.alloc(max(capa*3/2, n))
	if buf == nil {
		return
	}
	size := p.size.Load()
	copy(buf, p.slots[:size])
	p.slots = buf
	p.capacity.Store(uint32(len(buf)))

	f := p.factory.Load().f
	if f == nil {
		return
	}
	for ; size < n; size++ {
		h := f.CreateData()
		if h == nil {
			break
		}
		p.ncreated.Add(1)
		p.slots[size] = h
		p.size.Store(size + 1)
	}
}

// Reset installs a new factory (possibly nil) and discards all pool state.
// Handles banked at the time of the call are destroyed with the factory
// being replaced. Destruction happens outside the lock so that concurrent
// traffic on the fresh state is not blocked behind slow teardown.
func (p *Pool) Reset(f Factory) {
	p.mu.Lock()
	size := p.size.Load()
	slots := p.slots
	old := p.factory.Load().f
	p.slots = nil
	p.capacity.Store(0)
	p.size.Store(0)
	p.ncreated.Store(0)
	p.factory.Store(&factoryBox{f: f})
	p.mu.Unlock()

	if old == nil {
		return
	}
	for _, h := range slots[:size] {
		old.DestroyData(h)
	}
}

// Close drains the bank, destroying every banked handle, and detaches the
// factory. The pool stays safe to use but constructs nothing afterwards.
func (p *Pool) Close() {
	p.Reset(nil)
}

// Stat returns a snapshot of the pool counters.
func (p *Pool) Stat() Stat {
	return Stat{
		NFree:    p.size.Load(),
		NCreated: p.ncreated.Load(),
	}
}
