package datapool

// Factory constructs and destroys the opaque handles managed by a Pool.
//
// CreateData is called without the pool lock held and must be safe for
// concurrent use; returning nil signals that construction failed.
// DestroyData receives only handles the same factory produced and may run
// both with and without the pool lock held, so it must not assume any
// locking context.
type Factory interface {
	CreateData() any
	DestroyData(any)
}

// FactoryFuncs adapts plain functions to the Factory interface. Destroy may
// be nil when handles need no teardown.
type FactoryFuncs struct {
	New     func() any
	Destroy func(any)
}

func (f FactoryFuncs) CreateData() any { return f.New() }

func (f FactoryFuncs) DestroyData(h any) {
	if f.Destroy != nil {
		f.Destroy(h)
	}
}
