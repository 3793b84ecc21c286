// Package factories ships ready-made datapool.Factory implementations for
// common session-data shapes.
package factories

import (
	"go.uber.org/zap"

	"github.com/ozontech/datapool"
)

// Bytes returns a factory producing fixed-size byte buffers. Buffers need no
// teardown, so destroy is a no-op and dropped buffers are left to the GC.
func Bytes(size int) datapool.Factory {
	return datapool.FactoryFuncs{
		New: func() any { return make([]byte, size) },
	}
}

// Logged decorates a factory with debug-level logging of every create and
// destroy call. Useful to see how often a pool actually misses.
func Logged(inner datapool.Factory, log *zap.Logger) datapool.Factory {
	return &loggedFactory{inner: inner, log: log.Named("factory")}
}

type loggedFactory struct {
	inner datapool.Factory
	log   *zap.Logger
}

func (f *loggedFactory) CreateData() any {
	h := f.inner.CreateData()
	if h == nil {
		f.log.Warn("create failed")
		return nil
	}
	f.log.Debug("handle created")
	return h
}

func (f *loggedFactory) DestroyData(h any) {
	f.inner.DestroyData(h)
	f.log.Debug("handle destroyed")
}
