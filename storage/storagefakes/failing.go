package storagefakes

import (
	"context"
	"sync"

	"github.com/jrsteele09/portfolio-lab/storage"
)

var _ storage.KV = (*FailingKV)(nil)

// FailingKV wraps a Memory store and fails selected operations on demand.
type FailingKV struct {
	*storage.Memory
	FailGet    bool
	FailSet    bool
	FailDelete bool
	// FailSetKey fails Set only for this key when non-empty.
	FailSetKey string

	lock  sync.Mutex
	calls []string
}

func NewFailingKV() *FailingKV {
	return &FailingKV{Memory: storage.NewMemory()}
}

func (f *FailingKV) Get(ctx context.Context, key string) (string, bool, error) {
	f.record("get:" + key)
	if f.FailGet {
		return "", false, storage.ErrUnavailable
	}
	return f.Memory.Get(ctx, key)
}

func (f *FailingKV) Set(ctx context.Context, key, value string) error {
	f.record("set:" + key)
	if f.FailSet || (f.FailSetKey != "" && f.FailSetKey == key) {
		return storage.ErrUnavailable
	}
	return f.Memory.Set(ctx, key, value)
}

func (f *FailingKV) Delete(ctx context.Context, key string) error {
	f.record("delete:" + key)
	if f.FailDelete {
		return storage.ErrUnavailable
	}
	return f.Memory.Delete(ctx, key)
}

// Calls returns the operations seen so far, in order.
func (f *FailingKV) Calls() []string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *FailingKV) record(call string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.calls = append(f.calls, call)
}
