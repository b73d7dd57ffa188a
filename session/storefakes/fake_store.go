// Package storefakes provides an in-memory session.Store for tests.
package storefakes

import (
	"sync"

	"github.com/devconsole/go-auth-sdk/session"
)

// FakeStore is an in-memory session.Store with call counters and an
// overridable expiry result.
type FakeStore struct {
	mu         sync.Mutex
	data       *session.SessionData
	Expired    bool
	SaveCalls  int
	ClearCalls int
}

var _ session.Store = (*FakeStore)(nil)

// NewFakeStore creates an empty FakeStore that reports expired.
func NewFakeStore() *FakeStore {
	return &FakeStore{Expired: true}
}

func (f *FakeStore) Get() *session.SessionData {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.data == nil {
		return nil
	}
	copied := *f.data
	return &copied
}

func (f *FakeStore) Save(data *session.SessionData) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SaveCalls++
	if data == nil {
		return
	}
	copied := *data
	f.data = &copied
	f.Expired = false
}

func (f *FakeStore) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ClearCalls++
	f.data = nil
	f.Expired = true
}

func (f *FakeStore) HasExpired() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Expired
}

// Set seeds the store with a record without counting as a Save call.
func (f *FakeStore) Set(data *session.SessionData, expired bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = data
	f.Expired = expired
}
