package session_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/devconsole/go-auth-sdk/session"
	"github.com/devconsole/go-auth-sdk/session/storefakes"
)

func drainEvent(t *testing.T, events <-chan session.Event) session.Event {
	t.Helper()
	select {
	case event := <-events:
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for session event")
		return session.Event{}
	}
}

func TestManagerSaveSession(t *testing.T) {
	store := storefakes.NewFakeStore()
	manager := session.NewManager(store)
	events, cancel := manager.Events()
	defer cancel()

	require.False(t, manager.Active())

	record := &session.SessionData{AuthorizationCode: "cred"}
	manager.SaveSession(record)

	require.True(t, manager.Active())
	require.Equal(t, 1, store.SaveCalls)

	event := drainEvent(t, events)
	require.Equal(t, session.EventSaved, event.Kind)
	require.Equal(t, record, event.Session)
}

func TestManagerClearSession(t *testing.T) {
	store := storefakes.NewFakeStore()
	store.Set(&session.SessionData{AuthorizationCode: "cred"}, false)
	manager := session.NewManager(store)
	events, cancel := manager.Events()
	defer cancel()

	require.True(t, manager.Active())

	manager.ClearSession()

	require.False(t, manager.Active())
	require.Nil(t, manager.Current())
	require.Equal(t, 1, store.ClearCalls)

	event := drainEvent(t, events)
	require.Equal(t, session.EventCleared, event.Kind)
}

func TestManagerHasExpiredPublishesAndDeactivates(t *testing.T) {
	store := storefakes.NewFakeStore()
	store.Set(&session.SessionData{AuthorizationCode: "cred"}, false)
	manager := session.NewManager(store)
	events, cancel := manager.Events()
	defer cancel()

	require.True(t, manager.Active())

	store.Expired = true
	require.True(t, manager.HasExpired())
	require.False(t, manager.Active())

	event := drainEvent(t, events)
	require.Equal(t, session.EventExpired, event.Kind)
}

func TestManagerHasExpiredQuietWhenFresh(t *testing.T) {
	store := storefakes.NewFakeStore()
	store.Set(&session.SessionData{AuthorizationCode: "cred"}, false)
	manager := session.NewManager(store)
	events, cancel := manager.Events()
	defer cancel()

	require.False(t, manager.HasExpired())
	require.True(t, manager.Active())

	select {
	case event := <-events:
		t.Fatalf("unexpected event %v", event.Kind)
	default:
	}
}

func TestManagerWatchActive(t *testing.T) {
	store := storefakes.NewFakeStore()
	manager := session.NewManager(store)

	active, cancel := manager.WatchActive()
	defer cancel()

	require.False(t, <-active)

	manager.SaveSession(&session.SessionData{AuthorizationCode: "cred"})
	require.True(t, <-active)

	manager.ClearSession()
	require.False(t, <-active)
}

func TestManagerConcurrentMutations(t *testing.T) {
	store := storefakes.NewFakeStore()
	manager := session.NewManager(store)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			manager.SaveSession(&session.SessionData{AuthorizationCode: "cred"})
		}()
		go func() {
			defer wg.Done()
			manager.ClearSession()
		}()
	}
	wg.Wait()

	require.Equal(t, 50, store.SaveCalls)
	require.Equal(t, 50, store.ClearCalls)
}
