package session

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdesk/staffdesk/internal/log"
	"github.com/staffdesk/staffdesk/internal/storage"
)

var alice = Identity{Token: "t1", Username: "alice", Role: RoleEmployee, UserID: 7}

// failingStore accepts nothing; used to show persistence errors never surface.
type failingStore struct{ puts, deletes int }

func (f *failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, stderrors.New("disk on fire")
}
func (f *failingStore) Put(context.Context, string, []byte) error {
	f.puts++
	return stderrors.New("disk on fire")
}
func (f *failingStore) Delete(context.Context, string) error {
	f.deletes++
	return stderrors.New("disk on fire")
}
func (f *failingStore) Close() error { return nil }

func persisted(t *testing.T, store storage.Store) (Identity, bool) {
	t.Helper()
	data, err := store.Get(context.Background(), StorageKey)
	if stderrors.Is(err, storage.ErrNotFound) {
		return Identity{}, false
	}
	require.NoError(t, err)
	var id Identity
	require.NoError(t, json.Unmarshal(data, &id))
	return id, true
}

func TestLoginThenRead(t *testing.T) {
	store := storage.NewMemoryStore()
	s := New(store, log.Discard())

	s.Login(alice)

	assert.Equal(t, "t1", s.Token())
	assert.Equal(t, "alice", s.Username())
	assert.Equal(t, RoleEmployee, s.Role())
	assert.Equal(t, UserID(7), s.UserID())
	assert.True(t, s.Authenticated())

	got, ok := persisted(t, store)
	require.True(t, ok)
	assert.Equal(t, alice, got)
}

func TestLoginReplacesWholeIdentity(t *testing.T) {
	s := New(storage.NewMemoryStore(), log.Discard())
	s.Login(alice)

	bob := Identity{Token: "t2", Username: "bob", Role: RoleCustomer, UserID: 9}
	s.Login(bob)
	assert.Equal(t, bob, s.Snapshot())
}

func TestLoginRefusesIncompleteIdentity(t *testing.T) {
	store := storage.NewMemoryStore()
	s := New(store, log.Discard())
	s.Login(alice)

	s.Login(Identity{Token: "t9", Username: "mallory", Role: RoleAdmin})
	assert.Equal(t, alice, s.Snapshot())

	got, _ := persisted(t, store)
	assert.Equal(t, alice, got)
}

func TestLogoutIdempotent(t *testing.T) {
	store := storage.NewMemoryStore()
	s := New(store, log.Discard())
	s.Login(alice)

	events := 0
	s.Subscribe(func(Event) { events++ })

	s.Logout()
	assert.Equal(t, Anonymous, s.Snapshot())
	assert.False(t, s.Authenticated())
	_, ok := persisted(t, store)
	assert.False(t, ok)

	s.Logout()
	assert.Equal(t, Anonymous, s.Snapshot())
	assert.Equal(t, 1, events, "second logout must not notify")
}

func TestPersistenceFailureNeverSurfaces(t *testing.T) {
	store := &failingStore{}
	s := New(store, log.Discard())

	s.Login(alice)
	assert.Equal(t, alice, s.Snapshot())
	assert.Equal(t, 1, store.puts)

	s.Logout()
	assert.True(t, s.Snapshot().IsAnonymous())
	assert.Equal(t, 1, store.deletes)
}

func TestLoadRestoresSession(t *testing.T) {
	store := storage.NewMemoryStore()
	New(store, log.Discard()).Login(alice)

	restored := Load(context.Background(), store, log.Discard())
	assert.Equal(t, alice, restored.Snapshot())
}

func TestLoadTreatsBadCopiesAsAnonymous(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed json", `{"token":`},
		{"missing token", `{"username":"alice","role":"EMPLOYEE","userId":7}`},
		{"missing username", `{"token":"t1","role":"EMPLOYEE","userId":7}`},
		{"missing role", `{"token":"t1","username":"alice","userId":7}`},
		{"missing userId", `{"token":"t1","username":"alice","role":"EMPLOYEE"}`},
		{"empty token", `{"token":"","username":"alice","role":"EMPLOYEE","userId":7}`},
		{"unknown role", `{"token":"t1","username":"alice","role":"ROOT","userId":7}`},
		{"non numeric userId", `{"token":"t1","username":"alice","role":"EMPLOYEE","userId":"seven"}`},
		{"not an object", `"t1"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			require.NoError(t, store.Put(context.Background(), StorageKey, []byte(tt.data)))

			s := Load(context.Background(), store, log.Discard())
			assert.Equal(t, Anonymous, s.Snapshot())
			assert.Empty(t, s.Token())
			assert.Equal(t, RoleAnonymous, s.Role())
			assert.Zero(t, s.UserID())

			_, ok := persisted(t, store)
			assert.False(t, ok, "bad copy should be removed")
		})
	}
}

func TestLoadAcceptsStringUserID(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Put(context.Background(), StorageKey,
		[]byte(`{"token":"t1","username":"alice","role":"EMPLOYEE","userId":"7"}`)))

	s := Load(context.Background(), store, log.Discard())
	assert.Equal(t, alice, s.Snapshot())
}

func TestLoadUnreadableStore(t *testing.T) {
	store := &failingStore{}
	s := Load(context.Background(), store, log.Discard())
	assert.True(t, s.Snapshot().IsAnonymous())
	assert.Equal(t, 1, store.deletes)
}

func TestSubscribe(t *testing.T) {
	s := New(nil, log.Discard())

	var got []Event
	unsubscribe := s.Subscribe(func(ev Event) { got = append(got, ev) })

	s.Login(alice)
	s.Logout()
	unsubscribe()
	unsubscribe()
	s.Login(alice)

	require.Len(t, got, 2)
	assert.Equal(t, LoggedIn, got[0].Kind)
	assert.Equal(t, alice, got[0].Identity)
	assert.Equal(t, LoggedOut, got[1].Kind)
	assert.True(t, got[1].Identity.IsAnonymous())
}

func TestSubscriberMayReadSession(t *testing.T) {
	s := New(nil, log.Discard())
	var seen Role
	s.Subscribe(func(Event) { seen = s.Role() })

	s.Login(alice)
	assert.Equal(t, RoleEmployee, seen)
}
