package favourites

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weatherview.app/internal/mocks"
	"weatherview.app/internal/models"
	"weatherview.app/pkg/errors"
)

type memoryPrefs struct {
	mutex  sync.Mutex
	values map[string]string
	puts   int
}

func newMemoryPrefs() *memoryPrefs {
	return &memoryPrefs{values: make(map[string]string)}
}

func (p *memoryPrefs) Get(ctx context.Context, key string) (string, bool, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	v, ok := p.values[key]
	return v, ok, nil
}

func (p *memoryPrefs) Put(ctx context.Context, key, value string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.values[key] = value
	p.puts++
	return nil
}

func (p *memoryPrefs) value(key string) string {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.values[key]
}

func openStore(t *testing.T, prefs *memoryPrefs) *Store {
	t.Helper()
	store, err := Open(context.Background(), prefs, mocks.NewQuietLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func flush(t *testing.T, store *Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, store.Flush(ctx))
}

func TestOpen_ParsesStoredList(t *testing.T) {
	prefs := newMemoryPrefs()
	prefs.values[PreferenceKey] = " a, b,,a ,c "

	store := openStore(t, prefs)

	assert.Equal(t, []string{"a", "b", "c"}, store.IDs())
}

func TestOpen_EmptyWhenMissing(t *testing.T) {
	store := openStore(t, newMemoryPrefs())
	assert.Empty(t, store.IDs())
}

func TestOpen_ReadFailureStartsEmpty(t *testing.T) {
	prefs := &mocks.PreferenceStore{}
	prefs.On("Get", mock.Anything, PreferenceKey).
		Return("", false, errors.NewPersistenceError("disk gone", stderrors.New("io")))
	logger := mocks.NewQuietLogger(t)

	store, err := Open(context.Background(), prefs, logger)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	assert.Empty(t, store.IDs())
	logger.AssertCalled(t, "Error", "Failed to load favourites", mock.Anything)
}

func TestOpen_RequiresDependencies(t *testing.T) {
	_, err := Open(context.Background(), nil, mocks.NewQuietLogger(t))
	assert.True(t, errors.IsValidationError(err))

	_, err = Open(context.Background(), newMemoryPrefs(), nil)
	assert.True(t, errors.IsValidationError(err))
}

func TestStore_AddIsIdempotent(t *testing.T) {
	prefs := newMemoryPrefs()
	store := openStore(t, prefs)

	store.Add("IDV60801.94866")
	store.Add("IDN60901.94768")
	store.Add("IDV60801.94866")
	flush(t, store)

	assert.Equal(t, []string{"IDV60801.94866", "IDN60901.94768"}, store.IDs())
	assert.Equal(t, "IDV60801.94866,IDN60901.94768", prefs.value(PreferenceKey))
}

func TestStore_RemoveAbsentIsNoop(t *testing.T) {
	prefs := newMemoryPrefs()
	store := openStore(t, prefs)

	store.Remove("missing")
	flush(t, store)

	assert.Empty(t, store.IDs())
	assert.Zero(t, prefs.puts)
}

func TestStore_RemoveKeepsOrder(t *testing.T) {
	prefs := newMemoryPrefs()
	store := openStore(t, prefs)

	store.Add("a")
	store.Add("b")
	store.Add("c")
	store.Remove("b")
	flush(t, store)

	assert.Equal(t, []string{"a", "c"}, store.IDs())
	assert.Equal(t, "a,c", prefs.value(PreferenceKey))
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	prefs := newMemoryPrefs()

	first, err := Open(context.Background(), prefs, mocks.NewQuietLogger(t))
	require.NoError(t, err)
	first.Add("a")
	first.Add("b")
	require.NoError(t, first.Close())

	second := openStore(t, prefs)
	assert.Equal(t, []string{"a", "b"}, second.IDs())
}

func TestStore_IDsReturnsCopy(t *testing.T) {
	store := openStore(t, newMemoryPrefs())
	store.Add("a")

	ids := store.IDs()
	ids[0] = "mutated"

	assert.Equal(t, []string{"a"}, store.IDs())
}

func TestStore_Resolve(t *testing.T) {
	store := openStore(t, newMemoryPrefs())
	store.Add("b")
	store.Add("unknown")
	store.Add("a")

	known := map[string]models.Station{
		"a": {ID: "a", City: "Alpha", StateCode: "VIC"},
		"b": {ID: "b", City: "Bravo", StateCode: "NSW"},
	}

	stations := store.Resolve(known)

	require.Len(t, stations, 2)
	assert.Equal(t, "b", stations[0].ID)
	assert.Equal(t, "a", stations[1].ID)
	assert.Equal(t, []string{"b", "unknown", "a"}, store.IDs())
}

func TestStore_WriteFailureReportedByFlush(t *testing.T) {
	prefs := &mocks.PreferenceStore{}
	prefs.On("Get", mock.Anything, PreferenceKey).Return("", false, nil)
	prefs.On("Put", mock.Anything, PreferenceKey, "a").
		Return(errors.NewPersistenceError("read-only", nil))

	store, err := Open(context.Background(), prefs, mocks.NewQuietLogger(t))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	store.Add("a")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err = store.Flush(ctx)
	assert.True(t, errors.IsPersistenceError(err))
	assert.Equal(t, []string{"a"}, store.IDs())
}

func TestStore_MutationAfterCloseStaysInMemory(t *testing.T) {
	prefs := newMemoryPrefs()
	store, err := Open(context.Background(), prefs, mocks.NewQuietLogger(t))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store.Add("late")

	assert.Equal(t, []string{"late"}, store.IDs())
	assert.Zero(t, prefs.puts)
	assert.NoError(t, store.Flush(context.Background()))
}

func TestStore_AddEmptyIDPanics(t *testing.T) {
	store := openStore(t, newMemoryPrefs())
	assert.Panics(t, func() { store.Add("") })
}
