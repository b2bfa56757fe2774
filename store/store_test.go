package store_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/weblog"
	"github.com/xy-planning-network/weblog/store"
)

func newTestPool(t *testing.T) *store.Pool {
	t.Helper()

	pool, err := store.Connect(&store.CxnConfig{URL: filepath.Join(t.TempDir(), "weblog.db")}, weblog.Testing)
	require.Nil(t, err)
	require.Nil(t, pool.Initialize(context.Background()))
	t.Cleanup(func() { pool.Close() })

	return pool
}

func newTestDB(t *testing.T, pool *store.Pool) *store.DB {
	t.Helper()

	scope := pool.NewScope(context.Background())
	t.Cleanup(func() { scope.Close() })

	db, err := scope.DB()
	require.Nil(t, err)

	return db
}

func TestConnect(t *testing.T) {
	for _, tc := range []struct {
		name string
		cfg  *store.CxnConfig
	}{
		{"nil", nil},
		{"zero", new(store.CxnConfig)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			pool, err := store.Connect(tc.cfg, weblog.Testing)

			// Assert
			require.Nil(t, pool)
			require.ErrorIs(t, err, weblog.ErrBadConfig)
		})
	}
}

func TestListEntriesEmpty(t *testing.T) {
	// Arrange
	db := newTestDB(t, newTestPool(t))

	// Act
	entries, err := db.ListEntries()

	// Assert
	require.Nil(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)
}

func TestAddEntryListsNewestFirst(t *testing.T) {
	// Arrange
	db := newTestDB(t, newTestPool(t))

	var ids []uint
	for i := 0; i < 5; i++ {
		// Act
		id, err := db.AddEntry(fmt.Sprintf("title %d", i), fmt.Sprintf("text %d", i))

		// Assert
		require.Nil(t, err)
		ids = append(ids, id)

		entries, err := db.ListEntries()
		require.Nil(t, err)
		require.Len(t, entries, i+1)
		require.Equal(t, id, entries[0].ID)
		require.Equal(t, fmt.Sprintf("title %d", i), entries[0].Title)
	}

	// Act
	entries, err := db.ListEntries()

	// Assert
	require.Nil(t, err)
	require.Len(t, entries, len(ids))
	for i, e := range entries {
		require.Equal(t, ids[len(ids)-1-i], e.ID)
		if i > 0 {
			require.Greater(t, entries[i-1].ID, e.ID)
		}
	}

	count, err := db.CountEntries()
	require.Nil(t, err)
	require.EqualValues(t, len(ids), count)
}

func TestAddEntryStoresVerbatim(t *testing.T) {
	for _, tc := range []struct {
		name  string
		title string
		text  string
	}{
		{"markup", "<Hello>", "<strong>HTML</strong> allowed here"},
		{"empty", "", ""},
		{"quotes", `'); DROP TABLE entries; --`, `"; DELETE FROM entries; --`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			db := newTestDB(t, newTestPool(t))

			// Act
			id, err := db.AddEntry(tc.title, tc.text)

			// Assert
			require.Nil(t, err)
			require.NotZero(t, id)

			entries, err := db.ListEntries()
			require.Nil(t, err)
			require.Equal(t, []weblog.Entry{{ID: id, Title: tc.title, Text: tc.text}}, entries)
		})
	}
}

func TestEnsureSchema(t *testing.T) {
	// Arrange
	ctx := context.Background()
	pool, err := store.Connect(&store.CxnConfig{URL: filepath.Join(t.TempDir(), "weblog.db")}, weblog.Testing)
	require.Nil(t, err)
	t.Cleanup(func() { pool.Close() })

	_, err = pool.DB(ctx).ListEntries()
	require.ErrorIs(t, err, weblog.ErrUnexpected)

	// Act
	err = pool.EnsureSchema(ctx)

	// Assert
	require.Nil(t, err)

	_, err = pool.DB(ctx).AddEntry("kept", "across restarts")
	require.Nil(t, err)

	// Act
	err = pool.EnsureSchema(ctx)

	// Assert
	require.Nil(t, err)
	count, err := pool.DB(ctx).CountEntries()
	require.Nil(t, err)
	require.EqualValues(t, 1, count)
}

func TestInitialize(t *testing.T) {
	// Arrange
	ctx := context.Background()
	pool := newTestPool(t)

	_, err := pool.DB(ctx).AddEntry("wiped", "by initialize")
	require.Nil(t, err)

	// Act
	err = pool.Initialize(ctx)

	// Assert
	require.Nil(t, err)
	entries, err := pool.DB(ctx).ListEntries()
	require.Nil(t, err)
	require.Empty(t, entries)
}
