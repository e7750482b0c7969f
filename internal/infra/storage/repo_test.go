package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveRepositoryRoundTrip(t *testing.T) {
	repo := NewSQLiteSaveRepository(newTestDB(t))
	ctx := context.Background()

	rec := SaveRecord{
		Slot: 1, Name: "Tony", Species: "Chopper",
		Health: 80.5, Hunger: 70, Happiness: 60, Sleep: 50,
		State:  "normal",
		Apples: 2, Bananas: 1, PurpleGifts: 0, GreenGifts: 3,
		Score: 40,
	}
	require.NoError(t, repo.Upsert(ctx, rec))

	got, err := repo.GetBySlot(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec, *got)
}

func TestSaveRepositoryUpsertOverwrites(t *testing.T) {
	repo := NewSQLiteSaveRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, SaveRecord{Slot: 2, Name: "Tony", Species: "Chopper", State: "normal", Score: 10}))
	require.NoError(t, repo.Upsert(ctx, SaveRecord{Slot: 2, Name: "Des", Species: "Dugong", State: "dead", Score: 99}))

	got, err := repo.GetBySlot(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Des", got.Name)
	assert.Equal(t, "dead", got.State)
	assert.Equal(t, 99, got.Score)
}

func TestSaveRepositoryEmptySlot(t *testing.T) {
	repo := NewSQLiteSaveRepository(newTestDB(t))

	got, err := repo.GetBySlot(context.Background(), 3)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveRepositoryClear(t *testing.T) {
	repo := NewSQLiteSaveRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, SaveRecord{Slot: 1, Name: "Tony", Species: "Chopper", State: "normal"}))
	require.NoError(t, repo.Clear(ctx, 1))

	got, err := repo.GetBySlot(ctx, 1)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestSlotsAreIndependent(t *testing.T) {
	repo := NewSQLiteSaveRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, SaveRecord{Slot: 1, Name: "Tony", Species: "Chopper", State: "normal"}))
	require.NoError(t, repo.Upsert(ctx, SaveRecord{Slot: 3, Name: "Momoo", Species: "Laboon", State: "hungry"}))

	one, err := repo.GetBySlot(ctx, 1)
	require.NoError(t, err)
	three, err := repo.GetBySlot(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Tony", one.Name)
	assert.Equal(t, "Momoo", three.Name)
}

func TestJournalRepositoryAppendAndQuery(t *testing.T) {
	repo := NewSQLiteJournalRepository(newTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	rows := []JournalRow{
		{ID: "a", Timestamp: base, Kind: "INGAME", Slot: 1, Detail: "Tony"},
		{ID: "b", Timestamp: base.Add(time.Second), Kind: "QUIT", Slot: 1, Detail: "Tony"},
		{ID: "c", Timestamp: base.Add(2 * time.Second), Kind: "INGAME", Slot: 2, Detail: "Des"},
	}
	for _, row := range rows {
		require.NoError(t, repo.Append(ctx, row))
	}

	inGame, err := repo.GetByKind(ctx, "INGAME")
	require.NoError(t, err)
	require.Len(t, inGame, 2)
	assert.Equal(t, "a", inGame[0].ID)
	assert.Equal(t, "c", inGame[1].ID)
	assert.Equal(t, "Des", inGame[1].Detail)

	none, err := repo.GetByKind(ctx, "VET")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestParentalRepositorySingleton(t *testing.T) {
	repo := NewSQLiteParentalRepository(newTestDB(t))
	ctx := context.Background()

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Put(ctx, ParentalRow{Enabled: true, LimitMinutes: 30, WindowStart: "21:00", WindowEnd: "07:00"}))
	got, err = repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Enabled)
	assert.Equal(t, 30, got.LimitMinutes)

	// A second Put replaces the singleton row.
	require.NoError(t, repo.Put(ctx, ParentalRow{Enabled: false}))
	got, err = repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Enabled)
	assert.Equal(t, 0, got.LimitMinutes)
}
