package blocksRepo

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"clinicblocks/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInput() models.ResourceBlockInput {
	return models.ResourceBlockInput{
		Resources:  []models.ResourceID{models.ResourceTomografo},
		StartDate:  "2025-11-01",
		EndDate:    "2025-11-01",
		StartTime:  "08:00",
		EndTime:    "12:00",
		Reason:     "Mantenimiento preventivo",
		Recurrence: models.RecurrenceNone,
		CreatedBy:  "Admin Clínica",
	}
}

func strPtr(s string) *string { return &s }

func TestMemoryRepo_AddRoundTrip(t *testing.T) {
	fixed := time.Date(2025, 10, 20, 13, 45, 0, 0, time.UTC)
	nowFunc = func() time.Time { return fixed }
	t.Cleanup(func() { nowFunc = time.Now })

	ctx := context.Background()
	repo := NewMemoryBlockRepo()

	in := sampleInput()
	stored, err := repo.Add(ctx, in)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stored.ID, "block-"))
	assert.Equal(t, "2025-10-20T13:45:00.000Z", stored.CreatedAt)

	got, err := repo.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, in.Resources, got.Resources)
	assert.Equal(t, in.StartDate, got.StartDate)
	assert.Equal(t, in.EndDate, got.EndDate)
	assert.Equal(t, in.StartTime, got.StartTime)
	assert.Equal(t, in.EndTime, got.EndTime)
	assert.Equal(t, in.Reason, got.Reason)
	assert.Equal(t, in.Recurrence, got.Recurrence)
	assert.Equal(t, in.CreatedBy, got.CreatedBy)
}

func TestMemoryRepo_IDsAreUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBlockRepo()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		b, err := repo.Add(ctx, sampleInput())
		require.NoError(t, err)
		assert.False(t, seen[b.ID])
		seen[b.ID] = true
	}
}

func TestMemoryRepo_ReturnedCopiesAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBlockRepo()
	b, err := repo.Add(ctx, sampleInput())
	require.NoError(t, err)

	b.Resources[0] = models.ResourceSalaRayosX1
	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	all[0].Reason = "changed"

	again, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ResourceTomografo, again.Resources[0])
	assert.Equal(t, "Mantenimiento preventivo", again.Reason)
}

func TestMemoryRepo_UnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBlockRepo()
	_, err := repo.Add(ctx, sampleInput())
	require.NoError(t, err)
	before, _ := repo.ListAll(ctx)

	assert.NoError(t, repo.Remove(ctx, "nonexistent"))
	assert.NoError(t, repo.Update(ctx, "nonexistent", models.BlockPatch{Reason: strPtr("otro")}))

	after, _ := repo.ListAll(ctx)
	assert.Equal(t, before, after)

	_, err = repo.GetByID(ctx, "nonexistent")
	assert.ErrorIs(t, err, ErrBlockNotFound)
}

func TestMemoryRepo_UpdateMergesPartialFields(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBlockRepo()
	b, err := repo.Add(ctx, sampleInput())
	require.NoError(t, err)

	weekly := models.RecurrenceWeekly
	err = repo.Update(ctx, b.ID, models.BlockPatch{
		EndTime:           strPtr("13:00"),
		Recurrence:        &weekly,
		RecurrenceEndDate: strPtr("2025-12-01"),
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "13:00", got.EndTime)
	assert.Equal(t, "08:00", got.StartTime)
	assert.Equal(t, models.RecurrenceWeekly, got.Recurrence)
	assert.Equal(t, "2025-12-01", got.RecurrenceEndDate)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, b.CreatedAt, got.CreatedAt)
	assert.Equal(t, b.CreatedBy, got.CreatedBy)
}

func TestMemoryRepo_UpdateCheckedRejectsWithoutWriting(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBlockRepo()
	b, err := repo.Add(ctx, sampleInput())
	require.NoError(t, err)

	rejected := errors.New("rejected")
	var seen models.ResourceBlock
	_, err = repo.UpdateChecked(ctx, b.ID, models.BlockPatch{EndTime: strPtr("07:00")}, func(m models.ResourceBlock) error {
		seen = m
		return rejected
	})
	assert.ErrorIs(t, err, rejected)
	assert.Equal(t, "07:00", seen.EndTime, "check sees the merged block")

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "12:00", got.EndTime)

	updated, err := repo.UpdateChecked(ctx, b.ID, models.BlockPatch{EndTime: strPtr("10:00")}, func(models.ResourceBlock) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, "10:00", updated.EndTime)

	missing, err := repo.UpdateChecked(ctx, "nonexistent", models.BlockPatch{EndTime: strPtr("10:00")}, func(models.ResourceBlock) error { return nil })
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryRepo_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBlockRepo()
	a, _ := repo.Add(ctx, sampleInput())
	_, _ = repo.Add(ctx, sampleInput())

	require.NoError(t, repo.Remove(ctx, a.ID))
	all, _ := repo.ListAll(ctx)
	assert.Len(t, all, 1)

	require.NoError(t, repo.ClearAll(ctx))
	all, _ = repo.ListAll(ctx)
	assert.Empty(t, all)
}

func TestMemoryRepo_ListByResource(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBlockRepo()
	_, _ = repo.Add(ctx, sampleInput())
	xray := sampleInput()
	xray.Resources = []models.ResourceID{models.ResourceSalaRayosX1, models.ResourceSalaRayosX2}
	_, _ = repo.Add(ctx, xray)

	got, err := repo.ListByResource(ctx, models.ResourceSalaRayosX2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].HasResource(models.ResourceSalaRayosX1))

	got, err = repo.ListByResource(ctx, models.ResourceEcografoPrincipal)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListInRange_OverlapConditions(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBlockRepo()

	add := func(start, end string) string {
		in := sampleInput()
		in.StartDate, in.EndDate = start, end
		b, err := repo.Add(ctx, in)
		require.NoError(t, err)
		return b.ID
	}
	startInside := add("2025-01-12", "2025-01-20")
	endInside := add("2025-01-01", "2025-01-11")
	spans := add("2025-01-01", "2025-01-31")
	contained := add("2025-01-11", "2025-01-12")
	before := add("2024-12-01", "2025-01-09")
	after := add("2025-01-16", "2025-02-01")

	got, err := repo.ListInRange(ctx, "2025-01-10", "2025-01-15")
	require.NoError(t, err)

	ids := map[string]bool{}
	for _, b := range got {
		ids[b.ID] = true
	}
	assert.True(t, ids[startInside])
	assert.True(t, ids[endInside])
	assert.True(t, ids[spans])
	assert.True(t, ids[contained])
	assert.False(t, ids[before])
	assert.False(t, ids[after])
	assert.Len(t, got, 4)
}

func TestListInRange_InclusiveBoundaries(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBlockRepo()
	in := sampleInput()
	in.StartDate, in.EndDate = "2025-01-15", "2025-01-15"
	_, _ = repo.Add(ctx, in)

	got, err := repo.ListInRange(ctx, "2025-01-10", "2025-01-15")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = repo.ListInRange(ctx, "2025-01-16", "2025-01-20")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListInRange_InvalidQuery(t *testing.T) {
	repo := NewMemoryBlockRepo()
	_, err := repo.ListInRange(context.Background(), "01/10/2025", "2025-01-15")
	assert.Error(t, err)
}

func TestFileRepo_PersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "blocks.json")

	repo := NewFileBlockRepo(ctx, path)
	b, err := repo.Add(ctx, sampleInput())
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk []models.ResourceBlock
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	require.Len(t, onDisk, 1)
	assert.Equal(t, b.ID, onDisk[0].ID)

	reloaded := NewFileBlockRepo(ctx, path)
	got, err := reloaded.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, *b, *got)

	require.NoError(t, reloaded.ClearAll(ctx))
	raw, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestFileRepo_CorruptPayloadResetsToEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "blocks.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	repo := NewFileBlockRepo(ctx, path)
	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = repo.Add(ctx, sampleInput())
	require.NoError(t, err)
	all, _ = repo.ListAll(ctx)
	assert.Len(t, all, 1)
}

func TestFileRepo_MissingFileStartsEmpty(t *testing.T) {
	repo := NewFileBlockRepo(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

type failingPersister struct {
	saves int
}

func (p *failingPersister) load(context.Context) ([]byte, error) { return nil, nil }

func (p *failingPersister) save(context.Context, []byte) error {
	p.saves++
	return errors.New("disk full")
}

func TestSnapshotRepo_PersistFailureKeepsPreviousState(t *testing.T) {
	ctx := context.Background()
	p := &failingPersister{}
	repo := newSnapshotBlockRepo(ctx, "test", p)

	_, err := repo.Add(ctx, sampleInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 1, p.saves)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
