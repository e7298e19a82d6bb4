package notification

import (
	"context"
	"fmt"
	"testing"

	"clinicblocks/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFeed(t *testing.T) (*miniredis.Miniredis, NotificationFeed) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisNotificationFeed(client)
}

func TestRedisFeed_PushAndListNewestFirst(t *testing.T) {
	ctx := context.Background()
	_, feed := newTestFeed(t)

	for i := 0; i < 3; i++ {
		n, err := feed.Push(ctx, models.Notification{Recipient: AdminRecipient, Title: fmt.Sprintf("n%d", i)})
		require.NoError(t, err)
		assert.NotEmpty(t, n.ID)
		assert.NotEmpty(t, n.CreatedAt)
	}

	list, err := feed.List(ctx, AdminRecipient, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "n2", list[0].Title)
	assert.Equal(t, "n1", list[1].Title)

	other, err := feed.List(ctx, "someone-else", 10)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestRedisFeed_TrimsToMaxLength(t *testing.T) {
	ctx := context.Background()
	mr, feed := newTestFeed(t)

	for i := 0; i < feedMaxLen+5; i++ {
		_, err := feed.Push(ctx, models.Notification{Recipient: AdminRecipient, Title: "x"})
		require.NoError(t, err)
	}
	items, err := mr.List(feedKey(AdminRecipient))
	require.NoError(t, err)
	assert.Len(t, items, feedMaxLen)
}

func TestRedisFeed_SkipsCorruptEntries(t *testing.T) {
	ctx := context.Background()
	mr, feed := newTestFeed(t)
	_, err := mr.Lpush(feedKey(AdminRecipient), "not-json")
	require.NoError(t, err)
	_, err = feed.Push(ctx, models.Notification{Recipient: AdminRecipient, Title: "ok"})
	require.NoError(t, err)

	list, err := feed.List(ctx, AdminRecipient, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ok", list[0].Title)
}

func TestBuildBlockNotification(t *testing.T) {
	created := BuildBlockNotification(models.BlockEventPayload{
		Event:     "created",
		BlockID:   "block-1",
		Resources: []models.ResourceID{models.ResourceTomografo, models.ResourceSalaRayosX1},
		StartDate: "2025-11-01",
		EndDate:   "2025-11-03",
		Reason:    "Calibración",
		Actor:     "Dra. Pérez",
	})
	assert.Equal(t, AdminRecipient, created.Recipient)
	assert.Equal(t, "Bloqueo creado exitosamente", created.Title)
	assert.Equal(t, "Se ha bloqueado 2 recurso(s) desde 01/11/2025 hasta 03/11/2025.", created.Message)
	assert.Equal(t, "Calibración", created.Data["reason"])

	deleted := BuildBlockNotification(models.BlockEventPayload{Event: "deleted", BlockID: "block-1", Actor: "x"})
	assert.Equal(t, "Bloqueo eliminado", deleted.Title)
	assert.Equal(t, "low", deleted.Priority)
	assert.Equal(t, "block-1", deleted.Data["blockId"])
}
