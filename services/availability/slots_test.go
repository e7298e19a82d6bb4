package availability

import (
	"context"
	"testing"

	"clinicblocks/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExamDaySlots(t *testing.T) {
	r, _ := newResolverWith(t,
		blockSpec{
			resources: []models.ResourceID{models.ResourceSalaRayosX1, models.ResourceSalaRayosX2},
			start:     "2025-04-07", end: "2025-04-07", from: "09:00", to: "11:00",
			reason: "Cambio de tubo de rayos X",
		},
		blockSpec{
			resources: []models.ResourceID{models.ResourceSalaRayosX2},
			start:     "2025-04-07", end: "2025-04-07", from: "14:00", to: "15:00",
		},
	)

	slots, err := r.ExamDaySlots(context.Background(), models.ExamRadiografia, "2025-04-07",
		[]string{"08:00", "09:00", "10:00", "11:00", "14:00"})
	require.NoError(t, err)
	require.Len(t, slots, 5)

	assert.False(t, slots[0].Blocked)
	assert.Len(t, slots[0].FreeResources, 2)

	assert.True(t, slots[1].Blocked)
	assert.Empty(t, slots[1].FreeResources)
	assert.Equal(t, models.BlockedSlotMessage, slots[1].Message)
	assert.Equal(t, "Cambio de tubo de rayos X", slots[1].Reason)

	assert.True(t, slots[2].Blocked)
	assert.False(t, slots[3].Blocked, "end of block is free")

	assert.False(t, slots[4].Blocked)
	assert.Equal(t, []models.ResourceID{models.ResourceSalaRayosX1}, slots[4].FreeResources)
}

func TestExamDaySlots_InvalidInput(t *testing.T) {
	r, _ := newResolverWith(t)
	ctx := context.Background()

	_, err := r.ExamDaySlots(ctx, models.ExamRadiografia, "2025-04-07", []string{"25:00"})
	assert.Error(t, err)

	_, err = r.ExamDaySlots(ctx, models.ExamRadiografia, "07-04-2025", []string{"08:00"})
	assert.Error(t, err)

	_, err = r.ExamDaySlots(ctx, "Nope", "2025-04-07", []string{"08:00"})
	assert.ErrorIs(t, err, ErrUnknownExam)
}
