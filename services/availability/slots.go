package availability

import (
	"context"

	"clinicblocks/models"
	"clinicblocks/utils"
)

// ExamDaySlots evaluates every slot of a day for exam. Blocks are loaded once per resource.
func (r *DefaultResolver) ExamDaySlots(ctx context.Context, exam models.ExamName, date string, clocks []string) ([]models.SlotAvailability, error) {
	resources, err := r.Mapper.ExamToResources(exam)
	if err != nil {
		return nil, err
	}
	day, err := utils.ParseLocalDate(date)
	if err != nil {
		return nil, err
	}
	minutes := make([]int, len(clocks))
	for i, c := range clocks {
		if minutes[i], err = utils.ParseClock(c); err != nil {
			return nil, err
		}
	}

	perResource := make([][]parsedBlock, len(resources))
	for i, res := range resources {
		if perResource[i], err = r.loadParsed(ctx, res); err != nil {
			return nil, err
		}
	}

	out := make([]models.SlotAvailability, 0, len(clocks))
	for i, clock := range clocks {
		slot := models.SlotAvailability{Date: date, Time: clock, FreeResources: []models.ResourceID{}}
		var reason string
		for j, res := range resources {
			blocking := firstBlocking(perResource[j], day, minutes[i])
			if blocking == nil {
				slot.FreeResources = append(slot.FreeResources, res)
			} else if reason == "" {
				reason = blocking.Reason
			}
		}
		if len(slot.FreeResources) == 0 {
			slot.Blocked = true
			slot.Message = models.BlockedSlotMessage
			slot.Reason = reason
		}
		out = append(out, slot)
	}
	return out, nil
}
