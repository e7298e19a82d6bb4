package availability

import (
	"context"
	"fmt"
	"time"

	blocksRepo "clinicblocks/database/repository/blocks"
	"clinicblocks/models"
	"clinicblocks/utils"

	"go.uber.org/zap"
)

// AvailabilityService answers whether resources and exams can be booked at a slot.
type AvailabilityService interface {
	IsResourceBlocked(ctx context.Context, resource models.ResourceID, date, clock string) (bool, error)
	BlockingBlock(ctx context.Context, resource models.ResourceID, date, clock string) (*models.ResourceBlock, error)
	IsExamSlotBlocked(ctx context.Context, exam models.ExamName, date, clock string) (bool, error)
	ExamSlotStatus(ctx context.Context, exam models.ExamName, date, clock string) (*models.AvailabilityResponse, error)
	ExamDaySlots(ctx context.Context, exam models.ExamName, date string, clocks []string) ([]models.SlotAvailability, error)
	BlocksForDateRange(ctx context.Context, startDate, endDate string) ([]models.ResourceBlock, error)
	BlocksForDay(ctx context.Context, date string, resource models.ResourceID) ([]models.ResourceBlock, error)
	ExamToResources(exam models.ExamName) ([]models.ResourceID, error)
	ExamCatalog() []models.ExamResources
}

// DefaultResolver evaluates stored blocks with a linear scan per resource.
type DefaultResolver struct {
	Repo   blocksRepo.BlockRepository
	Mapper *Mapper
}

// NewResolver wires a resolver; a nil mapper means DefaultMapper.
func NewResolver(repo blocksRepo.BlockRepository, mapper *Mapper) *DefaultResolver {
	if mapper == nil {
		mapper = DefaultMapper()
	}
	return &DefaultResolver{Repo: repo, Mapper: mapper}
}

// parsedBlock is a stored block with its dates and times decoded once.
type parsedBlock struct {
	block         models.ResourceBlock
	start, end    time.Time
	recurrenceEnd time.Time
	recurs        bool
	startMin      int
	endMin        int
}

func parseBlock(b models.ResourceBlock) (parsedBlock, error) {
	p := parsedBlock{block: b}
	var err error
	if p.start, err = utils.ParseLocalDate(b.StartDate); err != nil {
		return p, err
	}
	if p.end, err = utils.ParseLocalDate(b.EndDate); err != nil {
		return p, err
	}
	if p.startMin, err = utils.ParseClock(b.StartTime); err != nil {
		return p, err
	}
	if p.endMin, err = utils.ParseClock(b.EndTime); err != nil {
		return p, err
	}
	// A recurring block without an end date never recurs.
	if b.Recurrence.Recurs() && b.RecurrenceEndDate != "" {
		if p.recurrenceEnd, err = utils.ParseLocalDate(b.RecurrenceEndDate); err != nil {
			return p, err
		}
		p.recurs = true
	}
	return p, nil
}

// inBaseWindow reports startDate <= day <= endDate.
func (p parsedBlock) inBaseWindow(day time.Time) bool {
	return !day.Before(p.start) && !day.After(p.end)
}

// recursOn applies the recurrence anchored on startDate. Monthly blocks anchored on a day a
// month lacks (e.g. the 31st) simply skip that month.
func (p parsedBlock) recursOn(day time.Time) bool {
	if !p.recurs || day.Before(p.start) || day.After(p.recurrenceEnd) {
		return false
	}
	switch p.block.Recurrence {
	case models.RecurrenceWeekly:
		return day.Weekday() == p.start.Weekday()
	case models.RecurrenceMonthly:
		return day.Day() == p.start.Day()
	}
	return false
}

// coversDay reports whether the block has an occurrence on day, ignoring the time of day.
func (p parsedBlock) coversDay(day time.Time) bool {
	return p.inBaseWindow(day) || p.recursOn(day)
}

// blocks reports whether the block applies at (day, minute). The base window and the
// recurrence both require the half-open time check, and may both match the same day.
func (p parsedBlock) blocks(day time.Time, minute int) bool {
	if !utils.MinutesInRange(minute, p.startMin, p.endMin) {
		return false
	}
	return p.coversDay(day)
}

// loadParsed fetches and decodes the blocks of one resource, skipping malformed records.
func (r *DefaultResolver) loadParsed(ctx context.Context, resource models.ResourceID) ([]parsedBlock, error) {
	blocks, err := r.Repo.ListByResource(ctx, resource)
	if err != nil {
		return nil, fmt.Errorf("list blocks for %s: %w", resource, err)
	}
	return parseAll(blocks), nil
}

func parseAll(blocks []models.ResourceBlock) []parsedBlock {
	out := make([]parsedBlock, 0, len(blocks))
	for _, b := range blocks {
		p, err := parseBlock(b)
		if err != nil {
			utils.GetLogger().Debug("skipping malformed resource block",
				zap.String("blockID", b.ID), zap.Error(err))
			continue
		}
		out = append(out, p)
	}
	return out
}

func parseSlot(date, clock string) (time.Time, int, error) {
	day, err := utils.ParseLocalDate(date)
	if err != nil {
		return time.Time{}, 0, err
	}
	minute, err := utils.ParseClock(clock)
	if err != nil {
		return time.Time{}, 0, err
	}
	return day, minute, nil
}

func firstBlocking(parsed []parsedBlock, day time.Time, minute int) *models.ResourceBlock {
	for _, p := range parsed {
		if p.blocks(day, minute) {
			b := p.block.Clone()
			return &b
		}
	}
	return nil
}

// BlockingBlock returns the first block making resource unavailable at (date, clock), or nil.
func (r *DefaultResolver) BlockingBlock(ctx context.Context, resource models.ResourceID, date, clock string) (*models.ResourceBlock, error) {
	day, minute, err := parseSlot(date, clock)
	if err != nil {
		return nil, err
	}
	parsed, err := r.loadParsed(ctx, resource)
	if err != nil {
		return nil, err
	}
	return firstBlocking(parsed, day, minute), nil
}

// IsResourceBlocked reports whether any stored block applies to resource at (date, clock).
func (r *DefaultResolver) IsResourceBlocked(ctx context.Context, resource models.ResourceID, date, clock string) (bool, error) {
	b, err := r.BlockingBlock(ctx, resource, date, clock)
	if err != nil {
		return false, err
	}
	return b != nil, nil
}

// IsExamSlotBlocked is true only when every resource mapped to exam is blocked.
func (r *DefaultResolver) IsExamSlotBlocked(ctx context.Context, exam models.ExamName, date, clock string) (bool, error) {
	status, err := r.ExamSlotStatus(ctx, exam, date, clock)
	if err != nil {
		return false, err
	}
	return status.Blocked, nil
}

// ExamSlotStatus evaluates the exam's resources in order and stops at the first free one.
func (r *DefaultResolver) ExamSlotStatus(ctx context.Context, exam models.ExamName, date, clock string) (*models.AvailabilityResponse, error) {
	resources, err := r.Mapper.ExamToResources(exam)
	if err != nil {
		return nil, err
	}
	day, minute, err := parseSlot(date, clock)
	if err != nil {
		return nil, err
	}

	resp := &models.AvailabilityResponse{Date: date, Time: clock, Exam: string(exam), Blocked: true}
	var firstReason string
	for _, res := range resources {
		parsed, err := r.loadParsed(ctx, res)
		if err != nil {
			return nil, err
		}
		blocking := firstBlocking(parsed, day, minute)
		if blocking == nil {
			resp.Blocked = false
			resp.Resource = string(res)
			return resp, nil
		}
		if firstReason == "" {
			firstReason = blocking.Reason
		}
	}
	resp.Message = models.BlockedSlotMessage
	resp.Reason = firstReason
	return resp, nil
}

// BlocksForDateRange returns blocks whose base window intersects the range. Display only.
func (r *DefaultResolver) BlocksForDateRange(ctx context.Context, startDate, endDate string) ([]models.ResourceBlock, error) {
	return r.Repo.ListInRange(ctx, startDate, endDate)
}

// BlocksForDay returns the blocks with an occurrence on date, for the admin calendar.
// An empty resource means all resources.
func (r *DefaultResolver) BlocksForDay(ctx context.Context, date string, resource models.ResourceID) ([]models.ResourceBlock, error) {
	day, err := utils.ParseLocalDate(date)
	if err != nil {
		return nil, err
	}
	var blocks []models.ResourceBlock
	if resource == "" {
		blocks, err = r.Repo.ListAll(ctx)
	} else {
		blocks, err = r.Repo.ListByResource(ctx, resource)
	}
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}

	out := []models.ResourceBlock{}
	for _, p := range parseAll(blocks) {
		if p.coversDay(day) {
			out = append(out, p.block)
		}
	}
	return out, nil
}

func (r *DefaultResolver) ExamToResources(exam models.ExamName) ([]models.ResourceID, error) {
	return r.Mapper.ExamToResources(exam)
}

func (r *DefaultResolver) ExamCatalog() []models.ExamResources {
	return r.Mapper.Catalog()
}
