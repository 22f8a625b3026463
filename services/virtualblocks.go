package services

import (
	"fmt"
	"hash/fnv"
	"sort"
	"sync"
	"time"

	"clinic_agenda_go/models"
)

// Titles shown for derived closed periods
const (
	VirtualBlockTitleClosed = "Closed"
	VirtualBlockDescDayOff  = "No working hours configured for this day"
	VirtualBlockDescOutside = "Outside working hours"
)

// virtualBlockCache memoizes VirtualBlocksForDay by a hash of its inputs.
// The agenda recomputes on every render pass, but the schedule only changes
// through the working-hours settings flow, so entries stay valid until a
// mutation invalidates them.
var virtualBlockCache = struct {
	mu      sync.Mutex
	entries map[uint64][]models.VirtualBlock
}{entries: make(map[uint64][]models.VirtualBlock)}

// InvalidateScheduleCache drops all memoized virtual blocks. Called after
// any working-hours mutation and after appointment lifecycle transitions so
// dependent views recompute from fresh inputs.
func InvalidateScheduleCache() {
	virtualBlockCache.mu.Lock()
	defer virtualBlockCache.mu.Unlock()
	virtualBlockCache.entries = make(map[uint64][]models.VirtualBlock)
}

func scheduleDayKey(schedule models.WeekSchedule, date time.Time) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%04d-%02d-%02d|", date.Year(), date.Month(), date.Day())

	weekdays := make([]int, 0, len(schedule))
	for wd := range schedule {
		weekdays = append(weekdays, int(wd))
	}
	sort.Ints(weekdays)
	for _, wd := range weekdays {
		day := schedule[time.Weekday(wd)]
		fmt.Fprintf(h, "%d:%t:%s-%s|", wd, day.Active, day.Start, day.End)
	}
	return h.Sum64()
}

// VirtualBlocksForDay derives the closed periods of one date from a weekly
// schedule. An inactive or unconfigured weekday yields a single full-day
// block; an active one yields a block before the opening time (unless it is
// 00:00) and a block after the closing time (unless it is 24:00).
// Callers always get their own slice; the memoized entry is never handed
// out directly, so appending to or reordering a result cannot corrupt it.
func VirtualBlocksForDay(schedule models.WeekSchedule, date time.Time) []models.VirtualBlock {
	key := scheduleDayKey(schedule, date)

	virtualBlockCache.mu.Lock()
	if cached, ok := virtualBlockCache.entries[key]; ok {
		virtualBlockCache.mu.Unlock()
		return cloneVirtualBlocks(cached)
	}
	virtualBlockCache.mu.Unlock()

	blocks := computeVirtualBlocksForDay(schedule, date)

	virtualBlockCache.mu.Lock()
	virtualBlockCache.entries[key] = blocks
	virtualBlockCache.mu.Unlock()

	return cloneVirtualBlocks(blocks)
}

func cloneVirtualBlocks(blocks []models.VirtualBlock) []models.VirtualBlock {
	if blocks == nil {
		return nil
	}
	out := make([]models.VirtualBlock, len(blocks))
	copy(out, blocks)
	return out
}

func computeVirtualBlocksForDay(schedule models.WeekSchedule, date time.Time) []models.VirtualBlock {
	day, configured := schedule[date.Weekday()]
	if !configured || !day.Active {
		return []models.VirtualBlock{{
			StartAt:     DayStart(date),
			EndAt:       DayEnd(date),
			Title:       VirtualBlockTitleClosed,
			Description: VirtualBlockDescDayOff,
		}}
	}

	startHour, startMinute, err := ParseClock(day.Start)
	if err != nil {
		startHour, startMinute = 0, 0
	}
	endHour, endMinute, err := ParseClock(day.End)
	if err != nil {
		endHour, endMinute = 24, 0
	}

	blocks := make([]models.VirtualBlock, 0, 2)

	if startHour != 0 || startMinute != 0 {
		blocks = append(blocks, models.VirtualBlock{
			StartAt:     DayStart(date),
			EndAt:       time.Date(date.Year(), date.Month(), date.Day(), startHour, startMinute, 0, 0, date.Location()),
			Title:       VirtualBlockTitleClosed,
			Description: VirtualBlockDescOutside,
		})
	}

	if endHour != 24 || endMinute != 0 {
		blocks = append(blocks, models.VirtualBlock{
			StartAt:     time.Date(date.Year(), date.Month(), date.Day(), endHour, endMinute, 0, 0, date.Location()),
			EndAt:       DayEnd(date),
			Title:       VirtualBlockTitleClosed,
			Description: VirtualBlockDescOutside,
		})
	}

	return blocks
}

// VirtualBlocksForWeek applies the daily derivation to the 7 dates starting
// at weekStart and concatenates the results in date order.
func VirtualBlocksForWeek(schedule models.WeekSchedule, weekStart time.Time) []models.VirtualBlock {
	var blocks []models.VirtualBlock
	for i := 0; i < 7; i++ {
		blocks = append(blocks, VirtualBlocksForDay(schedule, weekStart.AddDate(0, 0, i))...)
	}
	return blocks
}
