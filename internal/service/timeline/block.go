package timeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-day-planner/internal/domain"
	"github.com/KasumiMercury/primind-day-planner/internal/service/daycontext"
)

var blockNamespace = uuid.MustParse("5b0c3c0e-6c1f-4d8a-9a57-7d3e4f1b2a60")

// CreateTaskBlock places one mutable block covering the given tasks in the
// next free slot, keeping the context-specific switch buffer around it.
func CreateTaskBlock(
	finder SlotFinder,
	taskIDs []string,
	taskTitles []string,
	totalMinutes int,
	contextType domain.ContextType,
	timeline []domain.TimelineEvent,
	hours domain.WorkingHours,
	after time.Time,
) (domain.TimelineEvent, bool) {
	if len(taskIDs) == 0 || totalMinutes <= 0 {
		return domain.TimelineEvent{}, false
	}

	buffer := daycontext.ContextBuffer(contextType)
	slot, ok := finder.FindSlot(timeline, totalMinutes, hours, buffer, after)
	if !ok {
		return domain.TimelineEvent{}, false
	}

	key := strings.Join(taskIDs, ",") + "@" + slot.Start.UTC().Format(time.RFC3339)

	return domain.TimelineEvent{
		ID:              "block-" + uuid.NewSHA1(blockNamespace, []byte(key)).String(),
		Kind:            domain.EventTaskBlock,
		Title:           blockTitle(taskIDs, taskTitles),
		Start:           slot.Start,
		End:             slot.End,
		DurationMinutes: totalMinutes,
		Mutable:         true,
		ContextType:     contextType,
	}, true
}

func blockTitle(taskIDs, taskTitles []string) string {
	first := taskIDs[0]
	if len(taskTitles) > 0 && taskTitles[0] != "" {
		first = taskTitles[0]
	}
	if len(taskIDs) == 1 {
		return first
	}
	return fmt.Sprintf("%s + %d more", first, len(taskIDs)-1)
}
