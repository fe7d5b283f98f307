package availability

import (
	"availability-service/internal/app/models"
)

// ExpansionState is the set of days whose full template is shown. Collapsed
// days show only the first collapsedCount slots.
type ExpansionState struct {
	expanded map[int]struct{}
}

func NewExpansionState(dayIndexes ...int) *ExpansionState {
	s := &ExpansionState{expanded: make(map[int]struct{}, len(dayIndexes))}
	for _, i := range dayIndexes {
		s.expanded[i] = struct{}{}
	}
	return s
}

func (s *ExpansionState) IsExpanded(dayIndex int) bool {
	_, ok := s.expanded[dayIndex]
	return ok
}

// Apply renders days under the current expansion state. Past days cannot expand.
func (s *ExpansionState) Apply(days []models.DaySchedule, collapsedCount int) []models.DayView {
	views := make([]models.DayView, 0, len(days))
	for i, day := range days {
		collapsible := collapsedCount > 0 && len(day.Slots) > collapsedCount
		canExpand := !day.IsPast && collapsible
		view := models.DayView{
			DaySchedule: day,
			CanExpand:   canExpand,
			Expanded:    canExpand && s.IsExpanded(i),
		}
		if !view.Expanded && collapsible {
			view.HiddenSlots = len(day.Slots) - collapsedCount
			view.Slots = day.Slots[:collapsedCount]
		}
		views = append(views, view)
	}
	return views
}
