package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	GetSlotTemplateSuccessMessage    = "get slot template successfully"
	GetWeekScheduleSuccessMessage    = "get week schedule successfully"
	SlotCreatedSuccessMessage        = "slot created successfully"
	SlotDeletedSuccessMessage        = "slot removed successfully"
	SlotToggleInProgressMessage      = "slot update already in progress"
	RefreshSlotsSuccessMessage       = "availability refreshed successfully"
	ExportWeekScheduleSuccessMessage = "week schedule exported successfully"
	GetAuditsSuccessMessage          = "get availability audits successfully"
)
