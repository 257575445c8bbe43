package constants

const (
	// XP awarded per completed task, by priority
	XPHighPriority   = 15
	XPMediumPriority = 10
	XPLowPriority    = 5

	// XPPerLevel is the XP span of one level: level = totalXP/XPPerLevel + 1
	XPPerLevel = 100

	MinLevel = 1
)
