package progress

import (
	"github.com/julianstephens/dayquest/internal/constants"
	"github.com/julianstephens/dayquest/internal/models"
)

// XPForPriority returns the XP awarded for completing a task of the given priority.
// Unknown priorities award the low-priority amount.
func XPForPriority(p models.Priority) int {
	switch p {
	case models.PriorityHigh:
		return constants.XPHighPriority
	case models.PriorityMedium:
		return constants.XPMediumPriority
	default:
		return constants.XPLowPriority
	}
}

// LevelForXP returns floor(totalXP / 100) + 1. Negative XP is treated as zero.
func LevelForXP(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return totalXP/constants.XPPerLevel + constants.MinLevel
}

// XPToNextLevel returns how much XP is still needed to reach the next level.
func XPToNextLevel(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return constants.XPPerLevel - totalXP%constants.XPPerLevel
}
