package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the width below which the detail pane is hidden.
	LayoutCompactWidth = 100

	// LayoutWideWidth is the minimum width to show location and assignee columns.
	LayoutWideWidth = 130
)

// Log display limits.
const (
	// LogTailLines is how many lines are read from the end of the log file.
	LogTailLines = 400
)

// Timing constants.
const (
	// DefaultUIInterval is how often the store is re-read.
	DefaultUIInterval = time.Second

	// ToastTTL is how long a notice stays on screen.
	ToastTTL = 4 * time.Second

	// PullTimeout bounds a manual remote pull.
	PullTimeout = 10 * time.Second

	// MaxToasts is the number of notices shown at once.
	MaxToasts = 3
)
