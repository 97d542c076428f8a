package asset

import (
	"fmt"
	"strings"
)

// Status is the closed set of lifecycle states for an asset.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusInUse       Status = "in-use"
	StatusMaintenance Status = "maintenance"
	StatusRetired     Status = "retired"
)

var allStatuses = []Status{StatusAvailable, StatusInUse, StatusMaintenance, StatusRetired}

var statusLabels = map[Status]string{
	StatusAvailable:   "Disponible",
	StatusInUse:       "En Uso",
	StatusMaintenance: "Mantenimiento",
	StatusRetired:     "Retirado",
}

// Statuses returns every status in display order.
func Statuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the Spanish display label.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Next cycles to the following status; unknown values restart the cycle.
func (s Status) Next() Status {
	for i, st := range allStatuses {
		if st == s {
			return allStatuses[(i+1)%len(allStatuses)]
		}
	}
	return allStatuses[0]
}

// ParseStatus accepts a wire value or a display label, case-insensitively.
func ParseStatus(value string) (Status, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, st := range allStatuses {
		if v == string(st) || v == strings.ToLower(statusLabels[st]) {
			return st, nil
		}
	}
	switch v {
	case "in_use", "inuse", "en-uso":
		return StatusInUse, nil
	}
	return "", fmt.Errorf("unknown status %q", value)
}
