package asset

import (
	"encoding/json"
	"strings"
	"time"
)

// RawRow mirrors a row of the hosted assets table.
type RawRow struct {
	ID               string  `json:"id"`
	Model            string  `json:"model"`
	SerialNumber     *string `json:"serial_number"`
	Status           string  `json:"status"`
	Location         *string `json:"location"`
	LastMaintenance  *string `json:"last_maintenance"`
	AssignedTo       *string `json:"assigned_to"`
	Capacity         *string `json:"capacity"`
	TemperatureRange *string `json:"temperature_range"`
	ImageSrc         *string `json:"image_src"`
	Coordinates      *string `json:"coordinates"`
	CreatedAt        *string `json:"created_at,omitempty"`
	UpdatedAt        *string `json:"updated_at,omitempty"`
}

// ParsedCreatedAt returns the creation time, or zero when absent or malformed.
func (r RawRow) ParsedCreatedAt() time.Time {
	return parseTime(deref(r.CreatedAt))
}

// FromRow converts an upstream row into an Asset. Every nullable column maps
// to its zero value, an unrecognised status maps to available and
// coordinates that are not a two-number JSON array are dropped.
func FromRow(r RawRow) Asset {
	a := Asset{
		ID:               strings.TrimSpace(r.ID),
		Model:            strings.TrimSpace(r.Model),
		SerialNumber:     deref(r.SerialNumber),
		Location:         deref(r.Location),
		LastMaintenance:  deref(r.LastMaintenance),
		AssignedTo:       deref(r.AssignedTo),
		Capacity:         deref(r.Capacity),
		TemperatureRange: deref(r.TemperatureRange),
		ImageSrc:         deref(r.ImageSrc),
		Coordinates:      decodeCoordinates(deref(r.Coordinates)),
	}
	st, err := ParseStatus(r.Status)
	if err != nil {
		st = StatusAvailable
	}
	a.Status = st
	return a.Normalize()
}

// ToRow converts an Asset into an update row. Only updated_at is stamped, so
// an upsert leaves the stored created_at alone.
func ToRow(a Asset, now time.Time) RawRow {
	stamp := now.UTC().Format(time.RFC3339Nano)
	row := RawRow{
		ID:               a.ID,
		Model:            a.Model,
		SerialNumber:     ref(a.SerialNumber),
		Status:           string(a.Status),
		Location:         ref(a.Location),
		LastMaintenance:  ref(a.LastMaintenance),
		AssignedTo:       ref(a.AssignedTo),
		Capacity:         ref(a.Capacity),
		TemperatureRange: ref(a.TemperatureRange),
		ImageSrc:         ref(a.ImageSrc),
		UpdatedAt:        &stamp,
	}
	if a.Coordinates != nil {
		if b, err := json.Marshal([]float64{a.Coordinates[0], a.Coordinates[1]}); err == nil {
			s := string(b)
			row.Coordinates = &s
		}
	}
	return row
}

// NewRow is ToRow for a first insert: created_at is stamped with now too.
func NewRow(a Asset, now time.Time) RawRow {
	row := ToRow(a, now)
	row.CreatedAt = row.UpdatedAt
	return row
}

func decodeCoordinates(value string) *Coordinates {
	value = strings.TrimSpace(value)
	if value == "" || value == "null" {
		return nil
	}
	var pair []float64
	if err := json.Unmarshal([]byte(value), &pair); err != nil || len(pair) != 2 {
		return nil
	}
	return &Coordinates{pair[0], pair[1]}
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

func ref(v string) *string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05.999999-07", "2006-01-02T15:04:05.999999"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
