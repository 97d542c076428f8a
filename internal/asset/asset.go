package asset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidAsset reports an asset missing required fields.
var ErrInvalidAsset = errors.New("invalid asset")

// Coordinates is a (longitude, latitude) pair for map placement.
type Coordinates [2]float64

// Lng returns the longitude.
func (c Coordinates) Lng() float64 { return c[0] }

// Lat returns the latitude.
func (c Coordinates) Lat() float64 { return c[1] }

// String formats the pair as "lng,lat".
func (c Coordinates) String() string {
	return strconv.FormatFloat(c[0], 'f', -1, 64) + "," + strconv.FormatFloat(c[1], 'f', -1, 64)
}

// ParseCoordinates reads a "lng,lat" pair.
func ParseCoordinates(value string) (Coordinates, error) {
	parts := strings.Split(strings.TrimSpace(value), ",")
	if len(parts) != 2 {
		return Coordinates{}, fmt.Errorf("coordinates %q: want lng,lat", value)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("longitude: %w", err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("latitude: %w", err)
	}
	if lng < -180 || lng > 180 || lat < -90 || lat > 90 {
		return Coordinates{}, fmt.Errorf("coordinates %q out of range", value)
	}
	return Coordinates{lng, lat}, nil
}

// Asset is a rentable refrigeration unit.
type Asset struct {
	ID               string       `json:"id"`
	Model            string       `json:"model"`
	SerialNumber     string       `json:"serialNumber"`
	Status           Status       `json:"status"`
	Location         string       `json:"location"`
	LastMaintenance  string       `json:"lastMaintenance,omitempty"`
	AssignedTo       string       `json:"assignedTo,omitempty"`
	Capacity         string       `json:"capacity"`
	TemperatureRange string       `json:"temperatureRange"`
	ImageSrc         string       `json:"imageSrc"`
	Coordinates      *Coordinates `json:"coordinates,omitempty"`
}

// Validate checks the fields every asset must carry.
func (a Asset) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidAsset)
	}
	if strings.TrimSpace(a.Model) == "" {
		return fmt.Errorf("%w: model is required", ErrInvalidAsset)
	}
	if !a.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidAsset, a.Status)
	}
	return nil
}

// Normalize trims free-form fields and defaults an empty status.
func (a Asset) Normalize() Asset {
	a.ID = strings.TrimSpace(a.ID)
	a.Model = strings.TrimSpace(a.Model)
	a.SerialNumber = strings.TrimSpace(a.SerialNumber)
	a.Location = strings.TrimSpace(a.Location)
	a.LastMaintenance = strings.TrimSpace(a.LastMaintenance)
	a.AssignedTo = strings.TrimSpace(a.AssignedTo)
	a.Capacity = strings.TrimSpace(a.Capacity)
	a.TemperatureRange = strings.TrimSpace(a.TemperatureRange)
	a.ImageSrc = strings.TrimSpace(a.ImageSrc)
	if strings.TrimSpace(string(a.Status)) == "" {
		a.Status = StatusAvailable
	}
	return a
}

// Clone returns a copy that shares no pointers with a.
func (a Asset) Clone() Asset {
	if a.Coordinates != nil {
		c := *a.Coordinates
		a.Coordinates = &c
	}
	return a
}

// Collection is an ordered set of assets keyed by ID.
type Collection []Asset

// Clone deep-copies the collection. A nil or empty collection clones to nil.
func (c Collection) Clone() Collection {
	if len(c) == 0 {
		return nil
	}
	dup := make(Collection, len(c))
	for i, a := range c {
		dup[i] = a.Clone()
	}
	return dup
}

// Index returns the position of id, or -1.
func (c Collection) Index(id string) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the asset with id.
func (c Collection) Find(id string) (Asset, bool) {
	if i := c.Index(id); i >= 0 {
		return c[i].Clone(), true
	}
	return Asset{}, false
}

// IDs returns the set of ids present.
func (c Collection) IDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(c))
	for _, a := range c {
		ids[a.ID] = struct{}{}
	}
	return ids
}

// CountByStatus tallies assets per status.
func (c Collection) CountByStatus() map[Status]int {
	counts := make(map[Status]int, len(allStatuses))
	for _, a := range c {
		counts[a.Status]++
	}
	return counts
}

// Normalize applies Asset.Normalize to every entry.
func (c Collection) Normalize() Collection {
	for i := range c {
		c[i] = c[i].Normalize()
	}
	return c
}
