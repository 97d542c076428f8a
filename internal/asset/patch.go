package asset

// Patch is a partial update. Nil fields are left untouched; a non-nil pointer
// to the empty string clears a free-form field.
type Patch struct {
	Model            *string
	SerialNumber     *string
	Status           *Status
	Location         *string
	LastMaintenance  *string
	AssignedTo       *string
	Capacity         *string
	TemperatureRange *string
	ImageSrc         *string
	Coordinates      *Coordinates
	// ClearCoordinates removes the location pin. Coordinates wins when both
	// are set.
	ClearCoordinates bool
}

// Apply returns a with the named fields overwritten. The id never changes.
func (p Patch) Apply(a Asset) Asset {
	a = a.Clone()
	if p.Model != nil {
		a.Model = *p.Model
	}
	if p.SerialNumber != nil {
		a.SerialNumber = *p.SerialNumber
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Location != nil {
		a.Location = *p.Location
	}
	if p.LastMaintenance != nil {
		a.LastMaintenance = *p.LastMaintenance
	}
	if p.AssignedTo != nil {
		a.AssignedTo = *p.AssignedTo
	}
	if p.Capacity != nil {
		a.Capacity = *p.Capacity
	}
	if p.TemperatureRange != nil {
		a.TemperatureRange = *p.TemperatureRange
	}
	if p.ImageSrc != nil {
		a.ImageSrc = *p.ImageSrc
	}
	switch {
	case p.Coordinates != nil:
		c := *p.Coordinates
		a.Coordinates = &c
	case p.ClearCoordinates:
		a.Coordinates = nil
	}
	return a
}

// Empty reports whether the patch names no fields.
func (p Patch) Empty() bool {
	return len(p.Fields()) == 0
}

// Fields lists the JSON names of the fields the patch sets.
func (p Patch) Fields() []string {
	var fields []string
	add := func(set bool, name string) {
		if set {
			fields = append(fields, name)
		}
	}
	add(p.Model != nil, "model")
	add(p.SerialNumber != nil, "serialNumber")
	add(p.Status != nil, "status")
	add(p.Location != nil, "location")
	add(p.LastMaintenance != nil, "lastMaintenance")
	add(p.AssignedTo != nil, "assignedTo")
	add(p.Capacity != nil, "capacity")
	add(p.TemperatureRange != nil, "temperatureRange")
	add(p.ImageSrc != nil, "imageSrc")
	add(p.Coordinates != nil || p.ClearCoordinates, "coordinates")
	return fields
}

// Diff builds the patch that turns from into to, ignoring the id.
func Diff(from, to Asset) Patch {
	var p Patch
	str := func(a, b string) *string {
		if a == b {
			return nil
		}
		v := b
		return &v
	}
	p.Model = str(from.Model, to.Model)
	p.SerialNumber = str(from.SerialNumber, to.SerialNumber)
	if from.Status != to.Status {
		st := to.Status
		p.Status = &st
	}
	p.Location = str(from.Location, to.Location)
	p.LastMaintenance = str(from.LastMaintenance, to.LastMaintenance)
	p.AssignedTo = str(from.AssignedTo, to.AssignedTo)
	p.Capacity = str(from.Capacity, to.Capacity)
	p.TemperatureRange = str(from.TemperatureRange, to.TemperatureRange)
	p.ImageSrc = str(from.ImageSrc, to.ImageSrc)
	switch {
	case to.Coordinates == nil:
		p.ClearCoordinates = from.Coordinates != nil
	case from.Coordinates == nil || *from.Coordinates != *to.Coordinates:
		c := *to.Coordinates
		p.Coordinates = &c
	}
	return p
}

// StringPtr is a convenience for building patches.
func StringPtr(v string) *string { return &v }

// StatusPtr is a convenience for building patches.
func StatusPtr(s Status) *Status { return &s }
