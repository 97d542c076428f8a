package asset

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSeed_IsValidAndFresh(t *testing.T) {
	seed := Seed()
	if len(seed) != 8 {
		t.Fatalf("len(Seed()) = %d, want 8", len(seed))
	}
	seen := map[string]bool{}
	for _, a := range seed {
		if err := a.Validate(); err != nil {
			t.Fatalf("seed %s invalid: %v", a.ID, err)
		}
		if seen[a.ID] {
			t.Fatalf("duplicate seed id %s", a.ID)
		}
		seen[a.ID] = true
	}

	seed[0].Model = "mutated"
	if Seed()[0].Model == "mutated" {
		t.Fatalf("Seed should return a fresh copy on each call")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		asset Asset
		ok    bool
	}{
		{"valid", Asset{ID: "X1", Model: "Freezer A", Status: StatusAvailable}, true},
		{"missing id", Asset{Model: "Freezer A", Status: StatusAvailable}, false},
		{"blank model", Asset{ID: "X1", Model: "  ", Status: StatusAvailable}, false},
		{"bad status", Asset{ID: "X1", Model: "Freezer A", Status: "broken"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.asset.Validate()
			if tt.ok && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidAsset) {
				t.Fatalf("Validate() = %v, want ErrInvalidAsset", err)
			}
		})
	}
}

func TestNormalize_DefaultsStatusAndTrims(t *testing.T) {
	a := Asset{ID: " X1 ", Model: " Freezer ", Location: " Taller "}.Normalize()
	if a.ID != "X1" || a.Model != "Freezer" || a.Location != "Taller" {
		t.Fatalf("Normalize did not trim: %#v", a)
	}
	if a.Status != StatusAvailable {
		t.Fatalf("Status = %q, want available", a.Status)
	}
}

func TestCollection_CloneIsDeep(t *testing.T) {
	c := Collection{{ID: "A", Model: "m", Status: StatusAvailable, Coordinates: &Coordinates{-70.6, -33.4}}}
	dup := c.Clone()
	dup[0].Coordinates[0] = 0
	dup[0].Model = "other"
	if c[0].Coordinates[0] != -70.6 || c[0].Model != "m" {
		t.Fatalf("Clone shares state with original: %#v", c[0])
	}
	if Collection(nil).Clone() != nil {
		t.Fatalf("Clone of nil should be nil")
	}
}

func TestCollection_Lookups(t *testing.T) {
	c := Seed()
	if c.Index("CON-003") != 2 {
		t.Fatalf("Index(CON-003) = %d, want 2", c.Index("CON-003"))
	}
	if c.Index("missing") != -1 {
		t.Fatalf("Index(missing) should be -1")
	}
	if _, ok := c.Find("CON-008"); !ok {
		t.Fatalf("Find(CON-008) not found")
	}
	counts := c.CountByStatus()
	if counts[StatusAvailable] != 3 || counts[StatusInUse] != 3 || counts[StatusMaintenance] != 2 {
		t.Fatalf("CountByStatus = %v", counts)
	}
}

func TestStatus_ParseLabelNext(t *testing.T) {
	for _, in := range []string{"in-use", "IN-USE", "En Uso", " en uso ", "in_use"} {
		st, err := ParseStatus(in)
		if err != nil || st != StatusInUse {
			t.Fatalf("ParseStatus(%q) = %q, %v; want in-use", in, st, err)
		}
	}
	if _, err := ParseStatus("broken"); err == nil {
		t.Fatalf("ParseStatus(broken) returned nil error")
	}
	if StatusMaintenance.Label() != "Mantenimiento" {
		t.Fatalf("Label = %q", StatusMaintenance.Label())
	}
	if StatusRetired.Next() != StatusAvailable {
		t.Fatalf("Next(retired) = %q, want available", StatusRetired.Next())
	}
	if Status("bogus").Next() != StatusAvailable {
		t.Fatalf("Next(bogus) should restart the cycle")
	}
}

func TestParseCoordinates(t *testing.T) {
	c, err := ParseCoordinates(" -70.65 , -33.45 ")
	if err != nil {
		t.Fatalf("ParseCoordinates returned error: %v", err)
	}
	if c.Lng() != -70.65 || c.Lat() != -33.45 {
		t.Fatalf("coordinates = %v", c)
	}
	if c.String() != "-70.65,-33.45" {
		t.Fatalf("String() = %q", c.String())
	}
	for _, bad := range []string{"", "1", "a,b", "200,0", "0,95"} {
		if _, err := ParseCoordinates(bad); err == nil {
			t.Fatalf("ParseCoordinates(%q) returned nil error", bad)
		}
	}
}

func TestPatch_ChangesOnlyNamedFields(t *testing.T) {
	base := Seed()[1]
	p := Patch{Status: StatusPtr(StatusMaintenance), AssignedTo: StringPtr("")}
	got := p.Apply(base)

	want := base
	want.Status = StatusMaintenance
	want.AssignedTo = ""
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Apply mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"status", "assignedTo"}, p.Fields()); diff != "" {
		t.Fatalf("Fields mismatch (-want +got):\n%s", diff)
	}
	if !(Patch{}).Empty() {
		t.Fatalf("zero Patch should be empty")
	}
}

func TestDiff_RoundTripsThroughApply(t *testing.T) {
	from := Seed()[0]
	to := from
	to.Location = "Cliente: Hielos Centro"
	to.Status = StatusInUse
	to.Coordinates = &Coordinates{-70.6, -33.4}

	p := Diff(from, to)
	if diff := cmp.Diff(to, p.Apply(from)); diff != "" {
		t.Fatalf("Diff/Apply mismatch (-want +got):\n%s", diff)
	}
	if !Diff(from, from).Empty() {
		t.Fatalf("Diff of identical assets should be empty")
	}
}

func TestDiff_ClearsCoordinates(t *testing.T) {
	from := Seed()[0]
	from.Coordinates = &Coordinates{-70.6, -33.4}
	to := from.Clone()
	to.Coordinates = nil

	p := Diff(from, to)
	if !p.ClearCoordinates || p.Coordinates != nil {
		t.Fatalf("Diff = %+v, want ClearCoordinates", p)
	}
	if diff := cmp.Diff([]string{"coordinates"}, p.Fields()); diff != "" {
		t.Fatalf("Fields mismatch (-want +got):\n%s", diff)
	}
	if got := p.Apply(from); got.Coordinates != nil {
		t.Fatalf("coordinates not cleared: %v", got.Coordinates)
	}
	if from.Coordinates == nil {
		t.Fatalf("Apply modified its input")
	}
}

func TestFromRow_IsTotal(t *testing.T) {
	got := FromRow(RawRow{ID: "CON-100", Model: "Polar-X", Status: "???"})
	want := Asset{ID: "CON-100", Model: "Polar-X", Status: StatusAvailable}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("FromRow mismatch (-want +got):\n%s", diff)
	}

	bad := "not-json"
	if FromRow(RawRow{ID: "a", Model: "b", Coordinates: &bad}).Coordinates != nil {
		t.Fatalf("malformed coordinates should map to nil")
	}
}

func TestToRow_FromRowRoundTrip(t *testing.T) {
	a := Seed()[1]
	a.Coordinates = &Coordinates{-70.6, -33.4}
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	row := ToRow(a, now)
	if row.CreatedAt != nil {
		t.Fatalf("update row carries created_at %q", *row.CreatedAt)
	}
	if row.UpdatedAt == nil || !parseTime(*row.UpdatedAt).Equal(now) {
		t.Fatalf("UpdatedAt = %v, want %v", row.UpdatedAt, now)
	}
	if row.Coordinates == nil || *row.Coordinates != "[-70.6,-33.4]" {
		t.Fatalf("Coordinates = %v", row.Coordinates)
	}
	if diff := cmp.Diff(a, FromRow(row)); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRow_StampsCreatedAt(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	row := NewRow(Seed()[0], now)
	if !row.ParsedCreatedAt().Equal(now) {
		t.Fatalf("CreatedAt = %v, want %v", row.CreatedAt, now)
	}

	body, err := json.Marshal(ToRow(Seed()[0], now))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(body), "created_at") {
		t.Fatalf("update row encodes created_at: %s", body)
	}
}

func TestIDGenerator_DisjointAndMonotonic(t *testing.T) {
	var g IDGenerator
	existing := Seed().IDs()

	first := g.Next(existing)
	if first != "CON-009" {
		t.Fatalf("Next = %q, want CON-009", first)
	}
	// Not reused even when the caller forgets it.
	second := g.Next(existing)
	if second != "CON-010" {
		t.Fatalf("Next = %q, want CON-010", second)
	}

	odd := map[string]struct{}{"CON-050": {}, "X-999": {}, "con-777": {}}
	next := g.Next(odd)
	if _, taken := odd[next]; taken {
		t.Fatalf("Next returned existing id %q", next)
	}
	if next != "CON-778" {
		t.Fatalf("Next = %q, want CON-778", next)
	}

	if got := (&IDGenerator{}).Next(nil); got != "CON-001" {
		t.Fatalf("Next(nil) = %q, want CON-001", got)
	}
}

func TestLoadSeedFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "seed.json")
	if err := os.WriteFile(good, []byte(`[{"id":"S-1","model":"Mini"},{"id":"S-2","model":"Maxi","status":"retired"}]`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	seed, err := LoadSeedFile(good)
	if err != nil {
		t.Fatalf("LoadSeedFile returned error: %v", err)
	}
	if len(seed) != 2 || seed[0].Status != StatusAvailable || seed[1].Status != StatusRetired {
		t.Fatalf("seed = %#v", seed)
	}

	dup := filepath.Join(dir, "dup.json")
	if err := os.WriteFile(dup, []byte(`[{"id":"S-1","model":"a"},{"id":"S-1","model":"b"}]`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadSeedFile(dup); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("LoadSeedFile(dup) = %v, want duplicate error", err)
	}

	if _, err := LoadSeedFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("LoadSeedFile(missing) returned nil error")
	}
}
