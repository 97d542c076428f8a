package ui

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hielopolar/polar/internal/asset"
)

func TestFormBuild(t *testing.T) {
	f := newFormState(asset.Asset{ID: "CON-010"}, false)
	f.inputs[fieldModel].SetValue("  Polar-500  ")
	f.inputs[fieldStatus].SetValue("en uso")
	f.inputs[fieldCoordinates].SetValue("-99.1332,19.4326")

	got, problem := f.build()
	if problem != "" {
		t.Fatalf("build: %s", problem)
	}
	want := asset.Asset{
		ID:          "CON-010",
		Model:       "Polar-500",
		Status:      asset.StatusInUse,
		Coordinates: &asset.Coordinates{-99.1332, 19.4326},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("build mismatch (-want +got):\n%s", diff)
	}
}

func TestFormBuildProblems(t *testing.T) {
	cases := []struct {
		name  string
		setup func(f *formState)
	}{
		{"missing_id", func(f *formState) {
			f.inputs[fieldID].SetValue("")
			f.inputs[fieldModel].SetValue("X")
		}},
		{"missing_model", func(f *formState) {}},
		{"bad_status", func(f *formState) {
			f.inputs[fieldModel].SetValue("X")
			f.inputs[fieldStatus].SetValue("congelado")
		}},
		{"bad_coordinates", func(f *formState) {
			f.inputs[fieldModel].SetValue("X")
			f.inputs[fieldCoordinates].SetValue("norte")
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFormState(asset.Asset{ID: "CON-010"}, false)
			tc.setup(&f)
			if _, problem := f.build(); problem == "" {
				t.Fatalf("expected a problem")
			}
		})
	}
}

func TestFormEditSkipsID(t *testing.T) {
	f := newFormState(asset.Seed()[0], true)
	if f.focus != fieldModel {
		t.Fatalf("focus = %v, want model", f.focus)
	}
	f.move(-1)
	if f.focus != fieldCoordinates {
		t.Fatalf("focus after wrap = %v, want coordinates", f.focus)
	}
	f.inputs[fieldID].SetValue("CON-999")
	got, problem := f.build()
	if problem != "" {
		t.Fatalf("build: %s", problem)
	}
	if got.ID != "CON-001" {
		t.Fatalf("id = %q, want CON-001", got.ID)
	}
}

func TestFormEditClearsCoordinates(t *testing.T) {
	orig := asset.Seed()[0]
	orig.Coordinates = &asset.Coordinates{-70.6483, -33.4569}
	f := newFormState(orig, true)
	if f.value(fieldCoordinates) == "" {
		t.Fatalf("coordinates not prefilled")
	}
	f.inputs[fieldCoordinates].SetValue("")

	got, problem := f.build()
	if problem != "" {
		t.Fatalf("build: %s", problem)
	}
	if got.Coordinates != nil {
		t.Fatalf("coordinates = %v, want cleared", got.Coordinates)
	}
	p := asset.Diff(orig, got)
	if diff := cmp.Diff([]string{"coordinates"}, p.Fields()); diff != "" {
		t.Fatalf("Fields mismatch (-want +got):\n%s", diff)
	}
}
