package domain

import "testing"

// TestProfileTable_KnownTypes checks a sample of the built-in coefficients.
func TestProfileTable_KnownTypes(t *testing.T) {
	table := NewProfileTable()

	tests := []struct {
		object  ObjectType
		drag    float64
		current float64
		wind    float64
	}{
		{PersonAdultLifeJacket, 0.8, 1.0, 0.01},
		{PersonAdultNoLifeJacket, 1.1, 1.0, 0.005},
		{PersonChildLifeJacket, 1.0, 1.0, 0.015},
		{Catamaran, 0.4, 1.0, 0.05},
		{FishingTrawler, 0.2, 1.0, 0.03},
		{Windsurfer, 1.3, 1.0, 0.06},
	}

	for _, tt := range tests {
		p := table.Lookup(tt.object)
		if p.DragFactor != tt.drag {
			t.Errorf("%s drag: expected %v, got %v", tt.object, tt.drag, p.DragFactor)
		}
		if p.CurrentFactor != tt.current {
			t.Errorf("%s current: expected %v, got %v", tt.object, tt.current, p.CurrentFactor)
		}
		if p.WindFactor != tt.wind {
			t.Errorf("%s wind: expected %v, got %v", tt.object, tt.wind, p.WindFactor)
		}
	}
}

// TestProfileTable_UnknownType verifies unknown types resolve to the default
// profile and never fail.
func TestProfileTable_UnknownType(t *testing.T) {
	table := NewProfileTable()
	p := table.Lookup(ObjectUnknown)

	if p != DefaultProfile {
		t.Errorf("unknown type: expected default profile %+v, got %+v", DefaultProfile, p)
	}
	if p.DragFactor != 1.0 || p.CurrentFactor != 1.0 || p.WindFactor != 0.0 {
		t.Errorf("default profile values wrong: %+v", p)
	}
}

// TestParseObjectType exercises round trips and unmatched input.
func TestParseObjectType(t *testing.T) {
	for _, object := range AllObjectTypes() {
		if got := ParseObjectType(object.String()); got != object {
			t.Errorf("round trip %s: got %s", object, got)
		}
	}

	for _, s := range []string{"", "Submarine", "person_adult_lifejacket", "Unknown"} {
		if got := ParseObjectType(s); got != ObjectUnknown {
			t.Errorf("ParseObjectType(%q): expected ObjectUnknown, got %s", s, got)
		}
	}
}

// TestWearsLifeJacket checks the life-jacket classification.
func TestWearsLifeJacket(t *testing.T) {
	withJacket := []ObjectType{PersonAdultLifeJacket, PersonAdolescentLifeJacket, PersonChildLifeJacket}
	for _, object := range withJacket {
		if !object.WearsLifeJacket() {
			t.Errorf("%s should wear a life jacket", object)
		}
	}

	without := []ObjectType{PersonAdultNoLifeJacket, Catamaran, Kayak, ObjectUnknown}
	for _, object := range without {
		if object.WearsLifeJacket() {
			t.Errorf("%s should not wear a life jacket", object)
		}
	}
}

// TestNewProfileTableWith verifies overrides replace built-ins and unknown
// names are ignored.
func TestNewProfileTableWith(t *testing.T) {
	table := NewProfileTableWith(map[string]ObjectProfile{
		"Kayak":     {DragFactor: 2.0, CurrentFactor: 0.5, WindFactor: 0.02, SurvivalHours: 48},
		"Submarine": {DragFactor: 9.9},
	})

	p := table.Lookup(Kayak)
	if p.DragFactor != 2.0 || p.CurrentFactor != 0.5 {
		t.Errorf("override not applied: %+v", p)
	}

	// Non-overridden entries keep the built-in values.
	if p := table.Lookup(Catamaran); p.DragFactor != 0.4 {
		t.Errorf("Catamaran should keep built-in drag 0.4, got %v", p.DragFactor)
	}
}
