package domain

// ObjectType identifies the kind of object adrift. The set is closed; inputs
// that do not match a known variant resolve to ObjectUnknown, which carries
// the default profile.
type ObjectType int

const (
	ObjectUnknown ObjectType = iota
	PersonAdultLifeJacket
	PersonAdultNoLifeJacket
	PersonAdolescentLifeJacket
	PersonChildLifeJacket
	Catamaran
	HobbyCat
	FishingTrawler
	RHIB
	SUPBoard
	Windsurfer
	Kayak
)

// ObjectProfile holds the drift coefficients for one object type.
//
// WindFactor is carried for a future wind-coupled scheme; the current-only
// integrator does not use it. SurvivalHours is informational only.
type ObjectProfile struct {
	DragFactor    float64 `yaml:"drag_factor"`
	CurrentFactor float64 `yaml:"current_factor"`
	WindFactor    float64 `yaml:"wind_factor"`
	SurvivalHours float64 `yaml:"survival_hours"`
}

// DefaultProfile is returned for unknown object types.
var DefaultProfile = ObjectProfile{
	DragFactor:    1.0,
	CurrentFactor: 1.0,
	WindFactor:    0.0,
	SurvivalHours: 24,
}

var objectNames = map[ObjectType]string{
	ObjectUnknown:              "Unknown",
	PersonAdultLifeJacket:      "Person_Adult_LifeJacket",
	PersonAdultNoLifeJacket:    "Person_Adult_NoLifeJacket",
	PersonAdolescentLifeJacket: "Person_Adolescent_LifeJacket",
	PersonChildLifeJacket:      "Person_Child_LifeJacket",
	Catamaran:                  "Catamaran",
	HobbyCat:                   "Hobby_Cat",
	FishingTrawler:             "Fishing_Trawler",
	RHIB:                       "RHIB",
	SUPBoard:                   "SUP_Board",
	Windsurfer:                 "Windsurfer",
	Kayak:                      "Kayak",
}

var defaultProfiles = map[ObjectType]ObjectProfile{
	PersonAdultLifeJacket:      {DragFactor: 0.8, CurrentFactor: 1.0, WindFactor: 0.01, SurvivalHours: 24},
	PersonAdultNoLifeJacket:    {DragFactor: 1.1, CurrentFactor: 1.0, WindFactor: 0.005, SurvivalHours: 6},
	PersonAdolescentLifeJacket: {DragFactor: 0.9, CurrentFactor: 1.0, WindFactor: 0.01, SurvivalHours: 24},
	PersonChildLifeJacket:      {DragFactor: 1.0, CurrentFactor: 1.0, WindFactor: 0.015, SurvivalHours: 12},
	Catamaran:                  {DragFactor: 0.4, CurrentFactor: 1.0, WindFactor: 0.05, SurvivalHours: 72},
	HobbyCat:                   {DragFactor: 0.5, CurrentFactor: 1.0, WindFactor: 0.05, SurvivalHours: 72},
	FishingTrawler:             {DragFactor: 0.2, CurrentFactor: 1.0, WindFactor: 0.03, SurvivalHours: 120},
	RHIB:                       {DragFactor: 0.6, CurrentFactor: 1.0, WindFactor: 0.02, SurvivalHours: 48},
	SUPBoard:                   {DragFactor: 1.2, CurrentFactor: 1.0, WindFactor: 0.06, SurvivalHours: 12},
	Windsurfer:                 {DragFactor: 1.3, CurrentFactor: 1.0, WindFactor: 0.06, SurvivalHours: 12},
	Kayak:                      {DragFactor: 1.1, CurrentFactor: 1.0, WindFactor: 0.01, SurvivalHours: 24},
}

// String returns the wire name of the object type.
func (t ObjectType) String() string {
	if name, ok := objectNames[t]; ok {
		return name
	}
	return "Unknown"
}

// WearsLifeJacket reports whether the type denotes a person wearing a life
// jacket. The search-pattern recommendation treats these specially.
func (t ObjectType) WearsLifeJacket() bool {
	switch t {
	case PersonAdultLifeJacket, PersonAdolescentLifeJacket, PersonChildLifeJacket:
		return true
	}
	return false
}

// ParseObjectType resolves a wire string to an object type. Unmatched input
// yields ObjectUnknown; it never fails.
func ParseObjectType(s string) ObjectType {
	for t, name := range objectNames {
		if t != ObjectUnknown && name == s {
			return t
		}
	}
	return ObjectUnknown
}

// AllObjectTypes returns the known variants in a stable order, excluding
// ObjectUnknown.
func AllObjectTypes() []ObjectType {
	return []ObjectType{
		PersonAdultLifeJacket,
		PersonAdultNoLifeJacket,
		PersonAdolescentLifeJacket,
		PersonChildLifeJacket,
		Catamaran,
		HobbyCat,
		FishingTrawler,
		RHIB,
		SUPBoard,
		Windsurfer,
		Kayak,
	}
}

// ProfileTable maps object types to their drift coefficients. It is built
// once at startup and treated as immutable afterwards.
type ProfileTable struct {
	profiles map[ObjectType]ObjectProfile
}

// NewProfileTable returns a table populated with the built-in coefficients.
func NewProfileTable() *ProfileTable {
	profiles := make(map[ObjectType]ObjectProfile, len(defaultProfiles))
	for t, p := range defaultProfiles {
		profiles[t] = p
	}
	return &ProfileTable{profiles: profiles}
}

// NewProfileTableWith returns a table with per-type overrides applied on top
// of the built-in coefficients. Overrides keyed by unknown names are ignored.
func NewProfileTableWith(overrides map[string]ObjectProfile) *ProfileTable {
	table := NewProfileTable()
	for name, p := range overrides {
		t := ParseObjectType(name)
		if t == ObjectUnknown {
			continue
		}
		table.profiles[t] = p
	}
	return table
}

// Lookup returns the profile for the given type. Unknown types resolve to
// DefaultProfile; the lookup never fails.
func (pt *ProfileTable) Lookup(t ObjectType) ObjectProfile {
	if p, ok := pt.profiles[t]; ok {
		return p
	}
	return DefaultProfile
}
