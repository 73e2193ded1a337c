// Package units implements runtime unit (character) instances: resources,
// attributes, equipment, talents, cooldowns, and status effects.
package units

// Attribute identifies one of a unit's nine named attributes.
type Attribute int

const (
	Strength Attribute = iota
	Fortitude
	Finesse
	Wisdom
	Wonder
	Worthy
	Faith
	Spirit
	Speed
)

var attributeNames = map[Attribute]string{
	Strength:  "strength",
	Fortitude: "fortitude",
	Finesse:   "finesse",
	Wisdom:    "wisdom",
	Wonder:    "wonder",
	Worthy:    "worthy",
	Faith:     "faith",
	Spirit:    "spirit",
	Speed:     "speed",
}

func (a Attribute) String() string {
	if s, ok := attributeNames[a]; ok {
		return s
	}
	return "unknown"
}

// ParseAttribute maps a data-file attribute name to an Attribute. Unknown
// names are reported via ok=false so callers can reject malformed data at
// load time.
func ParseAttribute(name string) (Attribute, bool) {
	for a, s := range attributeNames {
		if s == name {
			return a, true
		}
	}
	return 0, false
}

// Attributes holds the base value of each of the nine named attributes.
type Attributes struct {
	values [9]int
}

// NewAttributes builds an Attributes set from explicit base values.
func NewAttributes(strength, fortitude, finesse, wisdom, wonder, worthy, faith, spirit, speed int) Attributes {
	return Attributes{values: [9]int{strength, fortitude, finesse, wisdom, wonder, worthy, faith, spirit, speed}}
}

// Get returns the base value of attr.
func (a Attributes) Get(attr Attribute) int {
	return a.values[attr]
}

// Add applies a flat delta to attr's base value, returning the updated set.
func (a Attributes) Add(attr Attribute, delta int) Attributes {
	a.values[attr] += delta
	return a
}
