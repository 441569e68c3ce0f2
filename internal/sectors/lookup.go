package sectors

import "strings"

// All returns the full sector taxonomy.
func All() []Sector {
	return taxonomy
}

// SectorByCode finds a sector by its short code (e.g. "ENER").
func SectorByCode(code string) (Sector, bool) {
	for _, s := range taxonomy {
		if s.Code == code {
			return s, true
		}
	}
	return Sector{}, false
}

// FacilityByName finds a facility by name anywhere in the taxonomy, returning
// the facility and the names of its sector and sub-sector. The match is
// case-insensitive.
func FacilityByName(name string) (Facility, string, string, bool) {
	for _, s := range taxonomy {
		for _, sub := range s.SubSectors {
			for _, f := range sub.Facilities {
				if strings.EqualFold(f.Name, name) || strings.EqualFold(f.Code, name) {
					return f, s.Name, sub.Name, true
				}
			}
		}
	}
	return Facility{}, "", "", false
}

// ExpectedClasses returns the distinct component classes a facility type is
// expected to carry, in taxonomy order.
func ExpectedClasses(f Facility) []string {
	seen := make(map[string]bool, len(f.Equipment))
	var classes []string
	for _, eq := range f.Equipment {
		if !seen[eq.ComponentClass] {
			seen[eq.ComponentClass] = true
			classes = append(classes, eq.ComponentClass)
		}
	}
	return classes
}

// EquipmentTypeByClass finds the taxonomy entry for a component class within a
// facility, giving research a curated URI and category when one exists.
func EquipmentTypeByClass(f Facility, componentClass string) (EquipmentType, bool) {
	for _, eq := range f.Equipment {
		if strings.EqualFold(eq.ComponentClass, componentClass) {
			return eq, true
		}
	}
	return EquipmentType{}, false
}

// TotalFacilities counts facility types across the whole taxonomy.
func TotalFacilities() int {
	n := 0
	for _, s := range taxonomy {
		for _, sub := range s.SubSectors {
			n += len(sub.Facilities)
		}
	}
	return n
}
