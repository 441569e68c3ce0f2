package sectors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectorByCode(t *testing.T) {
	s, ok := SectorByCode("ENER")
	require.True(t, ok)
	assert.Equal(t, "Energy", s.Name)

	_, ok = SectorByCode("NOPE")
	assert.False(t, ok)
}

func TestFacilityByName_CaseInsensitive(t *testing.T) {
	f, sector, subSector, ok := FacilityByName("gas processing plant")
	require.True(t, ok)
	assert.Equal(t, "ENER-NG-PROC", f.Code)
	assert.Equal(t, "Energy", sector)
	assert.Equal(t, "Natural Gas", subSector)
}

func TestFacilityByName_ByCode(t *testing.T) {
	f, _, _, ok := FacilityByName("WATR-WW-POTW")
	require.True(t, ok)
	assert.Equal(t, "Wastewater Treatment Plant (POTW)", f.Name)
}

func TestExpectedClasses_Distinct(t *testing.T) {
	f, _, _, ok := FacilityByName("Surface Water Treatment Plant")
	require.True(t, ok)

	classes := ExpectedClasses(f)
	assert.Contains(t, classes, "CentrifugalPump")
	assert.Contains(t, classes, "Filter")

	seen := make(map[string]bool)
	for _, c := range classes {
		assert.False(t, seen[c], "class %s listed twice", c)
		seen[c] = true
	}
}

func TestEquipmentTypeByClass(t *testing.T) {
	f, _, _, ok := FacilityByName("Combined Cycle Gas Turbine Power Plant")
	require.True(t, ok)

	eq, ok := EquipmentTypeByClass(f, "gasturbine")
	require.True(t, ok)
	assert.Equal(t, GasTurbineURI, eq.ComponentClassURI)

	_, ok = EquipmentTypeByClass(f, "Clarifier")
	assert.False(t, ok)
}

func TestTaxonomyURIsAreRDLScoped(t *testing.T) {
	for _, s := range All() {
		for _, sub := range s.SubSectors {
			for _, f := range sub.Facilities {
				for _, eq := range f.Equipment {
					valid := strings.HasPrefix(eq.ComponentClassURI, "http://data.posccaesar.org/rdl/") ||
						strings.HasPrefix(eq.ComponentClassURI, "http://sandbox.dexpi.org/rdl/")
					assert.True(t, valid, "%s/%s has out-of-scope URI %s", f.Code, eq.ComponentClass, eq.ComponentClassURI)
				}
			}
		}
	}
}

func TestTotalFacilities(t *testing.T) {
	assert.Equal(t, 6, TotalFacilities())
}
