package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/tripplanner/internal/models"
)

func TestLookup(t *testing.T) {
	r, ok := Lookup("TELANGANA")
	require.True(t, ok)
	assert.Equal(t, "Telangana", r.Name)
	assert.Len(t, r.Places, 4)
	assert.Len(t, r.Facts, 2)

	_, ok = Lookup("Goa")
	assert.False(t, ok)
}

func TestRegions_FixedSet(t *testing.T) {
	assert.Equal(t, []string{"Tamil Nadu", "Kerala", "Karnataka", "Telangana"}, Names())
	for _, r := range Regions() {
		assert.NotEmpty(t, r.Facts, r.Name)
		assert.Len(t, r.Places, 4, r.Name)
		assert.True(t, IsSupported(r.Name))
		assert.True(t, IsSupported(r.Key))
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	places := Places("kerala")
	places[0] = "mutated"
	assert.NotEqual(t, "mutated", Places("kerala")[0])

	r, _ := Lookup("kerala")
	r.Facts[0] = "mutated"
	assert.NotEqual(t, "mutated", Facts("kerala")[0])

	q := Quotes()
	q[0] = "mutated"
	assert.NotEqual(t, "mutated", Quotes()[0])

	a := Advice(models.TierPremium)
	a[models.CategoryTravel] = "mutated"
	assert.NotEqual(t, "mutated", Advice(models.TierPremium)[models.CategoryTravel])
}

func TestUnknownLookups(t *testing.T) {
	assert.Nil(t, Facts("nowhere"))
	assert.NotNil(t, Places("nowhere"))
	assert.Empty(t, Places("nowhere"))
	assert.Empty(t, Advice(models.Tier("gold")))
}

func TestStaticTables(t *testing.T) {
	assert.Len(t, Themes(), 7)
	assert.Len(t, Quotes(), 4)
	for _, tier := range models.ValidTiers {
		assert.Len(t, Advice(tier), 4, string(tier))
	}
}
