package maitri

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

func TestClassifyDignity(t *testing.T) {
	ref := testReference()

	tests := []struct {
		name string
		body domain.BodyKey
		lon  float64
		orb  float64
		want domain.Dignity
	}{
		{"sun exalted in aries", "su", lon(1, 10), 0, domain.DignityExalted},
		{"sun outside orb falls to ruler", "su", lon(1, 25), 5, domain.DignityFriendSign},
		{"sun mulatrikona wins over own sign", "su", lon(5, 10), 0, domain.DignityMulatrikona},
		{"sun own sign past mulatrikona", "su", lon(5, 25), 0, domain.DignityOwnSign},
		{"sun debilitated in libra", "su", lon(7, 10), 0, domain.DignityDebilitated},
		{"sun in venus sign is enemy", "su", lon(2, 1), 0, domain.DignityEnemySign},
		{"sun in mercury sign is neutral", "su", lon(3, 1), 0, domain.DignityNeutralSign},
		{"sun in moon sign is friend", "su", lon(4, 1), 0, domain.DignityFriendSign},
		{"mercury exaltation beats mulatrikona", "me", lon(6, 17), 0, domain.DignityExalted},
		{"mercury mulatrikona outside orb", "me", lon(6, 18), 1, domain.DignityMulatrikona},
		{"mercury own virgo past window", "me", lon(6, 25), 1, domain.DignityOwnSign},
		{"saturn mulatrikona in aquarius", "sa", lon(11, 5), 0, domain.DignityMulatrikona},
		{"longitude zero is aries", "sa", 0, 0, domain.DignityDebilitated},
		{"moon at end of taurus", "mo", 60, 5, domain.DignityMulatrikona},
		{"moon just before end of taurus", "mo", 59.9999, 5, domain.DignityMulatrikona},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClassifyDignity(ref, tt.body, tt.lon, Options{ExaltationOrb: tt.orb})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyDignity_ExactlyOneForEveryPlacement(t *testing.T) {
	ref := testReference()

	for _, body := range domain.ClassicalPlanets {
		for l := 0.0; l < 360; l += 2.5 {
			d, err := ClassifyDignity(ref, body, l, Options{})
			require.NoError(t, err)
			assert.True(t, d.IsValid(), "%s at %v gave %q", body, l, d)
		}
	}
}

func TestClassifyDignity_UnknownBody(t *testing.T) {
	_, err := ClassifyDignity(testReference(), domain.BodyAscendant, 10, Options{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownBody))
}

func TestNatural_IsAsymmetric(t *testing.T) {
	ref := testReference()

	assert.Equal(t, domain.RelationFriend, Natural(ref, "mo", "me"))
	assert.Equal(t, domain.RelationEnemy, Natural(ref, "me", "mo"))
	assert.Equal(t, domain.RelationNeutral, Natural(ref, "su", "me"))
	assert.Equal(t, domain.RelationNeutral, Natural(ref, "ra", "su"))
}

func TestTemporary(t *testing.T) {
	for house := 1; house <= 12; house++ {
		signB := (house-1)%12 + 1
		got := Temporary(1, signB)
		switch house {
		case 2, 3, 4, 10, 11, 12:
			assert.Equal(t, domain.RelationFriend, got, "house %d", house)
		default:
			assert.Equal(t, domain.RelationEnemy, got, "house %d", house)
		}
	}
	// Wraps past Pisces.
	assert.Equal(t, domain.RelationFriend, Temporary(11, 1))
}

func TestRelationship_SunVenusScenario(t *testing.T) {
	ref := testReference()
	sun := domain.BodyPosition{Key: "su", Longitude: lon(1, 15)}
	venus := domain.BodyPosition{Key: "ve", Longitude: lon(3, 2)}

	rel, err := Relationship(ref, sun, venus)

	require.NoError(t, err)
	assert.Equal(t, domain.RelationEnemy, rel.Natural)
	assert.Equal(t, domain.RelationFriend, rel.Temporary)
	assert.Equal(t, domain.CompoundNeutral, rel.Compound)
}

func TestCompound_Table(t *testing.T) {
	table := domain.DefaultCompoundTable()

	tests := []struct {
		natural, temporary domain.Relation
		want               domain.CompoundRelation
	}{
		{domain.RelationFriend, domain.RelationFriend, domain.CompoundBestFriend},
		{domain.RelationNeutral, domain.RelationFriend, domain.CompoundFriend},
		{domain.RelationFriend, domain.RelationEnemy, domain.CompoundNeutral},
		{domain.RelationEnemy, domain.RelationFriend, domain.CompoundNeutral},
		{domain.RelationNeutral, domain.RelationEnemy, domain.CompoundEnemy},
		{domain.RelationEnemy, domain.RelationEnemy, domain.CompoundArchEnemy},
		{domain.RelationNeutral, domain.RelationNeutral, domain.CompoundNeutral},
	}

	for _, tt := range tests {
		got, err := Compound(table, tt.natural, tt.temporary)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s/%s", tt.natural, tt.temporary)
	}
}

func TestValidateCompoundTable(t *testing.T) {
	require.NoError(t, ValidateCompoundTable(domain.DefaultCompoundTable()))

	incomplete := domain.DefaultCompoundTable()[:8]
	err := ValidateCompoundTable(incomplete)
	assert.True(t, errors.Is(err, domain.ErrUnmappedRelationship))

	conflicting := append(domain.DefaultCompoundTable(),
		domain.CompoundRule{Natural: domain.RelationFriend, Temporary: domain.RelationFriend, Compound: domain.CompoundEnemy})
	err = ValidateCompoundTable(conflicting)
	assert.True(t, errors.Is(err, domain.ErrInvalidReferenceData))

	bogus := domain.CompoundTable{{Natural: "ally", Temporary: domain.RelationFriend, Compound: domain.CompoundFriend}}
	err = ValidateCompoundTable(bogus)
	assert.True(t, errors.Is(err, domain.ErrInvalidReferenceData))
}

func TestCompound_Unmapped(t *testing.T) {
	_, err := Compound(domain.CompoundTable{}, domain.RelationFriend, domain.RelationEnemy)

	assert.True(t, errors.Is(err, domain.ErrUnmappedRelationship))
}

func TestAnnotate(t *testing.T) {
	ref := testReference()
	bodies := []domain.ChartBody{
		{Position: domain.BodyPosition{Key: domain.BodyAscendant, Longitude: 12}},
		{Position: domain.BodyPosition{Key: "su", Longitude: lon(1, 15)}},
		{Position: domain.BodyPosition{Key: "ve", Longitude: lon(3, 2)}},
	}

	out, err := Annotate(ref, bodies, Options{})

	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Empty(t, out[0].Dignity)
	assert.Empty(t, out[0].Relationships)
	assert.Equal(t, domain.DignityExalted, out[1].Dignity)
	require.Len(t, out[1].Relationships, 1)
	assert.Equal(t, domain.BodyKey("ve"), out[1].Relationships[0].To)
	// Venus in Gemini sits in its friend Mercury's sign.
	assert.Equal(t, domain.DignityFriendSign, out[2].Dignity)

	// Input is not mutated.
	assert.Empty(t, bodies[1].Dignity)
}

func TestValidateBodies(t *testing.T) {
	require.NoError(t, ValidateBodies(testReference()))

	ref := testReference()
	sun := ref.Bodies[domain.BodySun]
	sun.Enemies = append(sun.Enemies, "mo")
	ref.Bodies[domain.BodySun] = sun
	assert.True(t, errors.Is(ValidateBodies(ref), domain.ErrInvalidReferenceData))

	ref = testReference()
	delete(ref.SignRulers, 12)
	assert.True(t, errors.Is(ValidateBodies(ref), domain.ErrInvalidReferenceData))

	ref = testReference()
	ref.SignRulers[3] = "xx"
	assert.True(t, errors.Is(ValidateBodies(ref), domain.ErrUnknownBody))

	ref = testReference()
	mars := ref.Bodies[domain.BodyMars]
	mars.OwnSigns = []int{13}
	ref.Bodies[domain.BodyMars] = mars
	assert.Error(t, ValidateBodies(ref))
}
