package domain

// Dignity is a body's strength classification in a sign.
type Dignity string

// Dignities from strongest to weakest.
const (
	DignityExalted     Dignity = "exalted"
	DignityMulatrikona Dignity = "mulatrikona"
	DignityOwnSign     Dignity = "own_sign"
	DignityFriendSign  Dignity = "friend_sign"
	DignityNeutralSign Dignity = "neutral_sign"
	DignityEnemySign   Dignity = "enemy_sign"
	DignityDebilitated Dignity = "debilitated"
)

// AllDignities lists every dignity in rank order.
var AllDignities = []Dignity{
	DignityExalted, DignityMulatrikona, DignityOwnSign,
	DignityFriendSign, DignityNeutralSign, DignityEnemySign, DignityDebilitated,
}

// IsValid returns true if the dignity is recognised.
func (d Dignity) IsValid() bool {
	for _, v := range AllDignities {
		if v == d {
			return true
		}
	}
	return false
}

// String returns the string representation.
func (d Dignity) String() string {
	return string(d)
}

// Relation is the three-valued natural or temporary relationship.
type Relation string

// Relations between two bodies.
const (
	RelationFriend  Relation = "friend"
	RelationNeutral Relation = "neutral"
	RelationEnemy   Relation = "enemy"
)

// AllRelations lists every relation value.
var AllRelations = []Relation{RelationFriend, RelationNeutral, RelationEnemy}

// IsValid returns true if the relation is recognised.
func (r Relation) IsValid() bool {
	switch r {
	case RelationFriend, RelationNeutral, RelationEnemy:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (r Relation) String() string {
	return string(r)
}

// CompoundRelation is the five-fold relationship.
type CompoundRelation string

// Compound relations from best to worst.
const (
	CompoundBestFriend CompoundRelation = "best_friend"
	CompoundFriend     CompoundRelation = "friend"
	CompoundNeutral    CompoundRelation = "neutral"
	CompoundEnemy      CompoundRelation = "enemy"
	CompoundArchEnemy  CompoundRelation = "arch_enemy"
)

// IsValid returns true if the compound relation is recognised.
func (c CompoundRelation) IsValid() bool {
	switch c {
	case CompoundBestFriend, CompoundFriend, CompoundNeutral, CompoundEnemy, CompoundArchEnemy:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c CompoundRelation) String() string {
	return string(c)
}

// CompoundRule maps one natural/temporary pair to a compound relation.
type CompoundRule struct {
	Natural   Relation         `json:"natural" toml:"natural" yaml:"natural"`
	Temporary Relation         `json:"temporary" toml:"temporary" yaml:"temporary"`
	Compound  CompoundRelation `json:"compound" toml:"compound" yaml:"compound"`
}

// CompoundTable is the complete natural × temporary mapping.
type CompoundTable []CompoundRule

// Lookup finds the compound relation for a pair.
func (t CompoundTable) Lookup(natural, temporary Relation) (CompoundRelation, bool) {
	for _, r := range t {
		if r.Natural == natural && r.Temporary == temporary {
			return r.Compound, true
		}
	}
	return "", false
}

// DefaultCompoundTable covers every natural × temporary combination.
func DefaultCompoundTable() CompoundTable {
	return CompoundTable{
		{RelationFriend, RelationFriend, CompoundBestFriend},
		{RelationFriend, RelationNeutral, CompoundFriend},
		{RelationFriend, RelationEnemy, CompoundNeutral},
		{RelationNeutral, RelationFriend, CompoundFriend},
		{RelationNeutral, RelationNeutral, CompoundNeutral},
		{RelationNeutral, RelationEnemy, CompoundEnemy},
		{RelationEnemy, RelationFriend, CompoundNeutral},
		{RelationEnemy, RelationNeutral, CompoundEnemy},
		{RelationEnemy, RelationEnemy, CompoundArchEnemy},
	}
}

// SignDegree is a sign plus a degree within it.
type SignDegree struct {
	Sign   int     `json:"sign" toml:"sign" yaml:"sign"`
	Degree float64 `json:"degree" toml:"degree" yaml:"degree"`
}

// SignRange is a sign plus an inclusive degree window within it.
type SignRange struct {
	Sign int     `json:"sign" toml:"sign" yaml:"sign"`
	From float64 `json:"from" toml:"from" yaml:"from"`
	To   float64 `json:"to" toml:"to" yaml:"to"`
}

// Contains reports whether a sign/degree lies in the window.
func (r SignRange) Contains(sign int, degree float64) bool {
	return r.Sign == sign && degree >= r.From && degree <= r.To
}

// BodyAttributes are the static dignity and friendship tables for a body.
type BodyAttributes struct {
	Key          BodyKey     `json:"key" toml:"key" yaml:"key"`
	Name         string      `json:"name" toml:"name" yaml:"name"`
	Friends      []BodyKey   `json:"friends,omitempty" toml:"friends" yaml:"friends"`
	Neutrals     []BodyKey   `json:"neutrals,omitempty" toml:"neutrals" yaml:"neutrals"`
	Enemies      []BodyKey   `json:"enemies,omitempty" toml:"enemies" yaml:"enemies"`
	OwnSigns     []int       `json:"own_signs,omitempty" toml:"own_signs" yaml:"own_signs"`
	Exaltation   *SignDegree `json:"exaltation,omitempty" toml:"exaltation" yaml:"exaltation"`
	Debilitation *SignDegree `json:"debilitation,omitempty" toml:"debilitation" yaml:"debilitation"`
	Mulatrikona  *SignRange  `json:"mulatrikona,omitempty" toml:"mulatrikona" yaml:"mulatrikona"`
}

// Rules reports whether the body owns a sign.
func (a BodyAttributes) Rules(sign int) bool {
	for _, s := range a.OwnSigns {
		if s == sign {
			return true
		}
	}
	return false
}

// Relationship is the full pairwise view of body A towards body B.
type Relationship struct {
	From      BodyKey          `json:"from"`
	To        BodyKey          `json:"to"`
	Natural   Relation         `json:"natural"`
	Temporary Relation         `json:"temporary"`
	Compound  CompoundRelation `json:"compound"`
}

// ChartBody is a body position enriched with its annotations.
type ChartBody struct {
	Position      BodyPosition   `json:"position"`
	Sign          int            `json:"sign"`
	Degree        float64        `json:"degree"`
	House         int            `json:"house,omitempty"`
	Nakshatra     int            `json:"nakshatra"`
	Pada          int            `json:"pada"`
	Dignity       Dignity        `json:"dignity,omitempty"`
	Relationships []Relationship `json:"relationships,omitempty"`
	Vargas        []VargaValue   `json:"vargas,omitempty"`
}
