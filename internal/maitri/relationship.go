package maitri

import (
	"fmt"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

// temporaryFriendHouses are the houses, counted inclusively from a body,
// whose occupants become its temporary friends.
var temporaryFriendHouses = map[int]bool{2: true, 3: true, 4: true, 10: true, 11: true, 12: true}

// Natural returns A's static view of B. The tables are asymmetric.
// A body absent from every set, or an unknown A, is neutral.
func Natural(ref *domain.ReferenceData, a, b domain.BodyKey) domain.Relation {
	attrs, ok := ref.Body(a)
	if !ok {
		return domain.RelationNeutral
	}
	if contains(attrs.Friends, b) {
		return domain.RelationFriend
	}
	if contains(attrs.Enemies, b) {
		return domain.RelationEnemy
	}
	return domain.RelationNeutral
}

// Temporary returns the position-dependent relation of a body in signB
// as seen from a body in signA.
func Temporary(signA, signB int) domain.Relation {
	if temporaryFriendHouses[domain.HouseFrom(signA, signB)] {
		return domain.RelationFriend
	}
	return domain.RelationEnemy
}

// Compound combines a natural and a temporary relation.
func Compound(table domain.CompoundTable, natural, temporary domain.Relation) (domain.CompoundRelation, error) {
	c, ok := table.Lookup(natural, temporary)
	if !ok {
		return "", fmt.Errorf("%w: natural=%s temporary=%s", domain.ErrUnmappedRelationship, natural, temporary)
	}
	return c, nil
}

// Relationship computes the full view of body a towards body b.
func Relationship(ref *domain.ReferenceData, a, b domain.BodyPosition) (domain.Relationship, error) {
	natural := Natural(ref, a.Key, b.Key)
	temporary := Temporary(a.Sign(), b.Sign())
	compound, err := Compound(ref.Compound, natural, temporary)
	if err != nil {
		return domain.Relationship{}, err
	}
	return domain.Relationship{
		From:      a.Key,
		To:        b.Key,
		Natural:   natural,
		Temporary: temporary,
		Compound:  compound,
	}, nil
}

// ValidateCompoundTable checks that every natural × temporary pair maps to
// exactly one valid compound relation.
func ValidateCompoundTable(table domain.CompoundTable) error {
	seen := make(map[[2]domain.Relation]domain.CompoundRelation, len(table))
	for _, r := range table {
		if !r.Natural.IsValid() || !r.Temporary.IsValid() || !r.Compound.IsValid() {
			return fmt.Errorf("%w: rule %s/%s -> %s", domain.ErrInvalidReferenceData, r.Natural, r.Temporary, r.Compound)
		}
		key := [2]domain.Relation{r.Natural, r.Temporary}
		if prev, dup := seen[key]; dup && prev != r.Compound {
			return fmt.Errorf("%w: conflicting rules for %s/%s", domain.ErrInvalidReferenceData, r.Natural, r.Temporary)
		}
		seen[key] = r.Compound
	}
	for _, n := range domain.AllRelations {
		for _, t := range domain.AllRelations {
			if _, ok := seen[[2]domain.Relation{n, t}]; !ok {
				return fmt.Errorf("%w: natural=%s temporary=%s", domain.ErrUnmappedRelationship, n, t)
			}
		}
	}
	return nil
}

func contains(keys []domain.BodyKey, k domain.BodyKey) bool {
	for _, v := range keys {
		if v == k {
			return true
		}
	}
	return false
}
