package maitri

import (
	"fmt"
	"math"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

// Options tunes dignity classification.
type Options struct {
	// ExaltationOrb limits exaltation to this many degrees around the
	// exact exaltation point. Zero accepts the whole sign.
	ExaltationOrb float64
}

// ClassifyDignity returns the single dignity of a body at a longitude.
//
// Rules are evaluated in order and the first match wins: exaltation,
// mulatrikona, own sign, debilitation, then the natural relation of the
// body to the sign's ruler. The ruler step always matches, so debilitation
// is checked before it.
func ClassifyDignity(ref *domain.ReferenceData, body domain.BodyKey, longitude float64, opts Options) (domain.Dignity, error) {
	attrs, ok := ref.Body(body)
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownBody, body)
	}

	sign := domain.SignOf(longitude)
	degree := domain.DegreeInSign(longitude)

	if ex := attrs.Exaltation; ex != nil && ex.Sign == sign {
		if opts.ExaltationOrb <= 0 || math.Abs(degree-ex.Degree) <= opts.ExaltationOrb {
			return domain.DignityExalted, nil
		}
	}
	if mt := attrs.Mulatrikona; mt != nil && mt.Contains(sign, degree) {
		return domain.DignityMulatrikona, nil
	}
	if attrs.Rules(sign) {
		return domain.DignityOwnSign, nil
	}
	if deb := attrs.Debilitation; deb != nil && deb.Sign == sign {
		return domain.DignityDebilitated, nil
	}

	ruler, ok := ref.Ruler(sign)
	if !ok {
		return "", fmt.Errorf("%w: no ruler for sign %d", domain.ErrInvalidReferenceData, sign)
	}
	switch Natural(ref, body, ruler) {
	case domain.RelationFriend:
		return domain.DignityFriendSign, nil
	case domain.RelationEnemy:
		return domain.DignityEnemySign, nil
	default:
		return domain.DignityNeutralSign, nil
	}
}

// Annotate returns copies of the bodies with dignity and relationships
// filled in. Bodies without reference attributes, such as the ascendant,
// are returned unchanged.
func Annotate(ref *domain.ReferenceData, bodies []domain.ChartBody, opts Options) ([]domain.ChartBody, error) {
	out := make([]domain.ChartBody, len(bodies))
	for i, b := range bodies {
		out[i] = b
		if _, ok := ref.Body(b.Position.Key); !ok {
			continue
		}

		dignity, err := ClassifyDignity(ref, b.Position.Key, b.Position.Longitude, opts)
		if err != nil {
			return nil, fmt.Errorf("dignity of %s: %w", b.Position.Key, err)
		}
		out[i].Dignity = dignity

		var rels []domain.Relationship
		for _, other := range bodies {
			if other.Position.Key == b.Position.Key {
				continue
			}
			if _, ok := ref.Body(other.Position.Key); !ok {
				continue
			}
			rel, err := Relationship(ref, b.Position, other.Position)
			if err != nil {
				return nil, fmt.Errorf("relationship %s->%s: %w", b.Position.Key, other.Position.Key, err)
			}
			rels = append(rels, rel)
		}
		out[i].Relationships = rels
	}
	return out, nil
}
