package maitri

import (
	"fmt"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

// ValidateBodies checks the body and sign-ruler tables.
func ValidateBodies(ref *domain.ReferenceData) error {
	for key, attrs := range ref.Bodies {
		if !key.IsValid() {
			return fmt.Errorf("%w: body key %q", domain.ErrInvalidReferenceData, key)
		}
		if attrs.Key != "" && attrs.Key != key {
			return fmt.Errorf("%w: body %s declares key %s", domain.ErrInvalidReferenceData, key, attrs.Key)
		}

		seen := make(map[domain.BodyKey]string)
		sets := []struct {
			name string
			keys []domain.BodyKey
		}{
			{"friends", attrs.Friends},
			{"neutrals", attrs.Neutrals},
			{"enemies", attrs.Enemies},
		}
		for _, set := range sets {
			for _, other := range set.keys {
				if other == key {
					return fmt.Errorf("%w: %s lists itself in %s", domain.ErrInvalidReferenceData, key, set.name)
				}
				if prev, dup := seen[other]; dup {
					return fmt.Errorf("%w: %s lists %s in both %s and %s",
						domain.ErrInvalidReferenceData, key, other, prev, set.name)
				}
				seen[other] = set.name
			}
		}

		for _, s := range attrs.OwnSigns {
			if !validSign(s) {
				return fmt.Errorf("%w: %s owns sign %d", domain.ErrInvalidReferenceData, key, s)
			}
		}
		if ex := attrs.Exaltation; ex != nil && !validSignDegree(*ex) {
			return fmt.Errorf("%w: %s exaltation %+v", domain.ErrInvalidReferenceData, key, *ex)
		}
		if deb := attrs.Debilitation; deb != nil && !validSignDegree(*deb) {
			return fmt.Errorf("%w: %s debilitation %+v", domain.ErrInvalidReferenceData, key, *deb)
		}
		if mt := attrs.Mulatrikona; mt != nil {
			if !validSign(mt.Sign) || mt.From < 0 || mt.To > domain.SignSpan || mt.From > mt.To {
				return fmt.Errorf("%w: %s mulatrikona %+v", domain.ErrInvalidReferenceData, key, *mt)
			}
		}
	}

	for sign := 1; sign <= domain.SignCount; sign++ {
		ruler, ok := ref.SignRulers[sign]
		if !ok {
			return fmt.Errorf("%w: sign %d has no ruler", domain.ErrInvalidReferenceData, sign)
		}
		if _, ok := ref.Bodies[ruler]; !ok {
			return fmt.Errorf("%w: sign %d ruler %s: %w", domain.ErrInvalidReferenceData, sign, ruler, domain.ErrUnknownBody)
		}
	}
	return nil
}

func validSign(s int) bool {
	return s >= 1 && s <= domain.SignCount
}

func validSignDegree(sd domain.SignDegree) bool {
	return validSign(sd.Sign) && sd.Degree >= 0 && sd.Degree < domain.SignSpan
}
