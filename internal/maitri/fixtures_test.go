package maitri

import "github.com/custodia-labs/jyotish/internal/core/domain"

func keys(k ...domain.BodyKey) []domain.BodyKey { return k }

func testReference() *domain.ReferenceData {
	return &domain.ReferenceData{
		Bodies: map[domain.BodyKey]domain.BodyAttributes{
			domain.BodySun: {
				Key: domain.BodySun, Name: "Sun",
				Friends: keys("mo", "ma", "ju"), Neutrals: keys("me"), Enemies: keys("ve", "sa"),
				OwnSigns:     []int{5},
				Exaltation:   &domain.SignDegree{Sign: 1, Degree: 10},
				Debilitation: &domain.SignDegree{Sign: 7, Degree: 10},
				Mulatrikona:  &domain.SignRange{Sign: 5, From: 0, To: 20},
			},
			domain.BodyMoon: {
				Key: domain.BodyMoon, Name: "Moon",
				Friends: keys("su", "me"), Neutrals: keys("ma", "ju", "ve", "sa"),
				OwnSigns:     []int{4},
				Exaltation:   &domain.SignDegree{Sign: 2, Degree: 3},
				Debilitation: &domain.SignDegree{Sign: 8, Degree: 3},
				Mulatrikona:  &domain.SignRange{Sign: 2, From: 3, To: 30},
			},
			domain.BodyMars: {
				Key: domain.BodyMars, Name: "Mars",
				Friends: keys("su", "mo", "ju"), Neutrals: keys("ve", "sa"), Enemies: keys("me"),
				OwnSigns:     []int{1, 8},
				Exaltation:   &domain.SignDegree{Sign: 10, Degree: 28},
				Debilitation: &domain.SignDegree{Sign: 4, Degree: 28},
				Mulatrikona:  &domain.SignRange{Sign: 1, From: 0, To: 12},
			},
			domain.BodyMercury: {
				Key: domain.BodyMercury, Name: "Mercury",
				Friends: keys("su", "ve"), Neutrals: keys("ma", "ju", "sa"), Enemies: keys("mo"),
				OwnSigns:     []int{3, 6},
				Exaltation:   &domain.SignDegree{Sign: 6, Degree: 15},
				Debilitation: &domain.SignDegree{Sign: 12, Degree: 15},
				Mulatrikona:  &domain.SignRange{Sign: 6, From: 15, To: 20},
			},
			domain.BodyJupiter: {
				Key: domain.BodyJupiter, Name: "Jupiter",
				Friends: keys("su", "mo", "ma"), Neutrals: keys("sa"), Enemies: keys("me", "ve"),
				OwnSigns:     []int{9, 12},
				Exaltation:   &domain.SignDegree{Sign: 4, Degree: 5},
				Debilitation: &domain.SignDegree{Sign: 10, Degree: 5},
				Mulatrikona:  &domain.SignRange{Sign: 9, From: 0, To: 10},
			},
			domain.BodyVenus: {
				Key: domain.BodyVenus, Name: "Venus",
				Friends: keys("me", "sa"), Neutrals: keys("ma", "ju"), Enemies: keys("su", "mo"),
				OwnSigns:     []int{2, 7},
				Exaltation:   &domain.SignDegree{Sign: 12, Degree: 27},
				Debilitation: &domain.SignDegree{Sign: 6, Degree: 27},
				Mulatrikona:  &domain.SignRange{Sign: 7, From: 0, To: 15},
			},
			domain.BodySaturn: {
				Key: domain.BodySaturn, Name: "Saturn",
				Friends: keys("me", "ve"), Neutrals: keys("ju"), Enemies: keys("su", "mo", "ma"),
				OwnSigns:     []int{10, 11},
				Exaltation:   &domain.SignDegree{Sign: 7, Degree: 20},
				Debilitation: &domain.SignDegree{Sign: 1, Degree: 20},
				Mulatrikona:  &domain.SignRange{Sign: 11, From: 0, To: 20},
			},
		},
		SignRulers: map[int]domain.BodyKey{
			1: "ma", 2: "ve", 3: "me", 4: "mo", 5: "su", 6: "me",
			7: "ve", 8: "ma", 9: "ju", 10: "sa", 11: "sa", 12: "ju",
		},
		Compound: domain.DefaultCompoundTable(),
	}
}

// lon returns the longitude of a degree within a 1-based sign.
func lon(sign int, degree float64) float64 {
	return float64(sign-1)*30 + degree
}
