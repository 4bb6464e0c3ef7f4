package refdata

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

//go:embed default.toml
var defaultTOML []byte

// Format is a reference file encoding.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf picks a format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: unsupported reference file %q (want .toml, .yaml or .yml)",
			domain.ErrInvalidReferenceData, filepath.Base(path))
	}
}

// document is the on-disk layout of the reference tables.
type document struct {
	SignRulers   []domain.BodyKey          `toml:"sign_rulers" yaml:"sign_rulers"`
	Bodies       []domain.BodyAttributes   `toml:"bodies" yaml:"bodies"`
	Schemes      []domain.DivisionalScheme `toml:"schemes" yaml:"schemes"`
	Nakshatras   []domain.Nakshatra        `toml:"nakshatras" yaml:"nakshatras"`
	Compound     domain.CompoundTable      `toml:"compound" yaml:"compound"`
	TimeUnits    domain.TimeUnitChain      `toml:"time_units" yaml:"time_units"`
	DashaSystems []domain.DashaSystem      `toml:"dasha_systems" yaml:"dasha_systems"`
}

// decode parses a document. Unknown fields are rejected so typos in an
// override do not silently fall back to defaults.
func decode(data []byte, format Format) (document, error) {
	var doc document
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return document{}, fmt.Errorf("%w: parse toml: %v", domain.ErrInvalidReferenceData, err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return document{}, fmt.Errorf("%w: parse yaml: %v", domain.ErrInvalidReferenceData, err)
		}
	default:
		return document{}, fmt.Errorf("%w: unknown format %q", domain.ErrInvalidReferenceData, format)
	}
	return doc, nil
}

// defaults parses the embedded tables.
func defaults() (document, error) {
	return decode(defaultTOML, FormatTOML)
}

// merge layers an override on a base document.
func merge(base, over document) document {
	out := base
	if len(over.SignRulers) > 0 {
		out.SignRulers = over.SignRulers
	}
	if len(over.Schemes) > 0 {
		out.Schemes = over.Schemes
	}
	if len(over.Nakshatras) > 0 {
		out.Nakshatras = over.Nakshatras
	}
	if len(over.Compound) > 0 {
		out.Compound = over.Compound
	}
	if len(over.TimeUnits) > 0 {
		out.TimeUnits = over.TimeUnits
	}

	out.Bodies = mergeByKey(base.Bodies, over.Bodies, func(b domain.BodyAttributes) string { return string(b.Key) })
	out.DashaSystems = mergeByKey(base.DashaSystems, over.DashaSystems, func(s domain.DashaSystem) string { return s.Key })
	return out
}

// mergeByKey replaces base entries that share a key with an override entry
// and appends the rest, keeping base order.
func mergeByKey[T any](base, over []T, key func(T) string) []T {
	if len(over) == 0 {
		return base
	}
	index := make(map[string]int, len(base))
	out := make([]T, len(base), len(base)+len(over))
	copy(out, base)
	for i, v := range out {
		index[key(v)] = i
	}
	for _, v := range over {
		if i, ok := index[key(v)]; ok {
			out[i] = v
			continue
		}
		index[key(v)] = len(out)
		out = append(out, v)
	}
	return out
}

// build converts a document into the lookup form used by the core.
func (d document) build() (*domain.ReferenceData, error) {
	if len(d.SignRulers) != domain.SignCount {
		return nil, fmt.Errorf("%w: sign_rulers lists %d signs, want %d",
			domain.ErrInvalidReferenceData, len(d.SignRulers), domain.SignCount)
	}
	ref := &domain.ReferenceData{
		Bodies:       make(map[domain.BodyKey]domain.BodyAttributes, len(d.Bodies)),
		SignRulers:   make(map[int]domain.BodyKey, domain.SignCount),
		Schemes:      d.Schemes,
		DashaSystems: make(map[string]domain.DashaSystem, len(d.DashaSystems)),
		Nakshatras:   d.Nakshatras,
		Compound:     d.Compound,
		TimeUnits:    d.TimeUnits,
	}
	for i, ruler := range d.SignRulers {
		ref.SignRulers[i+1] = ruler
	}
	for _, b := range d.Bodies {
		if _, dup := ref.Bodies[b.Key]; dup {
			return nil, fmt.Errorf("%w: body %s listed twice", domain.ErrInvalidReferenceData, b.Key)
		}
		ref.Bodies[b.Key] = b
	}
	for _, s := range d.DashaSystems {
		if _, dup := ref.DashaSystems[s.Key]; dup {
			return nil, fmt.Errorf("%w: dasha system %s listed twice", domain.ErrInvalidReferenceData, s.Key)
		}
		ref.DashaSystems[s.Key] = s
	}
	return ref, nil
}

// Default returns the embedded tables without validation.
func Default() (*domain.ReferenceData, error) {
	doc, err := defaults()
	if err != nil {
		return nil, err
	}
	return doc.build()
}
