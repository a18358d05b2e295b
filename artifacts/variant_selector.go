package artifacts

import (
	"fmt"
	"sort"
	"strings"
)

// VariantSelector chooses at most one variant from the candidates of an artifact set.
// Returning a nil variant and nil error means that nothing was chosen.
type VariantSelector func(variants []ResolvedVariant) (ResolvedVariant, error)

// AmbiguousVariantError reports that more than one variant matched equally well.
type AmbiguousVariantError struct {
	Requested  map[string]string
	Candidates []string
}

func (e *AmbiguousVariantError) Error() string {
	return fmt.Sprintf("cannot choose between variants %s matching %s",
		strings.Join(e.Candidates, ", "), formatAttributes(e.Requested))
}

// FirstVariant chooses the first candidate.
func FirstVariant(variants []ResolvedVariant) (ResolvedVariant, error) {
	if len(variants) == 0 {
		return nil, nil
	}
	return variants[0], nil
}

// NoVariant never chooses anything.
func NoVariant([]ResolvedVariant) (ResolvedVariant, error) {
	return nil, nil
}

// NamedVariant chooses the first candidate called name.
func NamedVariant(name string) VariantSelector {
	return func(variants []ResolvedVariant) (ResolvedVariant, error) {
		for _, v := range variants {
			if v.Name() == name {
				return v, nil
			}
		}
		return nil, nil
	}
}

// MatchAttributes chooses the variant that best matches requested.
//
// A variant is compatible when every requested attribute is either missing from it or
// has the requested value. Among compatible variants, those with the most exactly
// matching attributes win. Several winners yield an AmbiguousVariantError; no compatible
// variant means nothing is chosen.
func MatchAttributes(requested map[string]string) VariantSelector {
	return func(variants []ResolvedVariant) (ResolvedVariant, error) {
		var best []ResolvedVariant
		bestScore := -1
		for _, v := range variants {
			score, ok := matchScore(requested, v.Attributes())
			if !ok {
				continue
			}
			switch {
			case score > bestScore:
				best = []ResolvedVariant{v}
				bestScore = score
			case score == bestScore:
				best = append(best, v)
			}
		}

		switch len(best) {
		case 0:
			return nil, nil
		case 1:
			return best[0], nil
		}

		names := make([]string, 0, len(best))
		for _, v := range best {
			names = append(names, v.Name())
		}
		return nil, &AmbiguousVariantError{Requested: requested, Candidates: names}
	}
}

func matchScore(requested, attributes map[string]string) (int, bool) {
	score := 0
	for key, want := range requested {
		got, ok := attributes[key]
		if !ok {
			continue
		}
		if got != want {
			return 0, false
		}
		score++
	}
	return score, true
}

func formatAttributes(attributes map[string]string) string {
	keys := make([]string, 0, len(attributes))
	for k := range attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+attributes[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
