package component

import (
	"fmt"
	"path"
	"strings"
)

// Filter decides whether the artifacts of a component take part in a selection.
type Filter func(id Identifier) bool

// All accepts every component.
func All(Identifier) bool {
	return true
}

// Projects accepts project components only.
func Projects(id Identifier) bool {
	_, ok := id.(ProjectComponentIdentifier)
	return ok
}

// Modules accepts external module components only.
func Modules(id Identifier) bool {
	_, ok := id.(ModuleComponentIdentifier)
	return ok
}

// Not inverts f.
func Not(f Filter) Filter {
	return func(id Identifier) bool {
		return !f(id)
	}
}

// And accepts a component only when every filter accepts it. No filters accepts everything.
func And(filters ...Filter) Filter {
	return func(id Identifier) bool {
		for _, f := range filters {
			if f != nil && !f(id) {
				return false
			}
		}
		return true
	}
}

// MatchDisplayName accepts components whose display name matches the glob pattern.
func MatchDisplayName(pattern string) (Filter, error) {
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("component: invalid pattern %q: %w", pattern, err)
	}
	return func(id Identifier) bool {
		ok, _ := path.Match(pattern, id.DisplayName())
		return ok
	}, nil
}

// VersionFilter parses "group:module@constraint" and rejects module components with those
// coordinates whose version does not satisfy the constraint. Components with other
// coordinates, and project components, pass.
func VersionFilter(spec string) (Filter, error) {
	coordinates, rawConstraint, ok := strings.Cut(strings.TrimSpace(spec), "@")
	if !ok || coordinates == "" || rawConstraint == "" {
		return nil, fmt.Errorf("component: expected group:module@constraint, got %q", spec)
	}
	if strings.Count(coordinates, ":") != 1 {
		return nil, fmt.Errorf("component: expected group:module coordinates, got %q", coordinates)
	}

	constraint, err := ParseConstraint(rawConstraint)
	if err != nil {
		return nil, err
	}

	return func(id Identifier) bool {
		m, ok := id.(ModuleComponentIdentifier)
		if !ok || m.Coordinates() != coordinates {
			return true
		}
		v, err := ParseVersion(m.Version)
		if err != nil {
			return false
		}
		return Satisfies(v, constraint)
	}, nil
}
