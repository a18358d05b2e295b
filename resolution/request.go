package resolution

import (
	"fmt"
	"sort"
	"strings"

	"github.com/LegacyCodeHQ/buildgraph/artifacts"
	"github.com/LegacyCodeHQ/buildgraph/component"
)

// Request describes one view of a resolved graph: which components take part and how
// one variant is chosen per artifact set.
type Request struct {
	// Variant chooses variants by name. It takes precedence over Attributes.
	Variant    string
	Attributes map[string]string

	ProjectsOnly bool
	// Include keeps only components whose display name matches the glob.
	Include string
	// Requires holds group:module@constraint version requirements.
	Requires []string

	Order artifacts.IterationOrder
}

// Key returns a stable name for the request, used to cache its selection.
func (r Request) Key() string {
	var parts []string
	if r.Variant != "" {
		parts = append(parts, "variant="+r.Variant)
	}
	if len(r.Attributes) > 0 {
		keys := make([]string, 0, len(r.Attributes))
		for k := range r.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			parts = append(parts, "attr."+k+"="+r.Attributes[k])
		}
	}
	if r.ProjectsOnly {
		parts = append(parts, "projects")
	}
	if r.Include != "" {
		parts = append(parts, "include="+r.Include)
	}
	if len(r.Requires) > 0 {
		requires := append([]string(nil), r.Requires...)
		sort.Strings(requires)
		parts = append(parts, "requires="+strings.Join(requires, ","))
	}
	if r.Order == artifacts.CollectionOrder {
		parts = append(parts, "order=collection")
	}
	if len(parts) == 0 {
		return "default"
	}
	return strings.Join(parts, ";")
}

// Filter builds the component filter of the request.
func (r Request) Filter() (component.Filter, error) {
	var filters []component.Filter
	if r.ProjectsOnly {
		filters = append(filters, component.Projects)
	}
	if r.Include != "" {
		f, err := component.MatchDisplayName(r.Include)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	for _, requirement := range r.Requires {
		f, err := component.VersionFilter(requirement)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return component.And(filters...), nil
}

// Selector builds the variant selection policy of the request.
func (r Request) Selector() artifacts.VariantSelector {
	switch {
	case r.Variant != "":
		return artifacts.NamedVariant(r.Variant)
	case len(r.Attributes) > 0:
		return artifacts.MatchAttributes(r.Attributes)
	default:
		return artifacts.FirstVariant
	}
}

// ParseAttributes parses key=value pairs.
func ParseAttributes(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	attributes := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid attribute %q, want key=value", pair)
		}
		attributes[key] = strings.TrimSpace(value)
	}
	return attributes, nil
}
