package resolve

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/buildgraph/artifacts"
	"github.com/LegacyCodeHQ/buildgraph/resolution"
)

const (
	orderConsumerFirst = "consumer-first"
	orderCollection    = "collection"
)

// RequestFlags holds the command line flags that describe a selection request.
type RequestFlags struct {
	variant      string
	attributes   []string
	projectsOnly bool
	include      string
	requires     []string
	order        string
}

// AddTo registers the request flags on cmd.
func (f *RequestFlags) AddTo(cmd *cobra.Command) {
	f.order = orderConsumerFirst

	cmd.Flags().StringVar(&f.variant, "variant", "", "Select variants by name")
	cmd.Flags().StringSliceVarP(&f.attributes, "attribute", "a", nil, "Select variants by attribute (key=value, repeatable)")
	cmd.Flags().BoolVar(&f.projectsOnly, "projects-only", false, "Only select artifacts of project components")
	cmd.Flags().StringVar(&f.include, "include", "", "Only select artifacts of components whose display name matches the glob")
	cmd.Flags().StringSliceVar(&f.requires, "require", nil, "Only select modules satisfying group:module@constraint (repeatable)")
	cmd.Flags().StringVar(&f.order, "order", f.order, fmt.Sprintf("Selection order (%s, %s)", orderConsumerFirst, orderCollection))
}

// Request converts the flags to a resolution request.
func (f *RequestFlags) Request() (resolution.Request, error) {
	attributes, err := resolution.ParseAttributes(f.attributes)
	if err != nil {
		return resolution.Request{}, err
	}

	req := resolution.Request{
		Variant:      f.variant,
		Attributes:   attributes,
		ProjectsOnly: f.projectsOnly,
		Include:      f.include,
		Requires:     f.requires,
	}

	switch f.order {
	case "", orderConsumerFirst:
		req.Order = artifacts.ConsumerFirst
	case orderCollection:
		req.Order = artifacts.CollectionOrder
	default:
		return resolution.Request{}, fmt.Errorf("unknown order: %s (valid options: %s, %s)", f.order, orderConsumerFirst, orderCollection)
	}
	return req, nil
}
