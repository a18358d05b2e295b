package artifacts

import (
	"maps"
	"slices"

	"github.com/LegacyCodeHQ/buildgraph/component"
)

// ResolvedVariant is one selectable realization of an artifact set.
type ResolvedVariant interface {
	Name() string
	Attributes() map[string]string
	Artifacts() ResolvedArtifactSet
}

// ArtifactSet is the bundle of candidate variants attached to one target of a graph edge.
// Artifact sets are identified by ID: the same set may be reached through several edges.
type ArtifactSet interface {
	ID() int64

	// NodeID is the id of the node that owns these artifacts. A single node may own
	// several artifact sets, when an incoming dependency lists artifacts or exclusions.
	NodeID() int64

	ComponentID() component.Identifier

	// Snapshot computes the variants of this set and returns a set with the same
	// identity that no longer refers to graph traversal state.
	Snapshot() ArtifactSet

	Variants() []ResolvedVariant
}

// Variant is the default ResolvedVariant.
type Variant struct {
	name       string
	attributes map[string]string
	artifacts  ResolvedArtifactSet
}

// NewVariant creates a variant. A nil artifact set is treated as Empty.
func NewVariant(name string, attributes map[string]string, artifacts ResolvedArtifactSet) *Variant {
	if artifacts == nil {
		artifacts = Empty
	}
	return &Variant{
		name:       name,
		attributes: maps.Clone(attributes),
		artifacts:  artifacts,
	}
}

func (v *Variant) Name() string {
	return v.name
}

func (v *Variant) Attributes() map[string]string {
	return maps.Clone(v.attributes)
}

func (v *Variant) Artifacts() ResolvedArtifactSet {
	return v.artifacts
}

func (v *Variant) String() string {
	return v.name
}

// DefaultArtifactSet computes its variants on demand until it is snapshotted.
type DefaultArtifactSet struct {
	id          int64
	nodeID      int64
	componentID component.Identifier
	resolve     func() []ResolvedVariant
	variants    []ResolvedVariant
	frozen      bool
}

// NewArtifactSet creates an artifact set whose variants are produced by resolve.
func NewArtifactSet(id, nodeID int64, owner component.Identifier, resolve func() []ResolvedVariant) *DefaultArtifactSet {
	return &DefaultArtifactSet{
		id:          id,
		nodeID:      nodeID,
		componentID: owner,
		resolve:     resolve,
	}
}

// FixedArtifactSet creates an already snapshotted artifact set with the given variants.
func FixedArtifactSet(id, nodeID int64, owner component.Identifier, variants ...ResolvedVariant) *DefaultArtifactSet {
	return &DefaultArtifactSet{
		id:          id,
		nodeID:      nodeID,
		componentID: owner,
		variants:    variants,
		frozen:      true,
	}
}

func (s *DefaultArtifactSet) ID() int64 {
	return s.id
}

func (s *DefaultArtifactSet) NodeID() int64 {
	return s.nodeID
}

func (s *DefaultArtifactSet) ComponentID() component.Identifier {
	return s.componentID
}

func (s *DefaultArtifactSet) Snapshot() ArtifactSet {
	if s.frozen {
		return s
	}
	return FixedArtifactSet(s.id, s.nodeID, s.componentID, s.computeVariants()...)
}

func (s *DefaultArtifactSet) Variants() []ResolvedVariant {
	if s.frozen {
		return slices.Clone(s.variants)
	}
	return s.computeVariants()
}

func (s *DefaultArtifactSet) computeVariants() []ResolvedVariant {
	if s.resolve == nil {
		return nil
	}
	return s.resolve()
}
