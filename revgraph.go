// Package revgraph is the public facade over the revision graph engine:
// it re-exports the core types and constructors from internal/revgraph
// so library consumers (anything embedding this engine rather than
// shelling out to revctl) have a single stable import.
package revgraph

import "github.com/revgraph-dev/revgraph/internal/revgraph"

type (
	// Map is the frozen, built revision graph.
	Map = revgraph.Map
	// Revision is one node of a built Map.
	Revision = revgraph.Revision
	// RevisionInput is the constructor contract a Provider yields.
	RevisionInput = revgraph.RevisionInput
	// Provider is the engine's sole collaborator contract.
	Provider = revgraph.Provider
	// Resolver maps parsed identifiers to concrete revisions.
	Resolver = revgraph.Resolver
	// ParsedIdentifier is the result of parsing one identifier string.
	ParsedIdentifier = revgraph.ParsedIdentifier
	// RelativeOffset is a parsed relative-form identifier.
	RelativeOffset = revgraph.RelativeOffset
	// AbsoluteIdentifier is a parsed absolute-form identifier.
	AbsoluteIdentifier = revgraph.AbsoluteIdentifier
	// PlanOptions controls the inclusive/implicit-base planner flags.
	PlanOptions = revgraph.PlanOptions
	// AddRevisionOptions controls AddRevision's duplicate-id handling.
	AddRevisionOptions = revgraph.AddRevisionOptions
	// Error is the engine's single structural error type.
	Error = revgraph.Error
	// ErrorKind discriminates Error's structural failure modes.
	ErrorKind = revgraph.ErrorKind
)

// Kind constants, re-exported for callers that only import the facade.
const (
	KindRevisionError           = revgraph.KindRevisionError
	KindResolutionError         = revgraph.KindResolutionError
	KindMultipleHeads           = revgraph.KindMultipleHeads
	KindRangeNotAncestor        = revgraph.KindRangeNotAncestor
	KindCycleDetected           = revgraph.KindCycleDetected
	KindDependencyCycleDetected = revgraph.KindDependencyCycleDetected
	KindLoopDetected            = revgraph.KindLoopDetected
	KindDependencyLoopDetected  = revgraph.KindDependencyLoopDetected
)

// Build runs the provider once and constructs the frozen map.
func Build(provider Provider) (*Map, error) { return revgraph.Build(provider) }

// BuildFromInputs runs the single-pass construction algorithm directly
// over an already-collected batch of revisions.
func BuildFromInputs(inputs []RevisionInput) (*Map, error) {
	return revgraph.BuildFromInputs(inputs)
}

// NewResolver builds a Resolver bound to m.
func NewResolver(m *Map) *Resolver { return revgraph.NewResolver(m) }

// ParseIdentifier parses a single identifier string.
func ParseIdentifier(s string) (*ParsedIdentifier, error) { return revgraph.ParseIdentifier(s) }

// ParseIdentifiers parses nil, a single identifier string, or an
// ordered collection of identifier strings.
func ParseIdentifiers(raw any) ([]*ParsedIdentifier, error) { return revgraph.ParseIdentifiers(raw) }

// ResolveRelative walks a relative offset from an anchor revision id.
func ResolveRelative(m *Map, anchor string, offset int) (*Revision, error) {
	return revgraph.ResolveRelative(m, anchor, offset)
}

// Upgrade computes the ordered sequence of revision ids to apply
// between lower and upper.
func Upgrade(m *Map, lower, upper *ParsedIdentifier, lowerStamps []string, opts PlanOptions) ([]string, error) {
	return revgraph.Upgrade(m, lower, upper, lowerStamps, opts)
}

// Downgrade computes the ordered sequence of revision ids to revert
// between upper and target.
func Downgrade(m *Map, upper, target *ParsedIdentifier, upperStamps []string, opts PlanOptions) ([]string, error) {
	return revgraph.Downgrade(m, upper, target, upperStamps, opts)
}

// AddRevision inserts a single revision into an already-built map.
func AddRevision(m *Map, in RevisionInput, opts AddRevisionOptions) error {
	return revgraph.AddRevision(m, in, opts)
}
