package function

// Versioned decorates a descriptor resolved through catalog metadata with
// the dialect-specific information downstream fallback and packaging
// logic needs: the external dependency coordinates declared on the view,
// and the alias under which the view referred to the function (distinct
// from the implementing class name).
type Versioned struct {
	*Descriptor

	dependencies []string
	viewAlias    string
}

// NewVersioned wraps base with catalog metadata. The alias must be
// non-empty; a nil dependency list is normalized to an empty one.
func NewVersioned(base *Descriptor, dependencies []string, viewAlias string) *Versioned {
	if viewAlias == "" {
		panic("function: versioned operator requires a view alias")
	}
	deps := make([]string, len(dependencies))
	copy(deps, dependencies)
	return &Versioned{Descriptor: base, dependencies: deps, viewAlias: viewAlias}
}

// Dependencies returns the external dependency coordinates declared on
// the view, e.g. "ivy://com.acme:udfs:1.0".
func (v *Versioned) Dependencies() []string { return v.dependencies }

// ViewAlias returns the view-dependent function name.
func (v *Versioned) ViewAlias() string { return v.viewAlias }

// VersionedAlias returns the alias suffixed with the version encoded in
// the operator's shading prefix, e.g. "myFunc_1_0_0". The bare alias is
// returned when the class name is unshaded.
func (v *Versioned) VersionedAlias() string {
	return VersionedFunctionName(v.viewAlias, v.Name())
}
