package analyses

// Registry holds the analyses available to the workbench, keyed by id.
type Registry struct {
	analyses []Analysis
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends analyses, returning an error on duplicate IDs.
func (r *Registry) Register(analyses ...Analysis) error {
	for _, a := range analyses {
		if a == nil {
			continue
		}
		meta := a.Metadata()
		if meta.ID == "" {
			return ValidationError{Reason: "analysis id must not be empty"}
		}
		if _, ok := r.Get(meta.ID); ok {
			return DuplicateAnalysisError{ID: meta.ID}
		}
		r.analyses = append(r.analyses, a)
	}
	return nil
}

// Get returns the analysis registered under id.
func (r *Registry) Get(id string) (Analysis, bool) {
	for _, a := range r.analyses {
		if a.Metadata().ID == id {
			return a, true
		}
	}
	return nil, false
}

// List returns all registered analyses in registration order.
func (r *Registry) List() []Analysis {
	out := make([]Analysis, len(r.analyses))
	copy(out, r.analyses)
	return out
}
