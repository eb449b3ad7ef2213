package task

// ProjectRef is a polymorphic reference to the owning project as it appears
// in mutation payloads. Clients send one of several shapes: a direct numeric
// id, an opaque document identifier, an embedded relation object carrying
// either, or a connect-style descriptor pointing at one project. Resolution
// falls through these forms in order; an empty ref on update means "resolve
// from the task's persisted state".
type ProjectRef struct {
	ID         int64
	DocumentID string
	Connect    []ProjectRef
}

// IsZero reports whether the reference carries no information at all.
func (r ProjectRef) IsZero() bool {
	return r.ID == 0 && r.DocumentID == "" && len(r.Connect) == 0
}
