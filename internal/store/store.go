package store

// Store persists one named state document as a whole. The quota manager and
// the result cache each own a Store; both treat a missing or unreadable
// document as absent rather than fatal, because their state is always
// re-creatable from empty.
type Store interface {
	// Load unmarshals the current document into v. It returns false when no
	// usable document exists; that is not an error.
	Load(v any) (bool, error)

	// Save marshals v and persists it, replacing any previous document.
	Save(v any) error
}
