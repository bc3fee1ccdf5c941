package jsoncons

// DiffSession bundles a forward and reverse patch between two documents,
// adapted from the teacher's Prepare/Apply/Revert workflow. Unlike the
// teacher's delta-capture approach (which replays each operation against a
// working copy to resolve "-" paths and record before/after values), the
// forward and reverse patches here are each independently computed by the
// Diff Engine, so DiffSession.Revert does not require DiffSession.Apply to
// have run first against the same document instance.
type DiffSession struct {
	Forward Patch
	Reverse Patch
}

// Prepare computes a DiffSession transforming source into target (Forward)
// and target into source (Reverse).
func Prepare(source, target Document) (DiffSession, error) {
	forward, err := New(source, target)
	if err != nil {
		return DiffSession{}, err
	}
	reverse, err := New(target, source)
	if err != nil {
		return DiffSession{}, err
	}
	return DiffSession{Forward: forward, Reverse: reverse}, nil
}

// Apply reproduces the target state by applying s's forward patch to doc.
func (s DiffSession) Apply(doc Document) (Document, error) {
	return Apply(doc, s.Forward)
}

// Revert undoes the effect by applying s's reverse patch to doc.
func (s DiffSession) Revert(doc Document) (Document, error) {
	return Apply(doc, s.Reverse)
}
