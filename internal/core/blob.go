package core

// BlobRef names a blob: an edge in the operator graph. Blobs are pure names
// here; no storage is attached to them.
type BlobRef string

// String returns the blob name.
func (b BlobRef) String() string { return string(b) }

// GradientName returns the conventional name of this blob's gradient.
func (b BlobRef) GradientName() BlobRef { return b + "_grad" }

// BlobNames converts refs to plain strings for proto fields.
func BlobNames(refs []BlobRef) []string {
	if refs == nil {
		return nil
	}
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = string(r)
	}
	return out
}

// BlobRefs converts plain strings to refs.
func BlobRefs(names []string) []BlobRef {
	if names == nil {
		return nil
	}
	out := make([]BlobRef, len(names))
	for i, n := range names {
		out[i] = BlobRef(n)
	}
	return out
}
