package memory

// Top-level namespace conventions for the notes key hierarchy.
const (
	NamespaceNotes = "notes"
	NamespaceHosts = "hosts"
)

// Entry is a key-value pair in the notes namespace. Keys are /-separated
// hierarchical paths and values are raw bytes.
type Entry struct {
	Key   string
	Value []byte
}
