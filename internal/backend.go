package internal

// StorageBackend provides uniform key-based primitives over a storage
// medium. Keys are slash-separated logical paths; the backend is agnostic
// to their semantics. Key construction belongs to SessionStore exclusively.
type StorageBackend interface {
	// Put writes data under key, creating any missing hierarchy
	Put(key string, data []byte) error

	// Get reads the content stored under key
	Get(key string) ([]byte, error)

	// List returns every key sharing the prefix
	List(prefix string) ([]string, error)

	// ListDirs returns the immediate child prefixes under prefix, each
	// ending in "/". Over a flat key space this is a delimiter-bounded
	// common-prefix scan; over a filesystem it reads subdirectories.
	ListDirs(prefix string) ([]string, error)

	// Download copies the object under key to a local file
	Download(key, dest string) error

	// Identity returns a stable descriptor of the backing store, used to
	// key the local session index cache
	Identity() string
}
