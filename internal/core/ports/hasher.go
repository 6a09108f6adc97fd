package ports

// Hasher computes content digests.
type Hasher interface {
	// HashBytes returns the hex digest of data.
	HashBytes(data []byte) string
}
