// Package storage owns the durable state of the tracker: the foods and log
// CSV files and the goals JSON file, all living in one data directory.
package storage

// Provider is the interface for data-directory file operations.
type Provider interface {
	// Read returns the raw bytes of the file with the given name.
	Read(name string) ([]byte, error)
	// Write atomically writes content to the named file.
	Write(name string, content []byte) error
	// Exists reports whether the named file is present.
	Exists(name string) bool
	// Checksum returns the hex SHA-256 of the named file's current content,
	// or the empty string if the file cannot be read.
	Checksum(name string) string
}

// Store file names inside the data directory.
const (
	FoodsFile = "foods.csv"
	LogFile   = "log.csv"
	GoalsFile = "goals.json"
)
