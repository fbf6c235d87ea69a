package index

// DocumentIndex defines the interface for document indexing operations.
// Consumers should depend on this interface rather than the concrete *DB
// type to facilitate testing with mocks.
type DocumentIndex interface {
	UpsertDocument(d DocumentRow, items []ItemRow) error
	DeleteDocument(path string) error
	AllChecksums() (map[string]string, error)
	Recent(owner, kind string, limit int) ([]DocumentRow, error)
	TaskSummary(owner string) (map[string]int, error)
	TimeTotal(owner string) (int64, error)
	Close() error
}

// Verify *DB satisfies DocumentIndex at compile time.
var _ DocumentIndex = (*DB)(nil)
