package jdbc

import "fmt"

// operation is the closed set of descriptor kinds an identity can be
// derived from: read options or write options, nothing else.
type operation interface {
	connection() ConnectionOptions
	sqlText() string
}

func (o ReadOptions[T]) connection() ConnectionOptions { return o.Connection }
func (o ReadOptions[T]) sqlText() string               { return o.Query }

func (o WriteOptions[T]) connection() ConnectionOptions { return o.Connection }
func (o WriteOptions[T]) sqlText() string               { return o.Statement }

// fingerprint derives the deterministic identity string for a read or write
// descriptor, used for test-double matching and duplicate-registration
// detection. The raw password is embedded when present; the format is
// load-bearing for identity matching, so it must not change. See DESIGN.md
// for the credential-exposure caveat.
func fingerprint(op operation) string {
	conn := op.connection()
	if conn.Password != "" {
		return fmt.Sprintf("%s:%s@%s:%s", conn.Username, conn.Password, conn.URL, op.sqlText())
	}
	return fmt.Sprintf("%s@%s:%s", conn.Username, conn.URL, op.sqlText())
}
