// Package dataglide provides declarative database connectors for pipeline
// engines. A connector is built from an immutable descriptor (connection
// details, SQL text, and user-supplied row-mapping or parameter-binding
// callbacks) and runs in exactly one mode: source (read) or sink (write).
// Connectors never execute SQL themselves; they assemble transform specs
// and hand them to an execution runner.
//
// The main packages are:
//
//   - pkg/connector/jdbc: read/write descriptors, the source and sink
//     connectors, and the deterministic identity fingerprint used for
//     test-double substitution
//   - pkg/connector/registry: fake sources and sinks registered by
//     connector identity for pipeline tests
//   - pkg/engine: the engine surface connectors are built against (rows,
//     parameter binding, transform specs, record collections, coders)
//   - pkg/engine/direct: the in-process reference runner over database/sql
//   - cmd/dataglide: a CLI that runs database-to-database jobs from a
//     declarative YAML config
//
// A minimal read looks like:
//
//	source, err := jdbc.Read(jdbc.ReadOptions[User]{
//	    Connection: jdbc.ConnectionOptions{
//	        DriverName: "pgx",
//	        URL:        "postgres://host/app",
//	        Username:   "svc",
//	    },
//	    Query: "SELECT id, name FROM users",
//	    RowMapper: func(row engine.Row) (User, error) {
//	        var u User
//	        err := row.Scan(&u.ID, &u.Name)
//	        return u, err
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//
//	ec := engine.NewContext(direct.NewRunner())
//	users, err := source.Read(ctx, ec)
package dataglide
