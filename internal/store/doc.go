// Package store persists categories, workflow stages, transitions, and
// articles in SQLite.
//
// The Store owns the database connection, schema creation, and busy-retry
// handling. A fresh database is seeded with the ROOT category (id 1) and the
// Uncategorised article category (id 2) so the fallback category always
// resolves. Schema changes bump schemaVersion in schema.go; users delete the
// database to adopt the new schema.
//
// Lookups by id return (nil, nil) when the row does not exist; callers decide
// whether absence is an error.
package store
