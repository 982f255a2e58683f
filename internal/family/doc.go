// Package family keeps the family tree a player builds from screenshots:
// worlds contain houses, houses contain Sims, and Sims have relationships and
// diary entries.
//
// Entities are stored as JSON documents in a DocumentStore, one collection
// per kind. MemoryStore serves a single session. PostgresStore keeps
// everything in one JSONB table so new fields need no migration, and
// SQLiteStore does the same in a local file.
//
// Tree validates entities with struct tags before storing them and keeps the
// references consistent: a house needs an existing world, a Sim an existing
// house, and deleting a Sim also deletes its relationships and diary.
package family
