// Package database provides persistent storage for harvested listings.
//
// Two engines implement the same Store interface:
//   - ListingDB: an embedded SQLite file, the default store
//   - PostgresDB: a shared PostgreSQL database for multi-host collections
//
// Design decision: We use SQLite (via modernc.org/sqlite) as the default
// engine because:
// 1. No external dependencies - the store is a single file under the data dir
// 2. CGO-free implementation allows easy cross-compilation
// 3. A scrape run writes a few hundred rows, well within SQLite's comfort zone
// 4. WAL mode keeps the file readable for exports while a run is writing
//
// PostgreSQL is available for deployments where several machines feed one
// collection, at the cost of running a server.
package database
