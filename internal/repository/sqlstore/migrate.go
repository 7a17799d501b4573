package sqlstore

import "fmt"

// The schema is small and append-only, so it lives here as CREATE ... IF NOT
// EXISTS statements that are safe to run on every start.
//
// The favorite tables use the (user_id, entity_id) pair as their primary key.
// That constraint is what makes "at most one link per pair" hold under
// concurrent requests.

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		email     TEXT    NOT NULL UNIQUE,
		password  TEXT    NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS people (
		id     INTEGER PRIMARY KEY AUTOINCREMENT,
		name   TEXT NOT NULL,
		height TEXT NOT NULL DEFAULT '',
		weight TEXT NOT NULL DEFAULT '',
		gender TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS planets (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		name      TEXT NOT NULL,
		climate   TEXT NOT NULL DEFAULT '',
		terrain   TEXT NOT NULL DEFAULT '',
		resources TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS user_person_favorites (
		user_id   INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		person_id INTEGER NOT NULL REFERENCES people(id) ON DELETE CASCADE,
		PRIMARY KEY (user_id, person_id)
	)`,
	`CREATE TABLE IF NOT EXISTS user_planet_favorites (
		user_id   INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		planet_id INTEGER NOT NULL REFERENCES planets(id) ON DELETE CASCADE,
		PRIMARY KEY (user_id, planet_id)
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id        BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		email     VARCHAR(100) NOT NULL UNIQUE,
		password  TEXT         NOT NULL,
		is_active BOOLEAN      NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS people (
		id     BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		name   TEXT NOT NULL,
		height TEXT NOT NULL DEFAULT '',
		weight TEXT NOT NULL DEFAULT '',
		gender TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS planets (
		id        BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		name      TEXT NOT NULL,
		climate   TEXT NOT NULL DEFAULT '',
		terrain   TEXT NOT NULL DEFAULT '',
		resources TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS user_person_favorites (
		user_id   BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		person_id BIGINT NOT NULL REFERENCES people(id) ON DELETE CASCADE,
		PRIMARY KEY (user_id, person_id)
	)`,
	`CREATE TABLE IF NOT EXISTS user_planet_favorites (
		user_id   BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		planet_id BIGINT NOT NULL REFERENCES planets(id) ON DELETE CASCADE,
		PRIMARY KEY (user_id, planet_id)
	)`,
}

// migrate applies the schema for the DB's dialect, one statement per Exec.
func (db *DB) migrate() error {
	schema := sqliteSchema
	if db.dialect == Postgres {
		schema = postgresSchema
	}

	for i, stmt := range schema {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("applying schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
