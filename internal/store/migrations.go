package store

// migration is a single schema change applied in order by version.
type migration struct {
	version int
	sql     string
}

// migrations holds all schema migrations. Append only; never edit an
// applied version.
var migrations = []migration{
	{
		version: 1,
		sql: `
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			);

			CREATE TABLE IF NOT EXISTS slots (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL,
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			);

			INSERT INTO schema_version (version) VALUES (1);
		`,
	},
}
