package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS items (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	title           TEXT NOT NULL,
	status          TEXT NOT NULL DEFAULT 'todo'
	                CHECK(status IN ('note', 'todo', 'doing', 'waiting', 'done')),
	creation_date   TEXT NOT NULL,
	due_date        TEXT,
	completion_date TEXT,
	recur           TEXT,
	parent_id       INTEGER REFERENCES items(id)
);

CREATE INDEX IF NOT EXISTS idx_items_status ON items(status);
CREATE INDEX IF NOT EXISTS idx_items_parent_id ON items(parent_id);
CREATE INDEX IF NOT EXISTS idx_items_due_date ON items(due_date);
CREATE INDEX IF NOT EXISTS idx_items_creation_date ON items(creation_date);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE INDEX IF NOT EXISTS idx_items_completion_date ON items(completion_date);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
