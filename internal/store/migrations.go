package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
//
// Delete blast radius lives here, not in application code: a user takes
// its projects, tags, and elements with it; a project releases its
// elements (SET NULL); everything below an element cascades.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id                TEXT PRIMARY KEY,
	email             TEXT NOT NULL UNIQUE,
	password_hash     TEXT NOT NULL,
	name              TEXT NOT NULL DEFAULT '',
	last_name         TEXT NOT NULL DEFAULT '',
	phone_number      TEXT,
	profile_image_url TEXT,
	status            TEXT NOT NULL DEFAULT 'active'
		CHECK(status IN ('active', 'inactive', 'deleted')),
	created_at        DATETIME NOT NULL,
	updated_at        DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS projects (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name       TEXT NOT NULL,
	color      TEXT NOT NULL DEFAULT '',
	icon       TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS tags (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name       TEXT NOT NULL,
	color      TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS elements (
	id            TEXT PRIMARY KEY,
	user_id       TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	project_id    TEXT REFERENCES projects(id) ON DELETE SET NULL,
	title         TEXT NOT NULL,
	assigned_date DATETIME NOT NULL,
	status        TEXT NOT NULL DEFAULT 'active'
		CHECK(status IN ('active', 'archived')),
	created_at    DATETIME NOT NULL,
	updated_at    DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS element_tags (
	element_id TEXT NOT NULL REFERENCES elements(id) ON DELETE CASCADE,
	tag_id     TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
	PRIMARY KEY (element_id, tag_id)
);

CREATE TABLE IF NOT EXISTS todo_lists (
	id         TEXT PRIMARY KEY,
	element_id TEXT NOT NULL REFERENCES elements(id) ON DELETE CASCADE,
	sort_order INTEGER NOT NULL DEFAULT 0,
	kind       TEXT NOT NULL DEFAULT 'list' CHECK(kind IN ('note', 'list')),
	content    TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id          TEXT PRIMARY KEY,
	list_id     TEXT NOT NULL REFERENCES todo_lists(id) ON DELETE CASCADE,
	description TEXT NOT NULL,
	completed   INTEGER NOT NULL DEFAULT 0 CHECK(completed IN (0, 1)),
	created_at  DATETIME NOT NULL,
	updated_at  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS reminders (
	id         TEXT PRIMARY KEY,
	task_id    TEXT NOT NULL UNIQUE REFERENCES tasks(id) ON DELETE CASCADE,
	date       TEXT NOT NULL,
	notified   INTEGER NOT NULL DEFAULT 0 CHECK(notified IN (0, 1)),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_projects_user_id ON projects(user_id);
CREATE INDEX IF NOT EXISTS idx_tags_user_id ON tags(user_id);
CREATE INDEX IF NOT EXISTS idx_elements_user_id ON elements(user_id);
CREATE INDEX IF NOT EXISTS idx_elements_project_id ON elements(project_id);
CREATE INDEX IF NOT EXISTS idx_elements_assigned_date ON elements(assigned_date);
CREATE INDEX IF NOT EXISTS idx_todo_lists_element_id ON todo_lists(element_id);
CREATE INDEX IF NOT EXISTS idx_tasks_list_id ON tasks(list_id);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS notes (
	id         TEXT PRIMARY KEY,
	element_id TEXT NOT NULL REFERENCES elements(id) ON DELETE CASCADE,
	content    TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_element_id ON notes(element_id);

CREATE INDEX IF NOT EXISTS idx_reminders_notified_date
	ON reminders(notified, date);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
