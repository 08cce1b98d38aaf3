package archive

const schema = `
CREATE TABLE IF NOT EXISTS score_updates (
	id               TEXT PRIMARY KEY,
	final_score      REAL NOT NULL,
	boost_percentage REAL NOT NULL,
	match_count      INTEGER NOT NULL,
	updated_at       TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_score_updates_final_score
	ON score_updates(final_score DESC);
`
