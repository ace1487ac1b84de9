package postgres

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id           TEXT PRIMARY KEY,
	title        TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	requirements TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS candidates (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	phone         TEXT NOT NULL,
	current_ctc   TEXT NOT NULL DEFAULT '',
	expected_ctc  TEXT NOT NULL DEFAULT '',
	notice_period TEXT NOT NULL DEFAULT '',
	experience    TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS appointments (
	id           TEXT PRIMARY KEY,
	job_id       TEXT NOT NULL,
	candidate_id TEXT NOT NULL,
	date_time    TIMESTAMPTZ NOT NULL,
	status       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS appointments_job_id_idx ON appointments (job_id);
CREATE INDEX IF NOT EXISTS appointments_candidate_id_idx ON appointments (candidate_id);
`
