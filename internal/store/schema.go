package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
    id                    INTEGER PRIMARY KEY AUTOINCREMENT,
    captured_at           TEXT NOT NULL,
    source                TEXT NOT NULL,
    total_messages        INTEGER NOT NULL,
    avg_response_minutes  REAL, -- NULL stores NaN
    resolved_chats        INTEGER NOT NULL,
    active_admins         INTEGER NOT NULL,
    customer_satisfaction REAL,
    recorded_at           TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_captured ON snapshots(captured_at);
`
