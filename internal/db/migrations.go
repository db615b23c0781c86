package db

const schemaSQL = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS sizing_decisions (
    id TEXT PRIMARY KEY,
    market_id TEXT NOT NULL,
    strategy TEXT NOT NULL,
    source TEXT NOT NULL DEFAULT '',
    win_probability REAL,
    confidence REAL,
    bet_amount TEXT,
    outcome_index INTEGER,
    info TEXT NOT NULL DEFAULT '',
    error TEXT NOT NULL DEFAULT '',
    decided_at TEXT NOT NULL DEFAULT (datetime('now')),
    resolved INTEGER NOT NULL DEFAULT 0,
    winning_index INTEGER,
    correct INTEGER,
    resolved_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_decisions_source ON sizing_decisions(source);
CREATE INDEX IF NOT EXISTS idx_decisions_strategy ON sizing_decisions(strategy);
CREATE INDEX IF NOT EXISTS idx_decisions_unresolved ON sizing_decisions(resolved) WHERE resolved = 0;
`
