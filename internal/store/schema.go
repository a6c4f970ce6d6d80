package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS goals (
    goal_id              TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    goal_type            TEXT NOT NULL DEFAULT 'custom',
    priority             TEXT NOT NULL DEFAULT 'medium',
    target_amount        REAL NOT NULL DEFAULT 0,
    current_amount       REAL NOT NULL DEFAULT 0,
    target_date          TEXT,
    monthly_contribution REAL NOT NULL DEFAULT 0,
    created_date         TEXT NOT NULL,
    last_updated         TEXT NOT NULL,
    description          TEXT
);

CREATE TABLE IF NOT EXISTS contributions (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    goal_id              TEXT NOT NULL REFERENCES goals(goal_id) ON DELETE CASCADE,
    amount               REAL NOT NULL,
    made_at              TEXT NOT NULL,
    note                 TEXT
);

CREATE INDEX IF NOT EXISTS idx_contributions_goal ON contributions(goal_id, made_at);
`
