package storage

const schema = `
-- Folders organize decks hierarchically; parent_id is NULL at the root.
CREATE TABLE IF NOT EXISTS folders (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    parent_id INTEGER,
    created_at DATETIME NOT NULL,

    FOREIGN KEY(parent_id) REFERENCES folders(id) ON DELETE CASCADE,
    UNIQUE(name, parent_id)
);

CREATE TABLE IF NOT EXISTS decks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    folder_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    source_filename TEXT,
    created_at DATETIME NOT NULL,

    FOREIGN KEY(folder_id) REFERENCES folders(id) ON DELETE CASCADE
);

-- Cards carry their SM-2 scheduling state inline.
CREATE TABLE IF NOT EXISTS cards (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    deck_id INTEGER NOT NULL,
    front TEXT NOT NULL,
    back TEXT NOT NULL DEFAULT '',
    article TEXT NOT NULL DEFAULT '',
    word_type TEXT NOT NULL DEFAULT '',
    example TEXT NOT NULL DEFAULT '',
    hash TEXT NOT NULL,
    position INTEGER NOT NULL,
    confidence TEXT NOT NULL DEFAULT 'structured',
    interval_days INTEGER NOT NULL DEFAULT 0,
    repetitions INTEGER NOT NULL DEFAULT 0,
    ease REAL NOT NULL DEFAULT 2.5,
    due_date DATETIME NOT NULL,
    last_reviewed DATETIME,

    FOREIGN KEY(deck_id) REFERENCES decks(id) ON DELETE CASCADE,
    UNIQUE(deck_id, hash)
);

CREATE TABLE IF NOT EXISTS review_logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    card_id INTEGER NOT NULL,
    grade INTEGER NOT NULL,
    ease_after REAL NOT NULL,
    interval_after INTEGER NOT NULL,
    reviewed_at DATETIME NOT NULL,

    FOREIGN KEY(card_id) REFERENCES cards(id) ON DELETE CASCADE
);

-- Document sources feeding a deck: a local directory or a git repository.
CREATE TABLE IF NOT EXISTS sources (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL UNIQUE,
    type TEXT NOT NULL DEFAULT 'local',
    deck_id INTEGER NOT NULL,
    last_scanned DATETIME,

    FOREIGN KEY(deck_id) REFERENCES decks(id) ON DELETE CASCADE
);
`
