// ABOUTME: SQLite database schema for the course catalog and chunk storage
// ABOUTME: Creates all tables and indexes on first open
package store

// Schema contains all SQL statements for database initialization
const Schema = `
-- Courses table (one row per ingested course, id is the canonical title)
CREATE TABLE IF NOT EXISTS courses (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    instructor TEXT,
    link TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Lessons table (ordered lessons within a course)
CREATE TABLE IF NOT EXISTS lessons (
    course_id TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
    number INTEGER NOT NULL,
    title TEXT NOT NULL,
    link TEXT,
    PRIMARY KEY (course_id, number)
);

-- Chunks table (embedded text spans, seq assigned per course in document order)
CREATE TABLE IF NOT EXISTS chunks (
    course_id TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
    seq INTEGER NOT NULL,
    lesson_number INTEGER NOT NULL DEFAULT 0,
    content TEXT NOT NULL,
    vector BLOB NOT NULL,
    PRIMARY KEY (course_id, seq)
);

-- Indexes for efficient querying
CREATE INDEX IF NOT EXISTS idx_lessons_course ON lessons(course_id);
CREATE INDEX IF NOT EXISTS idx_chunks_course ON chunks(course_id);
CREATE INDEX IF NOT EXISTS idx_chunks_lesson ON chunks(course_id, lesson_number);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
