package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"research-saver/internal/model"
)

// Entry 一次保存尝试的记录
type Entry struct {
	RequestID string        `json:"request_id"`
	Directory string        `json:"directory"` // basename之后的目录
	FileName  string        `json:"file_name"` // basename之后的文件名
	Path      string        `json:"path"`
	Bytes     int           `json:"bytes"`
	Outcome   model.Outcome `json:"outcome"`
	Error     string        `json:"error,omitempty"`
	SavedAt   time.Time     `json:"saved_at"`
}

// Journal 保存记录接口，只追加不读取
type Journal interface {
	Record(ctx context.Context, entry Entry) error
}

type discard struct{}

func (discard) Record(context.Context, Entry) error { return nil }

// Discard 丢弃所有记录（未配置数据库时使用）
var Discard Journal = discard{}

const schema = `
CREATE TABLE IF NOT EXISTS research_saves (
	id         BIGSERIAL PRIMARY KEY,
	request_id TEXT NOT NULL DEFAULT '',
	directory  TEXT NOT NULL,
	file_name  TEXT NOT NULL,
	path       TEXT NOT NULL,
	bytes      INTEGER NOT NULL,
	outcome    TEXT NOT NULL,
	error      TEXT NOT NULL DEFAULT '',
	saved_at   TIMESTAMPTZ NOT NULL
)`

// PostgresJournal PostgreSQL保存记录
type PostgresJournal struct {
	db *sql.DB
}

// NewPostgresJournal 连接数据库
func NewPostgresJournal(databaseURL string) (*PostgresJournal, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 测试连接
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresJournal{db: db}, nil
}

// EnsureSchema 建表（已存在则跳过）
func (j *PostgresJournal) EnsureSchema(ctx context.Context) error {
	if _, err := j.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create research_saves table: %w", err)
	}
	return nil
}

// Record 写入一条记录
func (j *PostgresJournal) Record(ctx context.Context, entry Entry) error {
	if entry.SavedAt.IsZero() {
		entry.SavedAt = time.Now()
	}

	query := `
	INSERT INTO research_saves (request_id, directory, file_name, path, bytes, outcome, error, saved_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := j.db.ExecContext(ctx, query,
		entry.RequestID,
		entry.Directory,
		entry.FileName,
		entry.Path,
		entry.Bytes,
		string(entry.Outcome),
		entry.Error,
		entry.SavedAt,
	)
	return err
}

// Close 关闭数据库连接
func (j *PostgresJournal) Close() error {
	return j.db.Close()
}
