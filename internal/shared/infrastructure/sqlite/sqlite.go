package sqlite

import (
	"DotWars/internal/shared/serverconfig"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"DotWars/internal/shared/logs"
)

// Open 打开或创建本地战报库，WAL 模式，忙等 5s。
func Open(cfg serverconfig.SQLiteConfig) (*sqlx.DB, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is empty")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}
	conn, err := sqlx.Open("sqlite", DSN(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	logs.Info("open sqlite success", zap.String("path", cfg.Path))
	return conn, nil
}

func DSN(path string) string {
	return path + "?_journal_mode=WAL&_busy_timeout=5000"
}
