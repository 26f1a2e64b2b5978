package mysql

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"poe-calc/internal/config"
)

type Storage struct {
	db *sql.DB
}

func New(cfg config.Config) (*Storage, error) {
	const op = "storage.mysql.New"

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=%v",
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.ParseTime,
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := &Storage{db: db}

	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}

// ensureSchema создаёт таблицу-хранилище, если её ещё нет. Состояние
// калькулятора лежит двумя JSON-блобами: список пресетов и текущий пресет.
func (s *Storage) ensureSchema() error {
	const op = "storage.mysql.ensureSchema"

	stmt := `
		CREATE TABLE IF NOT EXISTS calc_state (
			slot    VARCHAR(64) NOT NULL PRIMARY KEY,
			payload LONGTEXT    NOT NULL
		)
	`

	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
