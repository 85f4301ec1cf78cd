// Package storage реализует хранилище записей списка ожидания
// на основе PostgreSQL. Соединение создаётся лениво при первом обращении
// и переиспользуется всеми запросами процесса.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки уровня хранилища. Обработчик переводит их в HTTP-статусы,
// все остальные ошибки считаются инфраструктурными.
var (
	// ErrEmailExists возвращается при нарушении уникальности email.
	ErrEmailExists = errors.New("email already exists")
	// ErrNotConfigured возвращается, если строка подключения не задана.
	ErrNotConfigured = errors.New("database is not configured")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
// Обращаться к базе следует только через методы Storage: они гарантируют,
// что соединение открывается не более одного раза за время жизни процесса.
type Storage struct {
	connString string

	once sync.Once
	db   *sql.DB
	err  error
}

// New создаёт Storage с отложенным подключением. Пустая строка подключения
// не является ошибкой на этом этапе: каждый вызов методов хранилища
// вернёт ErrNotConfigured, не пытаясь установить соединение.
func New(connString string) *Storage {
	return &Storage{connString: connString}
}

// Conn возвращает процессный *sql.DB, открывая его при первом обращении.
func (s *Storage) Conn() (*sql.DB, error) {
	const op = "storage.Conn"

	if s.connString == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}
	s.once.Do(func() {
		s.db, s.err = sql.Open("pgx", s.connString)
	})
	if s.err != nil {
		return nil, fmt.Errorf("%s: %w", op, s.err)
	}
	return s.db, nil
}

// Close закрывает соединение с базой, если оно было открыто.
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	db, err := storage.Conn()
	if err != nil {
		return err
	}
	var exists bool
	err = db.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'signups'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table signups missing or query error: %w", err)
	}
	return nil
}
