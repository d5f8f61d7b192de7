// Package badgerdb открывает встроенное хранилище BadgerDB для клиентского агента.
package badgerdb

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
)

// Config - параметры открытия базы
type Config struct {
	// Path - каталог с файлами базы, игнорируется при InMemory
	Path string
	// InMemory - без записи на диск (для тестов)
	InMemory bool
	// SyncWrites - fsync каждой записи
	SyncWrites bool
	// Logger - если nil, внутреннее логирование badger отключено
	Logger *logrus.Logger
}

// InMemoryConfig возвращает конфигурацию для тестов
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// Open открывает базу, создавая каталог при необходимости
func Open(cfg Config) (*badger.DB, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{log: cfg.Logger.WithField("component", "badger")})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return db, nil
}

// badgerLogger адаптирует logrus к интерфейсу badger.Logger
type badgerLogger struct {
	log *logrus.Entry
}

func (l *badgerLogger) Errorf(format string, args ...interface{})   { l.log.Errorf(format, args...) }
func (l *badgerLogger) Warningf(format string, args ...interface{}) { l.log.Warnf(format, args...) }
func (l *badgerLogger) Infof(format string, args ...interface{})    { l.log.Debugf(format, args...) }
func (l *badgerLogger) Debugf(format string, args ...interface{})   { l.log.Debugf(format, args...) }
