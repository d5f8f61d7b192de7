// Package offline хранит неотправленные отчеты в badger и досылает их при появлении связи.
package offline

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/shenikar/road_hazard_system/internal/models"
	"github.com/sirupsen/logrus"
)

// ErrCorruptEntry - запись очереди не удалось разобрать
var ErrCorruptEntry = errors.New("offline: corrupt queue entry")

var (
	pendingPrefix = []byte("pending:")
	sequenceKey   = []byte("meta:pending_seq")
)

const sequenceBandwidth = 64

// SendFunc - одна попытка отправки отчета на сервер
type SendFunc func(ctx context.Context, report models.Report) error

// Queue - упорядоченная очередь отчетов, переживающая перезапуск процесса.
// Порядок задается монотонной последовательностью badger в ключе
type Queue struct {
	db      *badger.DB
	seq     *badger.Sequence
	logger  *logrus.Logger
	flushMu sync.Mutex
}

// NewQueue открывает очередь поверх уже открытой базы; базой владеет вызывающий
func NewQueue(db *badger.DB, logger *logrus.Logger) (*Queue, error) {
	seq, err := db.GetSequence(sequenceKey, sequenceBandwidth)
	if err != nil {
		return nil, fmt.Errorf("offline: could not open sequence: %w", err)
	}
	return &Queue{db: db, seq: seq, logger: logger}, nil
}

// Close освобождает арендованный диапазон последовательности
func (q *Queue) Close() error {
	return q.seq.Release()
}

func pendingKey(n uint64) []byte {
	key := make([]byte, len(pendingPrefix)+8)
	copy(key, pendingPrefix)
	binary.BigEndian.PutUint64(key[len(pendingPrefix):], n)
	return key
}

// Enqueue добавляет отчет в конец очереди
func (q *Queue) Enqueue(report models.Report) error {
	n, err := q.seq.Next()
	if err != nil {
		return fmt.Errorf("offline: could not allocate sequence: %w", err)
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("offline: could not marshal report: %w", err)
	}

	if err := q.db.Update(func(txn *badger.Txn) error {
		return txn.Set(pendingKey(n), payload)
	}); err != nil {
		return fmt.Errorf("offline: could not store report: %w", err)
	}

	q.logger.WithField("seq", n).Info("Report queued for later delivery")
	return nil
}

type pendingEntry struct {
	key    []byte
	report models.Report
	err    error
}

// snapshot читает текущее содержимое очереди в порядке вставки
func (q *Queue) snapshot() ([]pendingEntry, error) {
	var entries []pendingEntry
	err := q.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = pendingPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			entry := pendingEntry{key: item.KeyCopy(nil)}
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &entry.report)
			}); err != nil {
				entry.err = err
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("offline: could not read queue: %w", err)
	}
	return entries, nil
}

// Flush пытается отправить каждый отчет ровно один раз в порядке вставки.
// Отправленные удаляются, неудачные остаются на своих местах
func (q *Queue) Flush(ctx context.Context, send SendFunc) (sent, remaining int, err error) {
	q.flushMu.Lock()
	defer q.flushMu.Unlock()

	entries, err := q.snapshot()
	if err != nil {
		return 0, 0, err
	}

	log := q.logger.WithFields(logrus.Fields{"component": "offline", "method": "Flush"})
	for i, entry := range entries {
		if ctx.Err() != nil {
			remaining += len(entries) - i
			break
		}
		if entry.err != nil {
			// битая запись остается в очереди
			log.WithError(entry.err).Error("Failed to decode queued report")
			remaining++
			continue
		}

		if err := send(ctx, entry.report); err != nil {
			log.WithError(err).Debug("Queued report not delivered")
			remaining++
			continue
		}

		if err := q.db.Update(func(txn *badger.Txn) error {
			return txn.Delete(entry.key)
		}); err != nil {
			// отчет уже доставлен; повторная доставка допустима
			log.WithError(err).Warn("Failed to remove delivered report")
			remaining++
			continue
		}
		sent++
	}

	if sent > 0 || remaining > 0 {
		log.WithFields(logrus.Fields{"sent": sent, "remaining": remaining}).Info("Offline queue flushed")
	}
	return sent, remaining, nil
}

// Len возвращает число отчетов в очереди
func (q *Queue) Len() (int, error) {
	count := 0
	err := q.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = pendingPrefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("offline: could not count queue: %w", err)
	}
	return count, nil
}

// List возвращает отчеты в порядке вставки
func (q *Queue) List() ([]models.Report, error) {
	entries, err := q.snapshot()
	if err != nil {
		return nil, err
	}

	reports := make([]models.Report, 0, len(entries))
	for _, entry := range entries {
		if entry.err != nil {
			return nil, errors.Join(ErrCorruptEntry, entry.err)
		}
		reports = append(reports, entry.report)
	}
	return reports, nil
}
