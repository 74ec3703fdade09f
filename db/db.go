package db

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/Lingaraj8064/Crop-AI-Sys/models"
)

const (
	analysisPrefix = "analysis:"
	chatPrefix     = "chat:"
)

type DB struct {
	badgerDB *badger.DB
}

func New(dbPath string) (*DB, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Disable badger logging for cleaner output

	badgerDB, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &DB{badgerDB: badgerDB}, nil
}

func (d *DB) Close() error {
	return d.badgerDB.Close()
}

func (d *DB) StoreAnalysis(record models.AnalysisRecord) error {
	return d.badgerDB.Update(func(txn *badger.Txn) error {
		key := []byte(analysisPrefix + record.ID)

		data, err := json.Marshal(record)
		if err != nil {
			return err
		}

		return txn.Set(key, data)
	})
}

func (d *DB) GetAnalysis(id string) (*models.AnalysisRecord, error) {
	var record models.AnalysisRecord

	err := d.badgerDB.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(analysisPrefix + id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// RecentAnalyses returns up to limit records, most recent first.
func (d *DB) RecentAnalyses(limit int) ([]models.AnalysisRecord, error) {
	var records []models.AnalysisRecord

	err := d.badgerDB.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(analysisPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var record models.AnalysisRecord
				if err := json.Unmarshal(val, &record); err != nil {
					return err
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt > records[j].CreatedAt
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	return records, nil
}

// StoreChatTurn appends one exchange to a session's history. Keys
// embed a zero-padded nanosecond timestamp so badger's lexical key
// order matches chronological order.
func (d *DB) StoreChatTurn(turn models.ChatTurn) error {
	return d.badgerDB.Update(func(txn *badger.Txn) error {
		key := []byte(fmt.Sprintf("%s%s:%020d", chatPrefix, turn.SessionID, time.Now().UnixNano()))

		data, err := json.Marshal(turn)
		if err != nil {
			return err
		}

		return txn.Set(key, data)
	})
}

func (d *DB) ChatHistory(sessionID string) ([]models.ChatTurn, error) {
	var turns []models.ChatTurn

	err := d.badgerDB.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chatPrefix + sessionID + ":")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var turn models.ChatTurn
				if err := json.Unmarshal(val, &turn); err != nil {
					return err
				}
				turns = append(turns, turn)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	return turns, err
}

// ClearChatSession deletes a session's history and reports how many
// turns were removed.
func (d *DB) ClearChatSession(sessionID string) (int, error) {
	var keys [][]byte

	err := d.badgerDB.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chatPrefix + sessionID + ":")
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	err = d.badgerDB.Update(func(txn *badger.Txn) error {
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(keys), nil
}

// ChatSessionCount counts distinct sessions with stored history.
func (d *DB) ChatSessionCount() (int, error) {
	sessions := make(map[string]struct{})

	err := d.badgerDB.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chatPrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			rest := strings.TrimPrefix(string(it.Item().Key()), chatPrefix)
			if i := strings.LastIndex(rest, ":"); i > 0 {
				sessions[rest[:i]] = struct{}{}
			}
		}
		return nil
	})

	return len(sessions), err
}

// SessionExists reports whether any history is stored for a session.
func (d *DB) SessionExists(sessionID string) (bool, error) {
	if strings.TrimSpace(sessionID) == "" {
		return false, nil
	}

	exists := false
	err := d.badgerDB.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chatPrefix + sessionID + ":")
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		it.Rewind()
		exists = it.Valid()
		return nil
	})

	return exists, err
}
