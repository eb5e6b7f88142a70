// Package storage persists the bot's small bits of state (user GitHub
// keys, command usage history) through a JSON-backed datastore.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/keshon/datastore"
)

const usageHistoryLimit = 20

// Storage wraps the datastore with typed accessors.
type Storage struct {
	ds *datastore.DataStore
}

// UsageRecord is one executed command.
type UsageRecord struct {
	Channel  string    `json:"channel"`
	Sender   string    `json:"sender"`
	Command  string    `json:"command"`
	Datetime time.Time `json:"datetime"`
}

// New opens (or creates) the datastore file at path.
func New(path string) (*Storage, error) {
	ds, err := datastore.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening datastore: %w", err)
	}
	return &Storage{ds: ds}, nil
}

// Close flushes and closes the underlying datastore.
func (s *Storage) Close() error { return s.ds.Close() }

// SetGitHubKey stores a user's GitHub API key.
func (s *Storage) SetGitHubKey(userID, key string) error {
	s.ds.Add("ghkey:"+userID, key)
	return nil
}

// GitHubKey returns a user's stored GitHub API key, or "".
func (s *Storage) GitHubKey(userID string) string {
	v, ok := s.ds.Get("ghkey:" + userID)
	if !ok {
		return ""
	}
	key, _ := v.(string)
	return key
}

// DeleteGitHubKey removes a user's stored key.
func (s *Storage) DeleteGitHubKey(userID string) {
	s.ds.Delete("ghkey:" + userID)
}

// RecordUsage appends a command execution to the bounded history.
func (s *Storage) RecordUsage(channel, sender, command string) error {
	records, err := s.UsageHistory()
	if err != nil {
		return err
	}
	records = append(records, UsageRecord{
		Channel:  channel,
		Sender:   sender,
		Command:  command,
		Datetime: time.Now(),
	})
	if len(records) > usageHistoryLimit {
		records = records[len(records)-usageHistoryLimit:]
	}
	s.ds.Add("usage_history", records)
	return nil
}

// UsageHistory returns the recorded command executions, oldest first.
func (s *Storage) UsageHistory() ([]UsageRecord, error) {
	v, ok := s.ds.Get("usage_history")
	if !ok {
		return nil, nil
	}

	// Values read back from disk come out as generic JSON types, so
	// round-trip through encoding/json to get the typed records back.
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var records []UsageRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	return records, nil
}
