package store

import (
	"database/sql"
	"errors"
	"strconv"
)

// SettingRepository stores key/value settings that survive restarts.
type SettingRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingRepository {
	return &SettingRepository{db: s.db}
}

// Get returns the value for a key or ErrNotFound.
func (r *SettingRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set writes a value, replacing any previous one.
func (r *SettingRepository) Set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	return err
}

// GetFloat returns the value parsed as a float, or fallback when the
// key is missing or unparseable.
func (r *SettingRepository) GetFloat(key string, fallback float64) float64 {
	value, err := r.Get(key)
	if err != nil {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return f
}

// GetInt returns the value parsed as an int, or fallback when the key
// is missing or unparseable.
func (r *SettingRepository) GetInt(key string, fallback int) int {
	value, err := r.Get(key)
	if err != nil {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

// SetFloat stores a float value.
func (r *SettingRepository) SetFloat(key string, value float64) error {
	return r.Set(key, strconv.FormatFloat(value, 'g', -1, 64))
}

// SetInt stores an integer value.
func (r *SettingRepository) SetInt(key string, value int) error {
	return r.Set(key, strconv.Itoa(value))
}
