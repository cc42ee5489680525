package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// Marshal converts a collection to the stored text form.
// Uses json.Encoder with HTML escaping disabled so names like "R&D" stay readable.
func Marshal[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return "", fmt.Errorf("marshal collection: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

// Unmarshal parses stored text back into a collection.
// Empty text decodes to an empty (non-nil) slice.
func Unmarshal[T any](data string) ([]T, error) {
	items := []T{}
	if strings.TrimSpace(data) == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("unmarshal collection: %w", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// LoadList reads the collection stored under key.
//
// Missing or invalid data yields an empty collection and a logged warning rather
// than an error, so a corrupt blob never blocks startup. Store I/O errors are
// still returned.
func LoadList[T any](ctx context.Context, s Store, key string, logger *slog.Logger) ([]T, error) {
	if logger == nil {
		logger = slog.Default()
	}

	data, found, err := s.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found {
		logger.Debug("no stored collection, starting empty", "key", key)
		return []T{}, nil
	}

	items, err := Unmarshal[T](data)
	if err != nil {
		logger.Warn("discarding unreadable stored collection", "key", key, "error", err)
		return []T{}, nil
	}
	logger.Debug("collection loaded", "key", key, "count", len(items))
	return items, nil
}

// SaveList serializes items and writes them under key.
func SaveList[T any](ctx context.Context, s Store, key string, items []T) error {
	data, err := Marshal(items)
	if err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return s.Save(ctx, key, data)
}
