package cart

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"printcart/internal/domain"
)

// storageNamespace prefixes every slot file so unrelated files in the data
// directory are never touched.
const storageNamespace = "cart"

type fileRepo struct {
	dir string
}

// NewFile returns a Repository persisting each session's cart as one JSON
// file under dir.
func NewFile(dir string) Repository {
	return &fileRepo{dir: dir}
}

func (r *fileRepo) Slot(sessionID string) Slot {
	name := storageNamespace + "-" + sanitizeSessionID(sessionID) + ".json"
	return &fileSlot{path: filepath.Join(r.dir, name)}
}

type fileSlot struct {
	path string
}

func (s *fileSlot) Load() ([]domain.CartLineItem, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var items []domain.CartLineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		// unreadable snapshot, start over with an empty cart
		return nil, nil
	}
	return items, nil
}

func (s *fileSlot) Save(items []domain.CartLineItem) error {
	if items == nil {
		items = []domain.CartLineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// sanitizeSessionID keeps session ids safe to use as file names.
func sanitizeSessionID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
}
