// Package photos stores captured frames and keeps the capture archive
// queryable for the gallery and the operator CLI.
//
// The directory of JPEGs is the source of truth; a bbolt index beside
// it carries per-capture metadata (tag, timestamp) that the file name
// alone cannot hold reliably.
package photos

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

const indexFile = "photos.db"

var capturesBucket = []byte("captures")

// Photo is one archived capture.
type Photo struct {
	// ID is the file name within the photo directory.
	ID      string    `json:"id"`
	Tag     string    `json:"tag"`
	TakenAt time.Time `json:"taken_at"`
	Bytes   int64     `json:"bytes"`
	// Size is Bytes for humans ("1.2 MB"); filled in by List.
	Size string `json:"size,omitempty"`
}

// Store is the photo directory plus its index.
type Store struct {
	dir string
	db  *bolt.DB
}

// Open creates the photo directory if needed and opens the index.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating photo dir: %w", err)
	}

	db, err := bolt.Open(filepath.Join(dir, indexFile), 0o666,
		&bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening photo index: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(capturesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating captures bucket: %w", err)
	}

	return &Store{dir: dir, db: db}, nil
}

// Dir returns the photo directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Close closes the index.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveJPEG writes one capture to disk and indexes it.
//
// Names are {timestamp}_{tag}_{uid}.jpg. The uid fragment keeps two
// captures within the same second from overwriting each other, which
// concurrent mission and manual captures otherwise do.
func (s *Store) SaveJPEG(tag string, frame []byte) (Photo, error) {
	now := time.Now()
	name := fmt.Sprintf("%s_%s_%s.jpg",
		now.Format("20060102_150405"), cleanTag(tag), uuid.NewString()[:8])

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, frame, 0o644); err != nil {
		return Photo{}, fmt.Errorf("writing %s: %w", name, err)
	}

	photo := Photo{
		ID:      name,
		Tag:     tag,
		TakenAt: now,
		Bytes:   int64(len(frame)),
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(photo)
		if err != nil {
			return err
		}
		return tx.Bucket(capturesBucket).Put([]byte(name), data)
	})
	if err != nil {
		return Photo{}, fmt.Errorf("indexing %s: %w", name, err)
	}
	return photo, nil
}

// List returns up to limit photos, newest first. Files that predate
// the index (or were dropped in by hand) are listed from their file
// info alone.
func (s *Store) List(limit int) ([]Photo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading photo dir: %w", err)
	}

	indexed := make(map[string]Photo)
	err = s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(capturesBucket).ForEach(func(k, v []byte) error {
			var p Photo
			if err := json.Unmarshal(v, &p); err == nil {
				indexed[string(k)] = p
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("reading photo index: %w", err)
	}

	var list []Photo
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".jpg") {
			continue
		}
		if p, ok := indexed[name]; ok {
			list = append(list, p)
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		list = append(list, Photo{
			ID:      name,
			TakenAt: info.ModTime(),
			Bytes:   info.Size(),
		})
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].TakenAt.Equal(list[j].TakenAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].TakenAt.After(list[j].TakenAt)
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}

	for i := range list {
		list[i].Size = humanize.Bytes(uint64(list[i].Bytes))
	}
	return list, nil
}

// Path resolves a photo name to its path on disk, rejecting anything
// that would escape the photo directory.
func (s *Store) Path(name string) (string, error) {
	if name != filepath.Base(name) || !strings.HasSuffix(name, ".jpg") {
		return "", fmt.Errorf("invalid photo name %q", name)
	}
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("photo %q: %w", name, err)
	}
	return path, nil
}

// cleanTag restricts tags to name-safe characters.
func cleanTag(tag string) string {
	if tag == "" {
		return "shot"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '-'
		}
	}, tag)
}
