package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Snapshot is a saved meme: the image reference, the fields and the style.
type Snapshot struct {
	ID      int         `toml:"id"`
	Created time.Time   `toml:"created"`
	Image   string      `toml:"image"`
	Fields  []TextField `toml:"fields"`
	Style   RenderStyle `toml:"style"`
}

// FontRecord is an uploaded font, keyed by family name.
type FontRecord struct {
	Name string
	Data []byte
}

// Store persists meme snapshots and uploaded fonts.
type Store interface {
	PutMeme(s Snapshot) (int, error)
	GetMeme(id int) (Snapshot, bool, error)
	ListMemes() ([]int, error)
	PutFont(f FontRecord) error
	GetFont(name string) (FontRecord, bool, error)
	ListFonts() ([]string, error)
}

// openStore returns a FileStore rooted at dir, or a store that silently
// drops everything when dir cannot be used.
func openStore(dir string) Store {
	if dir == "" {
		return nopStore{}
	}
	s, err := NewFileStore(dir)
	if err != nil {
		log.Printf("store unavailable, running in memory only: %v", err)
		return nopStore{}
	}
	return s
}

// FileStore keeps snapshots as TOML files under memes/ and raw font bytes
// under fonts/.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	for _, sub := range []string{"memes", "fonts"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, err
		}
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) memePath(id int) string {
	return filepath.Join(s.dir, "memes", strconv.Itoa(id)+".toml")
}

func (s *FileStore) fontPath(name string) string {
	return filepath.Join(s.dir, "fonts", name+".ttf")
}

// PutMeme stores snap under the next free id and returns that id.
func (s *FileStore) PutMeme(snap Snapshot) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids, err := s.listMemes()
	if err != nil {
		return 0, err
	}
	snap.ID = 1
	if len(ids) > 0 {
		snap.ID = ids[len(ids)-1] + 1
	}
	if snap.Created.IsZero() {
		snap.Created = time.Now()
	}
	data, err := toml.Marshal(snap)
	if err != nil {
		return 0, fmt.Errorf("encode meme: %w", err)
	}
	if err := os.WriteFile(s.memePath(snap.ID), data, 0o644); err != nil {
		return 0, err
	}
	return snap.ID, nil
}

func (s *FileStore) GetMeme(id int) (Snapshot, bool, error) {
	data, err := os.ReadFile(s.memePath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, err
	}
	var snap Snapshot
	if err := toml.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("decode meme %d: %w", id, err)
	}
	snap.ID = id
	return snap, true, nil
}

func (s *FileStore) ListMemes() ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listMemes()
}

func (s *FileStore) listMemes() ([]int, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, "memes"))
	if err != nil {
		return nil, err
	}
	var ids []int
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".toml")
		if !ok || e.IsDir() {
			continue
		}
		if id, err := strconv.Atoi(name); err == nil {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

func (s *FileStore) PutFont(f FontRecord) error {
	if f.Name == "" || strings.ContainsAny(f.Name, `/\`) {
		return fmt.Errorf("invalid font name %q", f.Name)
	}
	return os.WriteFile(s.fontPath(f.Name), f.Data, 0o644)
}

func (s *FileStore) GetFont(name string) (FontRecord, bool, error) {
	data, err := os.ReadFile(s.fontPath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return FontRecord{}, false, nil
	}
	if err != nil {
		return FontRecord{}, false, err
	}
	return FontRecord{Name: name, Data: data}, true, nil
}

func (s *FileStore) ListFonts() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, "fonts"))
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".ttf"); ok && !e.IsDir() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// nopStore is used when there is no backing directory. Saves are dropped
// and loads find nothing.
type nopStore struct{}

func (nopStore) PutMeme(Snapshot) (int, error) { return 0, nil }
func (nopStore) GetMeme(int) (Snapshot, bool, error) { return Snapshot{}, false, nil }
func (nopStore) ListMemes() ([]int, error) { return nil, nil }
func (nopStore) PutFont(FontRecord) error { return nil }
func (nopStore) GetFont(string) (FontRecord, bool, error) { return FontRecord{}, false, nil }
func (nopStore) ListFonts() ([]string, error) { return nil, nil }

// loadStoredFonts registers every persisted font. Fonts that no longer
// parse are skipped.
func loadStoredFonts(st Store, fonts *FontRegistry) {
	names, err := st.ListFonts()
	if err != nil {
		log.Printf("list fonts: %v", err)
		return
	}
	for _, name := range names {
		rec, ok, err := st.GetFont(name)
		if err != nil || !ok {
			continue
		}
		if err := fonts.Register(rec.Name, rec.Data); err != nil {
			log.Printf("skip stored font: %v", err)
		}
	}
}
