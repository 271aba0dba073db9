package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store keeps corpus files as plain JSON documents in one directory, keyed
// by file name.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) Write(f File) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", s.dir, err)
	}
	path := filepath.Join(s.dir, f.Name)
	if err := os.WriteFile(path, f.Data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// List returns the corpus file names in lexical order. A missing directory
// lists as empty.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) Load(name string) (File, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return File{}, fmt.Errorf("load %s: %w", name, err)
	}
	category, label := ParseFileName(name)
	return File{
		Name:      name,
		Category:  category,
		SizeLabel: label,
		ByteSize:  len(data),
		Pretty:    category == CategoryPretty,
		Data:      data,
	}, nil
}

// LoadAll loads every corpus file. It returns ErrNoCorpus when the
// directory holds none.
func (s *Store) LoadAll() ([]File, error) {
	names, err := s.List()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.dir, err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoCorpus, s.dir)
	}

	files := make([]File, 0, len(names))
	for _, name := range names {
		f, err := s.Load(name)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}
