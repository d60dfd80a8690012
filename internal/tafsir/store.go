package tafsir

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"tafsir/internal/utils"
)

// ErrNotFound - No surah document, or no entry covering the requested ayah.
var ErrNotFound = errors.New("tafsir not found")

// Store reads and writes the consolidated per-surah documents. Documents are
// written once by the prepare step and only read afterwards, so there is no
// locking here.
type Store struct {
	Root string
}

func NewStore(root string) *Store {
	return &Store{Root: root}
}

func (s *Store) surahPath(author string, surah int) string {
	return filepath.Join(s.Root, author, strconv.Itoa(surah)+".json")
}

// LoadSurah returns all entries of one (author, surah) document.
func (s *Store) LoadSurah(author string, surah int) ([]Entry, error) {
	data, err := os.ReadFile(s.surahPath(author, surah))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s surah %d", ErrNotFound, author, surah)
		}
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("bad surah document %s/%d: %w", author, surah, err)
	}
	return entries, nil
}

// Lookup returns the entry whose ayah range covers the given ayah.
func (s *Store) Lookup(author string, surah, ayah int) (Entry, error) {
	entries, err := s.LoadSurah(author, surah)
	if err != nil {
		return Entry{}, err
	}

	for _, entry := range entries {
		if entry.Covers(ayah) {
			return entry, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %s %d:%d", ErrNotFound, author, surah, ayah)
}

// Range returns all entries overlapping [from, to], in range order.
func (s *Store) Range(author string, surah, from, to int) ([]Entry, error) {
	entries, err := s.LoadSurah(author, surah)
	if err != nil {
		return nil, err
	}

	var found []Entry
	for _, entry := range entries {
		if entry.Overlaps(from, to) {
			found = append(found, entry)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].AyahRange[0] < found[j].AyahRange[0] })
	return found, nil
}

// WriteSurah persists one consolidated surah document atomically.
func (s *Store) WriteSurah(author string, surah int, entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return utils.WriteFileAtomic(s.surahPath(author, surah), data)
}

// Authors lists the author directories under the store root.
func (s *Store) Authors() ([]string, error) {
	dirEntries, err := os.ReadDir(s.Root)
	if err != nil {
		return nil, err
	}

	var authors []string
	for _, dir := range dirEntries {
		if dir.IsDir() {
			authors = append(authors, dir.Name())
		}
	}
	return authors, nil
}

// Surahs lists surah numbers that have a document for the given author.
func (s *Store) Surahs(author string) ([]int, error) {
	dirEntries, err := os.ReadDir(filepath.Join(s.Root, author))
	if err != nil {
		return nil, err
	}

	var surahs []int
	for _, file := range dirEntries {
		name := file.Name()
		if file.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		surah, err := strconv.Atoi(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue // stray file, not a surah document
		}
		surahs = append(surahs, surah)
	}
	sort.Ints(surahs)
	return surahs, nil
}
