package tafsir

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(t.TempDir())

	entries := []Entry{
		{Author: "ibn-katheer", SurahNumber: 1, AyahRange: [2]int{1, 4}, TafsirText: "first block"},
		{Author: "ibn-katheer", SurahNumber: 1, AyahRange: [2]int{5, 7}, TafsirText: "second block"},
	}
	require.NoError(t, store.WriteSurah("ibn-katheer", 1, entries))
	return store
}

func TestLookupRoundTrip(t *testing.T) {
	store := seedStore(t)

	entry, err := store.Lookup("ibn-katheer", 1, 6)
	require.NoError(t, err)

	// text stored at write time comes back byte-identical
	assert.Equal(t, "second block", entry.TafsirText)
	assert.Equal(t, [2]int{5, 7}, entry.AyahRange)
}

func TestLookupMissingSurahAndAyah(t *testing.T) {
	store := seedStore(t)

	_, err := store.Lookup("ibn-katheer", 99, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Lookup("ibn-katheer", 1, 8)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Lookup("nobody", 1, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRangeReturnsOverlappingEntriesInOrder(t *testing.T) {
	store := seedStore(t)

	entries, err := store.Range("ibn-katheer", 1, 3, 6)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "first block", entries[0].TafsirText)
	assert.Equal(t, "second block", entries[1].TafsirText)

	entries, err = store.Range("ibn-katheer", 1, 8, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteSurahLeavesNoTempFile(t *testing.T) {
	store := seedStore(t)

	files, err := os.ReadDir(filepath.Join(store.Root, "ibn-katheer"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "1.json", files[0].Name())
}

func TestAuthorsAndSurahs(t *testing.T) {
	store := seedStore(t)
	require.NoError(t, store.WriteSurah("saadi", 2, []Entry{{Author: "saadi", SurahNumber: 2, AyahRange: [2]int{1, 1}, TafsirText: "x"}}))
	require.NoError(t, store.WriteSurah("saadi", 10, []Entry{{Author: "saadi", SurahNumber: 10, AyahRange: [2]int{1, 1}, TafsirText: "y"}}))

	authors, err := store.Authors()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ibn-katheer", "saadi"}, authors)

	surahs, err := store.Surahs("saadi")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 10}, surahs)
}

func TestLoadSurahRejectsMalformedDocument(t *testing.T) {
	store := NewStore(t.TempDir())
	dir := filepath.Join(store.Root, "saadi")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.json"), []byte("{not json"), 0644))

	_, err := store.LoadSurah("saadi", 1)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestLoadRawSurahUsesFetcherForMissingTexts(t *testing.T) {
	dataDir := t.TempDir()
	base := filepath.Join(dataDir, "ibn-katheer")
	require.NoError(t, os.MkdirAll(base, 0755))

	metas := []AyahMeta{
		{AyahNumber: 1, URL: "https://example.org/1/1"},
		{AyahNumber: 2, URL: "https://example.org/1/2"},
	}
	raw, err := json.Marshal(metas)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(base, "1.json"), raw, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(base, "1_1.txt"), []byte("on disk\n"), 0644))

	fetched := 0
	fetch := func(url string) (string, error) {
		fetched++
		return "fetched text", nil
	}

	_, texts, err := LoadRawSurah(dataDir, "ibn-katheer", 1, fetch)
	require.NoError(t, err)
	assert.Equal(t, "on disk", texts[1])
	assert.Equal(t, "fetched text", texts[2])
	assert.Equal(t, 1, fetched)

	// fetched text was saved back for next run
	saved, err := os.ReadFile(filepath.Join(base, "1_2.txt"))
	require.NoError(t, err)
	assert.Equal(t, "fetched text", string(saved))
}
