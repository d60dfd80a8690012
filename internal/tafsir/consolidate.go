package tafsir

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// AyahMeta is the raw metadata shape under data/<author>/<surah>.json: one row
// per ayah pointing at its source page.
type AyahMeta struct {
	AyahNumber       int    `json:"ayah_number"`
	URL              string `json:"url"`
	SurahNameEnglish string `json:"surah_name_english"`
	SurahNameArabic  string `json:"surah_name_arabic"`
}

// FetchFunc fetches tafsir text for an ayah whose .txt file is missing.
// Nil means missing ayahs are just skipped.
type FetchFunc func(url string) (string, error)

// LoadRawSurah reads the per-ayah metadata and text files of one surah from the
// raw data dir. Missing text files go through fetch when provided; its result
// is saved back next to the other .txt files so the next run is offline.
func LoadRawSurah(dataDir, author string, surah int, fetch FetchFunc) ([]AyahMeta, map[int]string, error) {
	base := filepath.Join(dataDir, author)
	data, err := os.ReadFile(filepath.Join(base, strconv.Itoa(surah)+".json"))
	if err != nil {
		return nil, nil, err
	}

	var metas []AyahMeta
	if err := json.Unmarshal(data, &metas); err != nil {
		return nil, nil, fmt.Errorf("bad metadata %s/%d: %w", author, surah, err)
	}

	texts := make(map[int]string, len(metas))
	for _, meta := range metas {
		txtPath := filepath.Join(base, fmt.Sprintf("%d_%d.txt", surah, meta.AyahNumber))
		raw, err := os.ReadFile(txtPath)
		if err == nil {
			texts[meta.AyahNumber] = strings.TrimSpace(string(raw))
			continue
		}

		if fetch == nil || meta.URL == "" {
			fmt.Printf("[missing] %s - no fetcher, skipping\n", txtPath)
			continue
		}
		fetched, err := fetch(meta.URL)
		if err != nil {
			fmt.Printf("[missing] %s - fetch failed: %v\n", txtPath, err)
			continue
		}
		fetched = strings.TrimSpace(fetched)
		if fetched == "" {
			continue
		}
		texts[meta.AyahNumber] = fetched
		if err := os.WriteFile(txtPath, []byte(fetched), 0644); err != nil {
			fmt.Printf("[warn] could not save fetched ayah %s: %v\n", txtPath, err)
		}
	}
	return metas, texts, nil
}

// ConsolidateSurah merges per-ayah texts into range entries. Ayahs sharing the
// exact same tafsir text collapse into one entry per contiguous run, which is
// how the sources group commentary that spans several ayahs. Output is ordered
// by range start, and every ayah with text is covered by exactly one entry.
func ConsolidateSurah(author string, surah int, metas []AyahMeta, texts map[int]string) []Entry {
	metaByAyah := make(map[int]AyahMeta, len(metas))
	for _, meta := range metas {
		metaByAyah[meta.AyahNumber] = meta
	}

	// group ayah numbers by their text
	groups := make(map[string][]int)
	for ayah, text := range texts {
		if text == "" {
			continue
		}
		groups[text] = append(groups[text], ayah)
	}

	var consolidated []Entry
	for text, ayahs := range groups {
		sort.Ints(ayahs)

		// split the group into contiguous runs
		start, end := ayahs[0], ayahs[0]
		flush := func() {
			rep := metaByAyah[start]
			var urls []string
			for a := start; a <= end; a++ {
				if meta, ok := metaByAyah[a]; ok && meta.URL != "" {
					urls = append(urls, meta.URL)
				}
			}
			consolidated = append(consolidated, Entry{
				Author:           author,
				SurahNumber:      surah,
				AyahRange:        [2]int{start, end},
				TafsirText:       text,
				SurahNameEnglish: rep.SurahNameEnglish,
				SurahNameArabic:  rep.SurahNameArabic,
				SourceURLs:       urls,
			})
		}
		for _, n := range ayahs[1:] {
			if n == end+1 {
				end = n
				continue
			}
			flush()
			start, end = n, n
		}
		flush()
	}

	sort.Slice(consolidated, func(i, j int) bool {
		return consolidated[i].AyahRange[0] < consolidated[j].AyahRange[0]
	})
	return consolidated
}
