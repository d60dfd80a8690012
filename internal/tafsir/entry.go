package tafsir

// Entry is one consolidated tafsir record: a single author's commentary on a
// contiguous ayah range of one surah. This is the element type of the per-surah
// JSON documents under output/<author>/<surah>.json.
type Entry struct {
	Author           string   `json:"author"`
	SurahNumber      int      `json:"surah_number"`
	AyahRange        [2]int   `json:"ayah_range"`
	TafsirText       string   `json:"tafsir_text"`
	SurahNameEnglish string   `json:"surah_name_english"`
	SurahNameArabic  string   `json:"surah_name_arabic"`
	SourceURLs       []string `json:"source_urls,omitempty"`
}

// Covers reports whether the entry's ayah range contains the given ayah.
func (e Entry) Covers(ayah int) bool {
	return e.AyahRange[0] <= ayah && ayah <= e.AyahRange[1]
}

// Overlaps reports whether the entry's range intersects [from, to].
func (e Entry) Overlaps(from, to int) bool {
	return e.AyahRange[0] <= to && from <= e.AyahRange[1]
}
