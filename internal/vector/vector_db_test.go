package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tafsir/internal/tafsir"
)

func TestPointIDIsDeterministic(t *testing.T) {
	entry := tafsir.Entry{Author: "ibn-katheer", SurahNumber: 2, AyahRange: [2]int{255, 255}}

	first := PointID(entry)
	second := PointID(entry)
	assert.Equal(t, first, second)

	// text changes must not change identity; re-ingestion replaces wholesale
	entry.TafsirText = "revised commentary"
	assert.Equal(t, first, PointID(entry))
}

func TestPointIDDistinguishesIdentity(t *testing.T) {
	base := tafsir.Entry{Author: "ibn-katheer", SurahNumber: 2, AyahRange: [2]int{1, 5}}

	otherAuthor := base
	otherAuthor.Author = "saadi"
	otherSurah := base
	otherSurah.SurahNumber = 3
	otherRange := base
	otherRange.AyahRange = [2]int{1, 6}

	ids := map[string]bool{
		PointID(base):        true,
		PointID(otherAuthor): true,
		PointID(otherSurah):  true,
		PointID(otherRange):  true,
	}
	assert.Len(t, ids, 4)
}

func TestSearchFilterShapes(t *testing.T) {
	assert.Nil(t, searchFilter("", 0))

	both := searchFilter("ibn-katheer", 2)
	assert.Len(t, both.Must, 2)

	authorOnly := searchFilter("ibn-katheer", 0)
	assert.Len(t, authorOnly.Must, 1)
}
