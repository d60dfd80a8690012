package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"tafsir/internal/cache"
	"tafsir/internal/tafsir"
	"tafsir/internal/vector"
)

type stubEmbedder struct {
	calls int
	vec   []float32
	err   error
}

func (s *stubEmbedder) Embed(text string) ([]float32, error) {
	s.calls++
	return s.vec, s.err
}

type stubSearcher struct {
	gotLimit  uint64
	gotAuthor string
	gotSurah  int
	results   []vector.ScoredEntry
	err       error
}

func (s *stubSearcher) Search(embeddings []float32, limit uint64, author string, surah int) ([]vector.ScoredEntry, error) {
	s.gotLimit = limit
	s.gotAuthor = author
	s.gotSurah = surah
	return s.results, s.err
}

type stubTranslator struct {
	calls int
	err   error
}

func (s *stubTranslator) Translate(text, lang string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "[" + lang + "] " + text, nil
}

type stubReflector struct {
	calls int
	err   error
}

func (s *stubReflector) Reflect(ctx context.Context, tafsirText, lang string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "reflection in " + lang, nil
}

// newTestHandler seeds a store with one surah document and wires stubs for
// everything external.
func newTestHandler(t *testing.T) (*Handler, *stubEmbedder, *stubSearcher, *stubTranslator, *stubReflector) {
	t.Helper()

	store := tafsir.NewStore(t.TempDir())
	entries := []tafsir.Entry{
		{Author: "ibn-katheer", SurahNumber: 1, AyahRange: [2]int{1, 3}, TafsirText: "تفسير الفاتحة", SurahNameEnglish: "The Opening"},
		{Author: "ibn-katheer", SurahNumber: 1, AyahRange: [2]int{4, 7}, TafsirText: "باقي السورة"},
	}
	require.NoError(t, store.WriteSurah("ibn-katheer", 1, entries))

	embedder := &stubEmbedder{vec: []float32{0.1, 0.2}}
	searcher := &stubSearcher{results: []vector.ScoredEntry{{Entry: entries[0], Score: 0.9}}}
	translator := &stubTranslator{}
	reflector := &stubReflector{}

	handler := &Handler{
		Store:      store,
		Embedder:   embedder,
		Searcher:   searcher,
		Translator: translator,
		Reflector:  reflector,
		Cache:      cache.New(t.TempDir()),
	}
	return handler, embedder, searcher, translator, reflector
}

func doRequest(t *testing.T, handler func(echo.Context) error, target string, params map[string]string) (*httptest.ResponseRecorder, ReturnType) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for name, value := range params {
		names = append(names, name)
		values = append(values, value)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	require.NoError(t, handler(c))

	var envelope ReturnType
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func asJSON(t *testing.T, data interface{}, out interface{}) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func tafsirParams(author, surah, ayah string) map[string]string {
	return map[string]string{"author": author, "surah": surah, "ayah": ayah}
}

func tafsirTarget(author, surah, ayah, query string) string {
	return fmt.Sprintf("/tafsir/%s/%s/%s%s", author, surah, ayah, query)
}
