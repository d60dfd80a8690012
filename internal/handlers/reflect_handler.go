package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"tafsir/internal/tafsir"
)

type reflectResponse struct {
	Author     string `json:"author"`
	Surah      int    `json:"surah"`
	AyahRange  [2]int `json:"ayah_range"`
	Language   string `json:"language"`
	Reflection string `json:"reflection"`
	Entries    int    `json:"entries"`
}

// ReflectHandler - GET /reflect?author=...&surah=...&from=...&to=...&lang=en
func (handler *Handler) ReflectHandler(c echo.Context) error {
	author := c.QueryParam("author")
	if author == "" {
		return c.JSON(http.StatusBadRequest, ReturnType{Message: "author query parameter is required", Data: nil})
	}

	surah, err := strconv.Atoi(c.QueryParam("surah"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ReturnType{Message: "surah must be a number", Data: nil})
	}
	from, err := strconv.Atoi(c.QueryParam("from"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ReturnType{Message: "from must be a number", Data: nil})
	}
	to := from
	if t := c.QueryParam("to"); t != "" {
		to, err = strconv.Atoi(t)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ReturnType{Message: "to must be a number", Data: nil})
		}
	}
	if from < 1 || to < from {
		return c.JSON(http.StatusBadRequest, ReturnType{Message: "invalid ayah range", Data: nil})
	}

	lang := c.QueryParam("lang")
	if lang == "" {
		lang = "en"
	}
	if !validLang(lang) {
		return c.JSON(http.StatusBadRequest, ReturnType{Message: "lang must be a plain language code", Data: nil})
	}

	entries, err := handler.Store.Range(author, surah, from, to)
	if err != nil && !errors.Is(err, tafsir.ErrNotFound) {
		return c.JSON(http.StatusInternalServerError, ReturnType{Message: "Error reading tafsir. Error: " + err.Error(), Data: nil})
	}
	if len(entries) == 0 {
		return c.JSON(http.StatusNotFound, ReturnType{Message: "No tafsir found for the given ayah range.", Data: nil})
	}

	texts := make([]string, len(entries))
	for i, entry := range entries {
		texts[i] = entry.TafsirText
	}
	combined := strings.Join(texts, "\n\n")

	reflection, err := handler.Cache.GetOrCompute(combined, "reflect", lang, func() (string, error) {
		return handler.Reflector.Reflect(c.Request().Context(), combined, lang)
	})
	if err != nil {
		return c.JSON(http.StatusBadGateway, ReturnType{Message: "Reflection failed. Error: " + err.Error(), Data: nil})
	}

	return c.JSON(http.StatusOK, ReturnType{
		Message: "",
		Data: reflectResponse{
			Author:     author,
			Surah:      surah,
			AyahRange:  [2]int{from, to},
			Language:   lang,
			Reflection: reflection,
			Entries:    len(entries),
		},
	})
}
