package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"tafsir/internal/tafsir"
	"tafsir/internal/translate"
)

// tafsirResponse - The stored entry, plus the translation when one was asked for.
type tafsirResponse struct {
	tafsir.Entry
	TranslatedText string `json:"translated_text,omitempty"`
	Language       string `json:"language,omitempty"`
}

// GetTafsirHandler - GET /tafsir/:author/:surah/:ayah?lang=xx
func (handler *Handler) GetTafsirHandler(c echo.Context) error {
	author := c.Param("author")
	surah, err := strconv.Atoi(c.Param("surah"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ReturnType{Message: "surah must be a number", Data: nil})
	}
	ayah, err := strconv.Atoi(c.Param("ayah"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ReturnType{Message: "ayah must be a number", Data: nil})
	}

	entry, err := handler.Store.Lookup(author, surah, ayah)
	if err != nil {
		if errors.Is(err, tafsir.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ReturnType{Message: "Tafsir not found for the given author, surah and ayah.", Data: nil})
		}
		return c.JSON(http.StatusInternalServerError, ReturnType{Message: "Error reading tafsir. Error: " + err.Error(), Data: nil})
	}

	response := tafsirResponse{Entry: entry}

	if lang := c.QueryParam("lang"); lang != "" {
		if !validLang(lang) {
			return c.JSON(http.StatusBadRequest, ReturnType{Message: "lang must be a plain language code", Data: nil})
		}
		translated, err := handler.Cache.GetOrCompute(entry.TafsirText, "translate", lang, func() (string, error) {
			return handler.Translator.Translate(entry.TafsirText, lang)
		})
		if err != nil {
			if errors.Is(err, translate.ErrUnsupportedLanguage) {
				return c.JSON(http.StatusBadRequest, ReturnType{Message: "Unsupported language. Error: " + err.Error(), Data: nil})
			}
			return c.JSON(http.StatusBadGateway, ReturnType{Message: "Translation failed. Error: " + err.Error(), Data: nil})
		}
		response.TranslatedText = translated
		response.Language = lang
	}

	return c.JSON(http.StatusOK, ReturnType{Message: "", Data: response})
}
