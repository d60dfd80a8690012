package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	maxQueryLength = 500
	maxSearchLimit = 20
	defaultSearchK = 5
)

// SearchHandler - GET /search?q=...&k=5&author=...&surah=...
func (handler *Handler) SearchHandler(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return c.JSON(http.StatusBadRequest, ReturnType{Message: "q query parameter is required", Data: nil})
	}
	if len(query) > maxQueryLength {
		return c.JSON(http.StatusBadRequest, ReturnType{Message: "Max query length is 500 characters.", Data: nil})
	}

	limit := defaultSearchK
	if k := c.QueryParam("k"); k != "" {
		parsed, err := strconv.Atoi(k)
		if err != nil || parsed < 1 {
			return c.JSON(http.StatusBadRequest, ReturnType{Message: "k must be a positive number", Data: nil})
		}
		limit = parsed
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	surah := 0
	if s := c.QueryParam("surah"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ReturnType{Message: "surah must be a number", Data: nil})
		}
		surah = parsed
	}

	vectors, err := handler.Embedder.Embed(query)
	if err != nil {
		return c.JSON(http.StatusBadGateway, ReturnType{Message: "Error embedding query. Error: " + err.Error(), Data: nil})
	}

	results, err := handler.Searcher.Search(vectors, uint64(limit), c.QueryParam("author"), surah)
	if err != nil {
		return c.JSON(http.StatusBadGateway, ReturnType{Message: "Error searching the vector db. Error: " + err.Error(), Data: nil})
	}

	return c.JSON(http.StatusOK, ReturnType{Message: "", Data: results})
}
