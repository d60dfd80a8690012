package utils

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

type Header struct {
	Key   string
	Value string
}

// MakeHeadersRequest - Improve the stupid http.Post/http.Get format. Does not close body.
func MakeHeadersRequest(url string, body io.Reader, client *http.Client, headers ...Header) (*http.Response, error) {
	if client == nil {
		return nil, fmt.Errorf("nil http client")
	}

	req, err := http.NewRequest("POST", url, body)
	if err != nil {
		return nil, err
	}
	for _, header := range headers {
		req.Header.Set(header.Key, header.Value)
	}

	return client.Do(req)
}

// WriteFileAtomic - Write via a temp file in the same dir, then rename. Readers
// never see a half-written file.
func WriteFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	return os.Rename(tempPath, path)
}
