package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/holdbot/internal/domain/catalog"
)

type booksFile struct {
	Books []struct {
		URL  string `yaml:"url"`
		Note string `yaml:"note"`
	} `yaml:"books"`
}

// LoadBooksFile reads a YAML list of books:
//
//	books:
//	  - url: https://catalog.example.org/title/123
//	    note: book club pick
func LoadBooksFile(path string) ([]catalog.BookTarget, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read books file: %w", err)
	}
	return ParseBooks(data)
}

func ParseBooks(data []byte) ([]catalog.BookTarget, error) {
	var f booksFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse books file: %w", err)
	}
	out := make([]catalog.BookTarget, 0, len(f.Books))
	for _, b := range f.Books {
		out = append(out, catalog.BookTarget{URL: strings.TrimSpace(b.URL), Note: b.Note})
	}
	return out, nil
}
