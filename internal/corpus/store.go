// Package corpus persists the learning-corpus files: raw scraped article
// metadata, editorial texts, the selected-DOI list, and the structured
// abstracts the analyzer consumes. All of them are plain YAML documents.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ndrozd/exordium/internal/model"
)

// LoadAbstracts reads the structured abstracts file.
func LoadAbstracts(path string) ([]model.AbstractRecord, error) {
	var records []model.AbstractRecord
	if err := loadYAML(path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SaveAbstracts writes the structured abstracts file.
func SaveAbstracts(path string, records []model.AbstractRecord) error {
	return saveYAML(path, records)
}

// LoadArticles reads the raw scraped article list.
func LoadArticles(path string) ([]model.Article, error) {
	var articles []model.Article
	if err := loadYAML(path, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// SaveArticles writes the raw scraped article list.
func SaveArticles(path string, articles []model.Article) error {
	return saveYAML(path, articles)
}

// LoadEditorials reads scraped editorial texts.
func LoadEditorials(path string) ([]model.Editorial, error) {
	var eds []model.Editorial
	if err := loadYAML(path, &eds); err != nil {
		return nil, err
	}
	return eds, nil
}

// SaveEditorials writes scraped editorial texts.
func SaveEditorials(path string, eds []model.Editorial) error {
	return saveYAML(path, eds)
}

// LoadSelection reads the selected-DOI file.
func LoadSelection(path string) (model.Selection, error) {
	var sel model.Selection
	if err := loadYAML(path, &sel); err != nil {
		return model.Selection{}, err
	}
	return sel, nil
}

// SaveSelection writes the selected-DOI file.
func SaveSelection(path string, sel model.Selection) error {
	return saveYAML(path, sel)
}

func loadYAML(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

func saveYAML(path string, v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	return os.WriteFile(path, data, 0644)
}
