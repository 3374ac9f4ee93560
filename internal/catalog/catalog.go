package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

// FoodRecord is a single reference food with nutrition values per 100g.
type FoodRecord struct {
	Description     string  `json:"description"`
	CaloriesPer100g float64 `json:"calories_per_100g"`
	ProteinPer100g  float64 `json:"protein_per_100g"`
	CarbsPer100g    float64 `json:"carbs_per_100g"`
	FatPer100g      float64 `json:"fat_per_100g"`
}

// Catalog is an immutable collection of reference foods, loaded once at
// startup and shared read-only.
type Catalog struct {
	records []FoodRecord
}

// Records returns the loaded food records in catalog order.
func (c *Catalog) Records() []FoodRecord {
	return c.records
}

// Len returns the number of records in the catalog.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Empty returns an empty catalog. Matching against it resolves nothing,
// which is the degraded mode when the source cannot be read.
func Empty() *Catalog {
	return &Catalog{}
}

// Load parses a CSV food catalog from r. The file must carry a header row
// with at least description, calories, proteinInGrams, carbohydratesInGrams
// and fatInGrams columns. Rows with an empty description are dropped and
// unparsable numeric fields default to 0; a bad row never fails the load.
func Load(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	if _, ok := col["description"]; !ok {
		return nil, fmt.Errorf("catalog is missing the description column")
	}

	var records []FoodRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Skip malformed rows rather than rejecting the whole catalog.
			continue
		}

		desc := strings.ToLower(strings.TrimSpace(field(row, col, "description")))
		if desc == "" {
			continue
		}

		records = append(records, FoodRecord{
			Description:     desc,
			CaloriesPer100g: numericField(row, col, "calories"),
			ProteinPer100g:  numericField(row, col, "proteinInGrams"),
			CarbsPer100g:    numericField(row, col, "carbohydratesInGrams"),
			FatPer100g:      numericField(row, col, "fatInGrams"),
		})
	}

	return &Catalog{records: records}, nil
}

// LoadFile loads a catalog from the given path. A missing or unreadable
// file degrades to an empty catalog so the service keeps running.
func LoadFile(path string) *Catalog {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("Food catalog %s not available, matching disabled: %v", path, err)
		return Empty()
	}
	defer f.Close()

	cat, err := Load(f)
	if err != nil {
		log.Printf("Failed to parse food catalog %s: %v", path, err)
		return Empty()
	}

	log.Printf("Loaded %d food records from %s", cat.Len(), path)
	return cat
}

func field(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func numericField(row []string, col map[string]int, name string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(field(row, col, name)), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
