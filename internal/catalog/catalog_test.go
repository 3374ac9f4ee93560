package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("parses well-formed rows", func(t *testing.T) {
		cat, err := Load(strings.NewReader(`description,calories,proteinInGrams,carbohydratesInGrams,fatInGrams
Olive Oil,884,0,0,100
chicken breast,165,31,0,3.6
`))
		require.NoError(t, err)
		require.Equal(t, 2, cat.Len())

		first := cat.Records()[0]
		assert.Equal(t, "olive oil", first.Description, "descriptions are lower-cased")
		assert.Equal(t, 884.0, first.CaloriesPer100g)
		assert.Equal(t, 100.0, first.FatPer100g)
	})

	t.Run("column order follows the header", func(t *testing.T) {
		cat, err := Load(strings.NewReader(`calories,description,fatInGrams,proteinInGrams,carbohydratesInGrams
304,honey,0,0.3,82.4
`))
		require.NoError(t, err)
		require.Equal(t, 1, cat.Len())

		rec := cat.Records()[0]
		assert.Equal(t, "honey", rec.Description)
		assert.Equal(t, 304.0, rec.CaloriesPer100g)
		assert.Equal(t, 82.4, rec.CarbsPer100g)
	})

	t.Run("drops rows without a description", func(t *testing.T) {
		cat, err := Load(strings.NewReader(`description,calories,proteinInGrams,carbohydratesInGrams,fatInGrams
,100,1,1,1
   ,200,2,2,2
broccoli,34,2.8,6.6,0.4
`))
		require.NoError(t, err)
		assert.Equal(t, 1, cat.Len())
	})

	t.Run("bad numeric fields default to zero", func(t *testing.T) {
		cat, err := Load(strings.NewReader(`description,calories,proteinInGrams,carbohydratesInGrams,fatInGrams
mystery food,not-a-number,-5,,12
`))
		require.NoError(t, err)
		require.Equal(t, 1, cat.Len())

		rec := cat.Records()[0]
		assert.Equal(t, 0.0, rec.CaloriesPer100g)
		assert.Equal(t, 0.0, rec.ProteinPer100g)
		assert.Equal(t, 0.0, rec.CarbsPer100g)
		assert.Equal(t, 12.0, rec.FatPer100g)
	})

	t.Run("short rows do not fail the load", func(t *testing.T) {
		cat, err := Load(strings.NewReader(`description,calories,proteinInGrams,carbohydratesInGrams,fatInGrams
rolled oats,389
`))
		require.NoError(t, err)
		require.Equal(t, 1, cat.Len())
		assert.Equal(t, 389.0, cat.Records()[0].CaloriesPer100g)
		assert.Equal(t, 0.0, cat.Records()[0].ProteinPer100g)
	})

	t.Run("missing description column is an error", func(t *testing.T) {
		_, err := Load(strings.NewReader("name,calories\nfoo,1\n"))
		assert.Error(t, err)
	})

	t.Run("header only yields an empty catalog", func(t *testing.T) {
		cat, err := Load(strings.NewReader("description,calories,proteinInGrams,carbohydratesInGrams,fatInGrams\n"))
		require.NoError(t, err)
		assert.Equal(t, 0, cat.Len())
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("reads a catalog file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "macro.csv")
		data := "description,calories,proteinInGrams,carbohydratesInGrams,fatInGrams\nolive oil,884,0,0,100\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))

		cat := LoadFile(path)
		assert.Equal(t, 1, cat.Len())
	})

	t.Run("missing file degrades to an empty catalog", func(t *testing.T) {
		cat := LoadFile(filepath.Join(t.TempDir(), "absent.csv"))
		require.NotNil(t, cat)
		assert.Equal(t, 0, cat.Len())
	})
}

func TestEmpty(t *testing.T) {
	cat := Empty()
	assert.Equal(t, 0, cat.Len())
	assert.Empty(t, cat.Records())
}
