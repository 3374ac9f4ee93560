package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/pageza/macromatch/internal/nutrition"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// FoodMatchArray stores the per-ingredient matches as JSONB
type FoodMatchArray []nutrition.FoodMatch

// Value implements the driver.Valuer interface
func (a FoodMatchArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *FoodMatchArray) Scan(value interface{}) error {
	if value == nil {
		*a = FoodMatchArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is a stored recipe together with its computed nutrition. The
// nutrition fields are recomputed whenever the ingredient list changes,
// never edited in place.
type Recipe struct {
	ID                  uuid.UUID                  `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt           time.Time                  `json:"created_at"`
	UpdatedAt           time.Time                  `json:"updated_at"`
	DeletedAt           gorm.DeletedAt             `gorm:"index" json:"-"`
	Title               string                     `gorm:"size:255;not null;uniqueIndex" json:"title"`
	Yield               int                        `gorm:"not null;default:1" json:"yield"`
	Ingredients         JSONBStringArray           `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	IngredientMatches   FoodMatchArray             `gorm:"type:jsonb;not null;default:'[]'" json:"ingredient_matches"`
	TotalNutrition      nutrition.NutritionProfile `gorm:"embedded;embeddedPrefix:total_" json:"total_nutrition"`
	PerServingNutrition nutrition.NutritionProfile `gorm:"embedded;embeddedPrefix:per_serving_" json:"per_serving_nutrition"`
	Embedding           pgvector.Vector            `gorm:"type:vector(3)" json:"-"`
}

// BeforeCreate assigns an ID so the model works on dialects without a
// server-side uuid default.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
