package entities

import (
	"github.com/google/uuid"
)

// Ingredient is catalog data: the pair (name, measurement unit) is the
// natural key the bulk loader upserts by.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name            string    `gorm:"size:200;uniqueIndex:idx_ingredient_name_unit" json:"name"`
	MeasurementUnit string    `gorm:"size:200;uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit"`

	Timestamp
}
