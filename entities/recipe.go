package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Ingredient struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	newID(&i.ID)
	return nil
}

// Recipe keeps Difficulty as a cached value of recipe.Classify over
// CookingTime and the size of Ingredients. It is only written by the
// recipe repository when saving.
type Recipe struct {
	ID          uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	Name        string        `gorm:"type:varchar(200);not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	CookingTime int           `gorm:"not null;default:0" json:"cooking_time"`
	Difficulty  string        `gorm:"type:varchar(20);index" json:"difficulty"`
	StaticImage string        `gorm:"type:varchar(200)" json:"static_image"`
	ImageURL    string        `gorm:"type:text" json:"image_url,omitempty"`
	Ingredients []*Ingredient `gorm:"many2many:recipe_ingredients;" json:"ingredients"`
	CreatedByID uuid.UUID     `gorm:"type:uuid;index" json:"created_by_id"`

	CreatedBy *User `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Timestamp
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	newID(&r.ID)
	return nil
}
