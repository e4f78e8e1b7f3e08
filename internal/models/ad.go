package models

import (
	"time"

	"github.com/google/uuid"
)

// Category – категория товара в объявлении
type Category string

const (
	CategoryBooks       Category = "books"
	CategoryElectronics Category = "electronics"
	CategoryClothes     Category = "clothes"
	CategoryFurniture   Category = "furniture"
	CategoryToys        Category = "toys"
	CategoryOther       Category = "other"
)

// Condition – состояние товара
type Condition string

const (
	ConditionNew  Condition = "new"
	ConditionUsed Condition = "used"
)

// Ad представляет объявление о товаре, доступном для обмена
type Ad struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url,omitempty"`
	Category    Category   `json:"category"`
	Condition   Condition  `json:"condition"`
	IsExchanged bool       `json:"is_exchanged"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`

	// Дополнительные поля для API
	User *User `json:"user,omitempty"`
}

// IsValid проверяет, что категория входит в список допустимых
func (c Category) IsValid() bool {
	switch c {
	case CategoryBooks, CategoryElectronics, CategoryClothes,
		CategoryFurniture, CategoryToys, CategoryOther:
		return true
	}
	return false
}

// IsValid проверяет, что состояние входит в список допустимых
func (c Condition) IsValid() bool {
	return c == ConditionNew || c == ConditionUsed
}
