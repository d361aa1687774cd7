package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// MenuOption is a selectable add-on (name + price delta).
type MenuOption struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type MenuOptions []MenuOption

func (o MenuOptions) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	b, err := json.Marshal(o)
	return string(b), err
}

func (o *MenuOptions) Scan(value any) error {
	if value == nil {
		*o = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	default:
		return errors.New("unsupported type for MenuOptions")
	}
}

type MenuItem struct {
	DTO
	Name        string      `json:"name"`
	Slug        string      `gorm:"unique;size:120" json:"slug"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Category    string      `json:"category"`
	ImageUrl    *string     `json:"imageUrl,omitempty"`
	Available   bool        `gorm:"default:true" json:"available"`
	Options     MenuOptions `gorm:"type:jsonb" json:"options"`
}

type CreateMenuItemInput struct {
	Name        string       `json:"name" validate:"required"`
	Description string       `json:"description"`
	Price       float64      `json:"price" validate:"required,gt=0"`
	Category    string       `json:"category" validate:"required"`
	ImageUrl    *string      `json:"imageUrl"`
	Available   *bool        `json:"available"`
	Options     []MenuOption `json:"options" validate:"dive"`
}

type EditMenuItemInput struct {
	Name        *string       `json:"name"`
	Description *string       `json:"description"`
	Price       *float64      `json:"price" validate:"omitempty,gt=0"`
	Category    *string       `json:"category"`
	ImageUrl    *string       `json:"imageUrl"`
	Available   *bool         `json:"available"`
	Options     *[]MenuOption `json:"options" validate:"omitempty,dive"`
}
