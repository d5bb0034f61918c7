package models

// Category groups products. The set is fixed at first run.
type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:text;not null" json:"name"`
}

func (Category) TableName() string { return "categories" }

// SeedCategories are inserted on first run.
var SeedCategories = []string{
	"Компьютеры",
	"Ноутбуки",
	"Комплектующие",
	"Периферия",
	"Программное обеспечение",
}
