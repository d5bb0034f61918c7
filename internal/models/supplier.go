package models

// Supplier delivers stock recorded on income invoices.
type Supplier struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string `gorm:"type:text;not null" json:"name"`
	ContactPerson string `gorm:"column:contact_person;type:text" json:"contact_person"`
	Phone         string `gorm:"type:text" json:"phone"`
	Email         string `gorm:"type:text" json:"email"`
	Address       string `gorm:"type:text" json:"address"`
}

func (Supplier) TableName() string { return "suppliers" }
