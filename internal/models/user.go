package models

// Roles known to the shop. Only admin is seeded.
const (
	RoleAdmin = "admin"
)

// User is a shop employee allowed to log in.
type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"type:text;uniqueIndex;not null" json:"username"`
	Password string `gorm:"type:text;not null" json:"-"`
	Role     string `gorm:"type:text;not null" json:"role"`
	FullName string `gorm:"column:full_name;type:text;not null" json:"full_name"`
}

func (User) TableName() string { return "users" }
