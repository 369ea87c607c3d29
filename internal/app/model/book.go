package model

import (
	"time"

	"gorm.io/gorm"
)

type Book struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"not null;index" json:"title"`
	Author      string         `gorm:"not null;index" json:"author"`
	ISBN        string         `gorm:"uniqueIndex;not null" json:"isbn"`
	Price       float64        `gorm:"not null" json:"price"`
	Description string         `gorm:"type:text" json:"description"`
	CoverImage  string         `json:"cover_image"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Categories []Category  `gorm:"many2many:books_categories" json:"categories,omitempty"`
	CartItems  []CartItem  `gorm:"foreignKey:BookID" json:"-"`
	OrderItems []OrderItem `gorm:"foreignKey:BookID" json:"-"`
}

func (Book) TableName() string {
	return "books"
}
