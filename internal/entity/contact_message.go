package entity

import "time"

// ContactMessage is a stored contact-form submission. No downstream
// processing is attached to these rows.
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(150);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);not null" json:"email"`
	Topic     string    `gorm:"type:varchar(150);not null" json:"topic"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the ContactMessage model.
func (ContactMessage) TableName() string {
	return "contact_messages"
}
