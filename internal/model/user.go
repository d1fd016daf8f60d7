package model

import "time"

type Usuario struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Nome  string `gorm:"size:128" json:"nome"`
	Email string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	// bcrypt hash, never the plain password
	Senha     string    `gorm:"size:128;not null" json:"-"`
	Ativo     bool      `gorm:"not null;default:true" json:"ativo"`
	Admin     bool      `gorm:"not null;default:false" json:"admin"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
