package db

import "gorm.io/gorm"

// Database hands out the underlying GORM handle to repositories. Each request
// works through its own session/transaction scope on this shared handle.
type Database interface {
	GetDB() *gorm.DB
}

type GormDatabase struct {
	DB *gorm.DB
}

func (g *GormDatabase) GetDB() *gorm.DB { return g.DB }
