package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, cliente *Cliente) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Cliente, error)
}
