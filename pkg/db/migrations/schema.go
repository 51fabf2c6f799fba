package migrations

import (
	"github.com/mwantia/pathways/pkg/db/models"
	"gorm.io/gorm"
)

func schema() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create consultation inquiries",
			Up: func(db *gorm.DB) error {
				return db.AutoMigrate(&models.Inquiry{})
			},
			Down: func(db *gorm.DB) error {
				return db.Migrator().DropTable(&models.Inquiry{})
			},
		},
		{
			Version:     2,
			Description: "Index inquiries by submission time",
			Up: func(db *gorm.DB) error {
				return db.Exec("CREATE INDEX IF NOT EXISTS idx_inquiries_created_at ON inquiries (created_at)").Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP INDEX IF EXISTS idx_inquiries_created_at").Error
			},
		},
	}
}
