package database

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// schemaMigration records an applied SQL migration file.
type schemaMigration struct {
	Name string `gorm:"primaryKey;size:255"`
}

func (schemaMigration) TableName() string {
	return "schema_migrations"
}

// RunMigrations auto-migrates models, then applies the .sql files in
// migrationsDir in name order, each at most once. SQL files only run on
// postgres; a missing directory is not an error.
func RunMigrations(db *gorm.DB, migrationsDir string, log *zap.Logger, models ...any) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}

	if db.Dialector.Name() != "postgres" || migrationsDir == "" {
		return nil
	}

	entries, err := os.ReadDir(migrationsDir)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info("no migrations directory", zap.String("dir", migrationsDir))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	if err := db.AutoMigrate(&schemaMigration{}); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, name := range files {
		var count int64
		if err := db.Model(&schemaMigration{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if count > 0 {
			log.Debug("skipping applied migration", zap.String("name", name))
			continue
		}

		content, err := os.ReadFile(filepath.Join(migrationsDir, name))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", name, err)
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(content)).Error; err != nil {
				return err
			}
			return tx.Create(&schemaMigration{Name: name}).Error
		})
		if err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", name, err)
		}
		log.Info("applied migration", zap.String("name", name))
	}
	return nil
}
