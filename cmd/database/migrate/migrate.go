package migration

import (
	"Foodgram-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	models := []interface{}{
		&entities.User{},
		&entities.Follow{},
		&entities.Tag{},
		&entities.Ingredient{},
		&entities.Recipe{},
		&entities.RecipeIngredient{},
		&entities.Favorite{},
		&entities.Cart{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			log.Fatalf("Error migrating %T: %v", model, err)
			return err
		}
	}

	// AutoMigrate cannot express a cross-column CHECK.
	db.Exec(`ALTER TABLE follows DROP CONSTRAINT IF EXISTS chk_follow_not_self;`)
	db.Exec(`ALTER TABLE follows ADD CONSTRAINT chk_follow_not_self CHECK (follower_id <> followee_id);`)

	fmt.Println("Database migration complete")
	return nil
}
