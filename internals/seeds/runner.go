package seeds

import (
	"log"

	"gorm.io/gorm"
)

// Run executes every seeder. Each one is idempotent, so running the app with
// SEED_USERS=true on every boot is safe.
func Run(db *gorm.DB) error {
	log.Println("[SEED] Running seeders...")
	if err := SeedUserAccounts(db); err != nil {
		return err
	}
	log.Println("[SEED] Done.")
	return nil
}
