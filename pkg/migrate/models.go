package migrate

import "github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"

// Postgres-only SQL cannot run on sqlite, so local sqlite runs use AutoMigrate.
func modelsForDev() []any {
	return models.All()
}
