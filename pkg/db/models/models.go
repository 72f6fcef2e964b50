package models

// All lists every model, in dependency order, for AutoMigrate in tests and dev.
func All() []any {
	return []any{
		&Role{},
		&User{},
		&Store{},
		&Category{},
		&Item{},
		&StoreInventory{},
		&Customer{},
		&PackagingOption{},
		&DeliveryPlan{},
		&DeliveryItem{},
		&Stocktake{},
		&StocktakeItem{},
		&ProductionTask{},
		&AuditLog{},
	}
}
