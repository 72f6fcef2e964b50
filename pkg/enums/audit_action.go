package enums

// Audit actions recorded against entities.
const (
	AuditActionDeliveryStatusChanged   = "delivery_plan.status_changed"
	AuditActionDeliveryCreated         = "delivery_plan.created"
	AuditActionDeliveryDeleted         = "delivery_plan.deleted"
	AuditActionDeliveryItemsReplaced   = "delivery_plan.items_replaced"
	AuditActionDeliveryItemWeightSet   = "delivery_item.weight_set"
	AuditActionProductionTaskCreated   = "production_task.created"
	AuditActionProductionTaskUpdated   = "production_task.updated"
	AuditActionProductionTaskOverride  = "production_task.status_override"
	AuditActionStocktakeSubmitted      = "stocktake.submitted"
	AuditActionUserCreated             = "user.created"
	AuditActionRoleUpdated             = "role.updated"
	AuditActionUserLogin               = "user.login"
	AuditActionInventoryTargetUpserted = "store_inventory.upserted"
	AuditActionStoreCreated            = "store.created"
	AuditActionStoreUpdated            = "store.updated"
	AuditActionCustomerCreated         = "customer.created"
	AuditActionCustomerUpdated         = "customer.updated"
	AuditActionCategoryCreated         = "category.created"
	AuditActionItemCreated             = "item.created"
	AuditActionPackagingCreated        = "packaging_option.created"
	AuditActionPackagingUpdated        = "packaging_option.updated"
)
