package shop

import "time"

// Transaction operation names, used as metric labels
const OpPurchase = "shop_purchase"

// Catalog cache
const (
	CatalogCacheSchemaVersion = "1.0"
	DefaultCatalogCacheTTL    = 30 * time.Second
	catalogKeyActive          = "active"
)

// Log messages
const (
	LogMsgPurchaseSucceeded = "Item purchased"
	LogMsgPurchaseRenewed   = "Expired item renewed"
	LogMsgPurchaseRejected  = "Purchase rejected"
	LogMsgPurchaseFailed    = "Purchase failed"
	LogMsgItemCreated       = "Shop item created"
	LogMsgItemUpdated       = "Shop item updated"
	LogMsgItemDeactivated   = "Shop item deactivated"
)
