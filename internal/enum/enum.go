package enum

// ── Screens (each maps to a physical display filtering the shared queue) ──

const (
	ScreenMesas    = "mesas"
	ScreenCocina   = "cocina"
	ScreenCocina2  = "cocina2"
	ScreenServicio = "servicio"
)

// ── Table kinds (derived from the roster name, never stored) ──

const (
	TableKindDineIn   = "DINE_IN"
	TableKindTakeaway = "TAKEAWAY"
	TableKindDelivery = "DELIVERY"
	TableKindCourier  = "COURIER"
)

// ── Modifier kinds ──

const (
	ModifierAdd    = "add"
	ModifierRemove = "remove"
)

// ── Item actions exposed to kitchen/service screens ──

const (
	ActionDone    = "done"
	ActionMarchar = "marchar"
	ActionServed  = "served"
)

// ── Payment methods ──

const (
	PaymentMethodCash = "CASH"
	PaymentMethodCard = "CARD"
)

// ── Serve policies (what "mark served" does to the line item) ──

const (
	ServePolicyFlag   = "flag"   // keep the item, set served=true
	ServePolicyRemove = "remove" // delete the item from the table
)
