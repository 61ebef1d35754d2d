package models

// KeyKind identifies which field an identifier key was extracted from.
// Named kinds come from the structured field allow-list; KindNumberMatch is
// the synthetic kind for bare 8-15 digit tokens.
type KeyKind string

const (
	KindTSCode            KeyKind = "TSCode"
	KindTMCode            KeyKind = "TMCode"
	KindShippingOrderCode KeyKind = "ShippingOrderCode"
	KindOrderCode         KeyKind = "OrderCode"
	KindShopidLower       KeyKind = "Shopid"
	KindShopId            KeyKind = "ShopId"
	KindNumberMatch       KeyKind = "NumberMatch"
)

// IdentifierKey is a (kind, value) pair used to correlate related log lines.
// Keys are derived views over a record's message, not owned entities.
type IdentifierKey struct {
	Kind  KeyKind `json:"kind"`
	Value string  `json:"value"`
}

// IsNumeric reports whether the key came from the numeric fallback pass.
func (k IdentifierKey) IsNumeric() bool {
	return k.Kind == KindNumberMatch
}
