package domain

// AssetKind classifies the security behind an operation.
type AssetKind string

const (
	AssetStockBR AssetKind = "stock_br"
	AssetStockUS AssetKind = "stock_us"
	// AssetReitBR covers Brazilian FIIs (tickers ending in 11).
	AssetReitBR  AssetKind = "reit_br"
	AssetReitUS  AssetKind = "reit_us"
	AssetETFBR   AssetKind = "etf_br"
	AssetETFUS   AssetKind = "etf_us"
	AssetOption  AssetKind = "option"
	AssetFuture  AssetKind = "future"
	AssetBond    AssetKind = "bond"
	AssetOther   AssetKind = "other"
)

// String returns the string representation.
func (k AssetKind) String() string {
	return string(k)
}
