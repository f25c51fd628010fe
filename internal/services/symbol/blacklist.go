package symbol

// blacklist holds tokens that satisfy a ticker grammar but are known
// non-tickers: currency codes, table headers, and common words in both
// Portuguese and English.
var blacklist = map[string]struct{}{
	// currencies
	"USD": {}, "BRL": {}, "EUR": {}, "GBP": {}, "CAD": {}, "AUD": {}, "JPY": {},
	// headers
	"BUY": {}, "SELL": {}, "DATE": {}, "TIME": {}, "TOTAL": {}, "QTD": {}, "QTDE": {},
	// portuguese
	"NOTA": {}, "CORR": {}, "TAXA": {}, "VALOR": {}, "PRECO": {}, "TIPO": {},
	// english
	"STOCK": {}, "BOND": {}, "ETF": {}, "REIT": {}, "PRICE": {}, "AMOUNT": {},
	// common words
	"THE": {}, "AND": {}, "FOR": {}, "NOT": {}, "ARE": {}, "BUT": {}, "WAS": {},
}

// Blacklisted reports whether token is a known non-ticker.
func Blacklisted(token string) bool {
	_, ok := blacklist[token]
	return ok
}
