package symbol

// brazilNameMap maps issuer names to their most traded ticker. Some brokers
// (Rico in particular) print company names instead of tickers on operation
// rows. The slice is ordered and the first match wins, so names that are
// substrings of other names ("itau" vs "itausa") must come after them.
var brazilNameMap = []NameMapping{
	// energy
	{Pattern: "cemig", Symbol: "CMIG4"},
	{Pattern: "taesa", Symbol: "TAEE11"},
	{Pattern: "eletrobras", Symbol: "ELET3"},
	{Pattern: "copel", Symbol: "CPLE6"},
	{Pattern: "engie", Symbol: "EGIE3"},
	{Pattern: "energisa", Symbol: "ENGI11"},
	{Pattern: "equatorial", Symbol: "EQTL3"},
	{Pattern: "cpfl", Symbol: "CPFE3"},
	// banks
	{Pattern: "itausa", Symbol: "ITSA4"},
	{Pattern: "itau", Symbol: "ITUB4"},
	{Pattern: "bradesco", Symbol: "BBDC4"},
	{Pattern: "banco do brasil", Symbol: "BBAS3"},
	{Pattern: "santander", Symbol: "SANB11"},
	{Pattern: "btg", Symbol: "BPAC11"},
	// commodities
	{Pattern: "petrobras", Symbol: "PETR4"},
	{Pattern: "vale", Symbol: "VALE3"},
	{Pattern: "gerdau", Symbol: "GGBR4"},
	{Pattern: "csn", Symbol: "CSNA3"},
	{Pattern: "usiminas", Symbol: "USIM5"},
	{Pattern: "suzano", Symbol: "SUZB3"},
	{Pattern: "klabin", Symbol: "KLBN11"},
	// consumer
	{Pattern: "ambev", Symbol: "ABEV3"},
	{Pattern: "magazine luiza", Symbol: "MGLU3"},
	{Pattern: "lojas renner", Symbol: "LREN3"},
	{Pattern: "natura", Symbol: "NTCO3"},
	{Pattern: "weg", Symbol: "WEGE3"},
	{Pattern: "localiza", Symbol: "RENT3"},
	// others
	{Pattern: "bb seguridade", Symbol: "BBSE3"},
	{Pattern: "b3", Symbol: "B3SA3"},
	{Pattern: "jbs", Symbol: "JBSS3"},
	{Pattern: "brf", Symbol: "BRFS3"},
	{Pattern: "totvs", Symbol: "TOTS3"},
	{Pattern: "raia drogasil", Symbol: "RADL3"},
	{Pattern: "hapvida", Symbol: "HAPV3"},
}
