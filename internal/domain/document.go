package domain

// Row is one table row of cell strings. Empty cells are empty strings.
type Row []string

// TableGrid is an ordered sequence of rows extracted from one table.
type TableGrid []Row

// Document is the extracted content of one brokerage document, produced by
// the external decoding collaborator before the engine runs.
type Document struct {
	// Text is all page text concatenated in page order.
	Text string
	// Tables are all table grids found across pages, in page order.
	Tables []TableGrid
	// Encrypted is set by the decoding collaborator when the document could
	// not be opened because no (or an incorrect) passphrase was supplied.
	Encrypted bool
}
