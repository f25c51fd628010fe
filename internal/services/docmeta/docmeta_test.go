package docmeta

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBrazilNoteDate_LabeledWins(t *testing.T) {
	text := "emitida em 01/02/2024\nData Pregão: 15/01/2024"

	d := BrazilNoteDate(text)
	require.NotNil(t, d)
	require.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *d)
}

func TestBrazilNoteDate_BareFallback(t *testing.T) {
	d := BrazilNoteDate("nota emitida 15/01/2024")
	require.NotNil(t, d)
	require.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *d)
}

func TestBrazilNoteDate_None(t *testing.T) {
	require.Nil(t, BrazilNoteDate("sem data aqui"))
}

func TestNoteNumber(t *testing.T) {
	require.Equal(t, "123456", NoteNumber("Nr. Nota: 123456"))
	require.Equal(t, "789", NoteNumber("NOTA 789"))
	require.Equal(t, "42", NoteNumber("Número: 42"))
	require.Equal(t, "", NoteNumber("no number"))
}

func TestLabeledUSDate(t *testing.T) {
	d := LabeledUSDate("Confirmation Date: 10/31/2025", "confirmation date")
	require.NotNil(t, d)
	require.Equal(t, time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC), *d)

	// two-digit year
	d = LabeledUSDate("Current Trade Date: 12/16/22", "current trade date")
	require.NotNil(t, d)
	require.Equal(t, time.Date(2022, 12, 16, 0, 0, 0, 0, time.UTC), *d)

	require.Nil(t, LabeledUSDate("no dates", "confirmation date"))
}

func TestGenericDate(t *testing.T) {
	d := GenericDate("statement for 2024-03-20")
	require.NotNil(t, d)
	require.Equal(t, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), *d)

	d = GenericDate("pregão de 20/03/2024")
	require.NotNil(t, d)
	require.Equal(t, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), *d)

	require.Nil(t, GenericDate("nothing"))
}
