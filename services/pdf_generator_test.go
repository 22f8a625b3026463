package services

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAgendaPDFOptions(t *testing.T) {
	opts := AgendaPDFOptions()
	assert.Equal(t, "landscape", opts.PageOrientation)
	assert.Equal(t, "A4", opts.PageSize)
	assert.Equal(t, 36, opts.MarginTop)
	assert.Equal(t, 36, opts.MarginBottom)
	assert.Equal(t, 36, opts.MarginLeft)
	assert.Equal(t, 36, opts.MarginRight)
}

func TestGeneratePDFSmoke(t *testing.T) {
	// The heavy path needs a Chrome binary; only run where one is declared
	if os.Getenv("CHROME_PATH") == "" {
		t.Skip("Skipping PDF generation test: CHROME_PATH not set")
	}

	pdf, err := GeneratePDF("<h1>Agenda</h1>", AgendaPDFOptions())
	assert.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
