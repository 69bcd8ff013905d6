package extract_test

import (
	"testing"

	"fjacquet/qfx-ledger/cmd/extract"

	"github.com/stretchr/testify/assert"
)

func TestExtractCommand_Metadata(t *testing.T) {
	assert.Equal(t, "extract", extract.Cmd.Use)
	assert.Contains(t, extract.Cmd.Short, "ledger entries")
	assert.NotNil(t, extract.Cmd.Run)
}

func TestExtractCommand_Flags(t *testing.T) {
	assert.NotNil(t, extract.Cmd.Flags().Lookup("account"))
}
