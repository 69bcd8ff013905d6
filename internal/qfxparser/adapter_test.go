package qfxparser

import (
	"testing"

	"fjacquet/qfx-ledger/internal/logging"
	"fjacquet/qfx-ledger/internal/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ parser.StatementParser = (*Adapter)(nil)

func TestAdapterParseFile(t *testing.T) {
	path := writeTempFile(t, bankSample)

	adapter := NewAdapter(&logging.MockLogger{})
	list, err := adapter.ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, list.Statements, 1)
}

func TestAdapterValidateFormat(t *testing.T) {
	path := writeTempFile(t, bankSample)

	adapter := NewAdapter(nil)
	valid, err := adapter.ValidateFormat(path)
	require.NoError(t, err)
	assert.True(t, valid)
}
