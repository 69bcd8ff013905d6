package common_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/qfx-ledger/cmd/common"
	"fjacquet/qfx-ledger/internal/logging"
	"fjacquet/qfx-ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubParser implements parser.StatementParser for testing.
type stubParser struct {
	valid bool
	err   error
}

func (p *stubParser) ParseFile(filePath string) (*models.StatementList, error) {
	return &models.StatementList{}, nil
}

func (p *stubParser) ValidateFormat(filePath string) (bool, error) {
	return p.valid, p.err
}

func (p *stubParser) SetLogger(logger logging.Logger) {}

func TestOpenOutputStdout(t *testing.T) {
	w, closeOutput, err := common.OpenOutput("")
	require.NoError(t, err)
	defer closeOutput()
	assert.Equal(t, os.Stdout, w)
}

func TestOpenOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "entries.beancount")

	w, closeOutput, err := common.OpenOutput(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("content"))
	require.NoError(t, err)
	closeOutput()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestRequireInput(t *testing.T) {
	t.Run("missing flag", func(t *testing.T) {
		log := &logging.MockLogger{}
		common.RequireInput("", log)
		assert.True(t, log.HasEntry("FATAL", "No input file given, use --input"))
	})

	t.Run("missing file", func(t *testing.T) {
		log := &logging.MockLogger{}
		common.RequireInput(filepath.Join(t.TempDir(), "nope.qfx"), log)
		assert.Len(t, log.GetEntriesByLevel("FATAL"), 1)
	})

	t.Run("existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "in.qfx")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
		log := &logging.MockLogger{}
		common.RequireInput(path, log)
		assert.Empty(t, log.GetEntriesByLevel("FATAL"))
	})
}

func TestValidateInput(t *testing.T) {
	t.Run("skipped when flag unset", func(t *testing.T) {
		log := &logging.MockLogger{}
		common.ValidateInput(&stubParser{valid: false}, "in.qfx", false, log)
		assert.Empty(t, log.Entries)
	})

	t.Run("valid format", func(t *testing.T) {
		log := &logging.MockLogger{}
		common.ValidateInput(&stubParser{valid: true}, "in.qfx", true, log)
		assert.Empty(t, log.GetEntriesByLevel("FATAL"))
		assert.True(t, log.HasEntry("INFO", "Validation successful."))
	})

	t.Run("invalid format", func(t *testing.T) {
		log := &logging.MockLogger{}
		common.ValidateInput(&stubParser{valid: false}, "in.qfx", true, log)
		assert.True(t, log.HasEntry("FATAL", "The file is not in a valid format"))
	})
}
