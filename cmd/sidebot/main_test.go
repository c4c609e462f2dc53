package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/sidebot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPromptTemplate(t *testing.T) {
	t.Parallel()

	t.Run("explicit file", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "prompt.md", "Rows: ${ROWS}")
		got, err := loadPromptTemplate(path)
		require.NoError(t, err)
		assert.Equal(t, "Rows: ${ROWS}", got)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		t.Parallel()
		_, err := loadPromptTemplate(filepath.Join(t.TempDir(), "missing.md"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLoadDataset(t *testing.T) {
	t.Parallel()

	t.Run("built-in sample", func(t *testing.T) {
		t.Parallel()
		ds, err := loadDataset("")
		require.NoError(t, err)
		assert.Positive(t, ds.Len())
	})

	t.Run("csv file", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "tips.csv", "total_bill,tip,day\n10,2,Sun\n")
		ds, err := loadDataset(path)
		require.NoError(t, err)
		assert.Equal(t, 1, ds.Len())
	})

	t.Run("invalid file", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "tips.csv", "total_bill,tip,day\n0,2,Sun\n")
		_, err := loadDataset(path)
		assert.ErrorIs(t, err, sidebot.ErrValidation)
	})
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("no path is a no-op logger", func(t *testing.T) {
		t.Parallel()
		logger, err := newLogger("")
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(0))
	})

	t.Run("writes JSON to file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "sidebot.log")
		logger, err := newLogger(path)
		require.NoError(t, err)

		logger.Info("session started")
		_ = logger.Sync()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"session started"`)
	})
}
