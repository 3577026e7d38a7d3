package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTranslations(t *testing.T) {
	t.Run("Should create translations with the embedded bundles", func(t *testing.T) {
		trans, err := NewTranslations("en", "")

		require.NoError(t, err)
		assert.Equal(t, "Section posted as a comment", trans.GetMessage("comment_posted", 0, nil))
	})

	t.Run("Should fail with empty language", func(t *testing.T) {
		trans, err := NewTranslations("", "")

		assert.Error(t, err)
		assert.Nil(t, trans)
	})

	t.Run("Should fail with a malformed language tag", func(t *testing.T) {
		_, err := NewTranslations("not a tag!", "")

		assert.Error(t, err)
	})

	t.Run("Should load extra locale files from disk", func(t *testing.T) {
		tmpDir := t.TempDir()
		createTestFile(t, tmpDir, "active.es.toml", `
		[comment_posted]
		other = "Sección publicada como comentario"
		`)

		trans, err := NewTranslations("es", tmpDir)

		require.NoError(t, err)
		assert.Equal(t, "Sección publicada como comentario", trans.GetMessage("comment_posted", 0, nil))
	})

	t.Run("Should fail on a broken locale file", func(t *testing.T) {
		tmpDir := t.TempDir()
		createTestFile(t, tmpDir, "active.es.toml", `[broken`)

		_, err := NewTranslations("es", tmpDir)

		assert.Error(t, err)
	})
}

func TestGetMessage(t *testing.T) {
	trans, err := NewTranslations("ja", "")
	require.NoError(t, err)

	t.Run("Should localize with template data", func(t *testing.T) {
		msg := trans.GetMessage("fetching_pr", 0, map[string]interface{}{"Number": 12})

		assert.Equal(t, "プルリクエスト #12 を取得しています", msg)
	})

	t.Run("Should report missing messages", func(t *testing.T) {
		assert.Equal(t, "Translation missing: nope", trans.GetMessage("nope", 0, nil))
	})

	t.Run("Should switch language", func(t *testing.T) {
		require.NoError(t, trans.SetLanguage("en"))
		assert.Equal(t, "Fetching pull request #7", trans.GetMessage("fetching_pr", 0, map[string]interface{}{"Number": 7}))

		assert.Error(t, trans.SetLanguage("fr"))
	})
}

func createTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Error creating test file: %v", err)
	}
}
