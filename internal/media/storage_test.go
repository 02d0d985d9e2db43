package media

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadContext(t *testing.T, field, filename string, content []byte) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if field != "" {
		part, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.WriteField("name", "Heat"))
	require.NoError(t, w.Close())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/movie/create/", &body)
	c.Request.Header.Set("Content-Type", w.FormDataContentType())
	return c
}

func newTestStorage(t *testing.T, maxSize int64) *Storage {
	s := NewStorage(t.TempDir(), maxSize)
	s.now = func() time.Time { return time.Date(2024, time.March, 7, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestSaveUpload(t *testing.T) {
	s := newTestStorage(t, 1024)
	c := uploadContext(t, "poster", "Heat.JPG", []byte("fake image"))

	rel, err := s.SaveUpload(c, "poster", "movies")
	require.NoError(t, err)
	require.NotNil(t, rel)
	assert.True(t, strings.HasPrefix(*rel, "movies/2024/03/07/"), *rel)
	assert.True(t, strings.HasSuffix(*rel, ".jpg"), *rel)

	data, err := os.ReadFile(filepath.Join(s.Root(), filepath.FromSlash(*rel)))
	require.NoError(t, err)
	assert.Equal(t, "fake image", string(data))

	require.NoError(t, s.Remove(rel))
	require.NoError(t, s.Remove(rel))
}

func TestSaveUpload_NoFile(t *testing.T) {
	s := newTestStorage(t, 1024)

	rel, err := s.SaveUpload(uploadContext(t, "", "", nil), "poster", "movies")
	require.NoError(t, err)
	assert.Nil(t, rel)

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/movie/create/", strings.NewReader(`{"name":"Heat"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	rel, err = s.SaveUpload(c, "poster", "movies")
	require.NoError(t, err)
	assert.Nil(t, rel)
}

func TestSaveUpload_Rejects(t *testing.T) {
	s := newTestStorage(t, 4)

	_, err := s.SaveUpload(uploadContext(t, "poster", "big.png", []byte("too many bytes")), "poster", "movies")
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = s.SaveUpload(uploadContext(t, "poster", "x.exe", []byte("ab")), "poster", "movies")
	assert.ErrorIs(t, err, ErrUnsupportedType)

	entries, err := os.ReadDir(s.Root())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
