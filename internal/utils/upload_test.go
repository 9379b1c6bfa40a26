package utils

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhive-dev/studyhive/internal/apperrors"
)

func multipartFile(t *testing.T, field, filename, contentType string, body []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)

	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	_, fileHeader, err := req.FormFile(field)
	require.NoError(t, err)

	return fileHeader
}

func TestUploaderSaveAndRemove(t *testing.T) {
	uploader := NewUploader(t.TempDir())

	file := multipartFile(t, "avatar", "me.png", "image/png", []byte("png-bytes"))

	storedPath, err := uploader.Save("profile", file)
	require.NoError(t, err)

	info, err := os.Stat(storedPath)
	require.NoError(t, err)
	assert.Equal(t, int64(len("png-bytes")), info.Size())

	require.NoError(t, uploader.Remove(storedPath))

	_, err = os.Stat(storedPath)
	assert.True(t, os.IsNotExist(err))

	// Removing twice is fine.
	assert.NoError(t, uploader.Remove(storedPath))
}

func TestUploaderRejectsUnknownCategory(t *testing.T) {
	uploader := NewUploader(t.TempDir())

	file := multipartFile(t, "f", "notes.pdf", "application/pdf", []byte("pdf"))

	_, err := uploader.Save("bogus", file)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.From(err).Status)
}

func TestUploaderRejectsDisallowedExtension(t *testing.T) {
	uploader := NewUploader(t.TempDir())

	file := multipartFile(t, "avatar", "evil.exe", "application/octet-stream", []byte("mz"))

	_, err := uploader.Save("profile", file)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.From(err).Status)
}

func TestUploaderRejectsMismatchedContentType(t *testing.T) {
	uploader := NewUploader(t.TempDir())

	file := multipartFile(t, "avatar", "me.png", "application/pdf", []byte("x"))

	_, err := uploader.Save("profile", file)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.From(err).Status)
}

func TestUploaderRejectsOversizeFile(t *testing.T) {
	uploader := NewUploader(t.TempDir())

	// Validation happens before the file is opened, so a synthetic header
	// with an inflated size is enough.
	file := &multipart.FileHeader{
		Filename: "huge.png",
		Size:     6 << 20,
		Header:   textproto.MIMEHeader{"Content-Type": []string{"image/png"}},
	}

	_, err := uploader.Save("profile", file)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.From(err).Status)
}
