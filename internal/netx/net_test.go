package netx

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadToPresignedURL(t *testing.T) {
	file := []byte("\x89PNG fake")

	t.Run("success", func(t *testing.T) {
		var gotMethod, gotType string
		var gotBody []byte
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotType = r.Header.Get("Content-Type")
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		err := UploadToPresignedURL(context.Background(), srv.Client(), srv.URL+"/avatars/u/k?X-Amz-Signature=abc", "image/png", file)
		require.NoError(t, err)
		assert.Equal(t, http.MethodPut, gotMethod)
		assert.Equal(t, "image/png", gotType)
		assert.Equal(t, file, gotBody)
	})

	t.Run("default content type", func(t *testing.T) {
		var gotType string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotType = r.Header.Get("Content-Type")
		}))
		defer srv.Close()

		require.NoError(t, UploadToPresignedURL(context.Background(), nil, srv.URL, "", file))
		assert.Equal(t, "application/octet-stream", gotType)
	})

	t.Run("non-2xx", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("SignatureDoesNotMatch"))
		}))
		defer srv.Close()

		err := UploadToPresignedURL(context.Background(), srv.Client(), srv.URL, "", file)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
		assert.Contains(t, err.Error(), "SignatureDoesNotMatch")
	})

	t.Run("bad url", func(t *testing.T) {
		err := UploadToPresignedURL(context.Background(), nil, "://bad", "", file)
		require.Error(t, err)
	})
}

func TestObjectURL(t *testing.T) {
	got, err := ObjectURL("http://127.0.0.1:9000/avatars/avatars/u1/k1?X-Amz-Algorithm=AWS4&X-Amz-Expires=900")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000/avatars/avatars/u1/k1", got)

	_, err = ObjectURL("http://[::1")
	require.Error(t, err)
}
