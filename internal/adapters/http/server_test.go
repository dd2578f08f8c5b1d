package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/perch"
	debughttp "github.com/aretw0/perch/internal/adapters/http"
	"github.com/aretw0/perch/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugServer(t *testing.T) {
	r := perch.New(perch.WithOutput(io.Discard))
	r.Render(domain.NewElement("div", nil, domain.NewTextElement("hello")))

	ts := httptest.NewServer(debughttp.NewHandler(r))
	defer ts.Close()

	t.Run("Tree Before Flush", func(t *testing.T) {
		res, err := http.Get(ts.URL + "/tree")
		require.NoError(t, err)
		defer res.Body.Close()

		body, _ := io.ReadAll(res.Body)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, string(body), "WORK TREE:")
		assert.Contains(t, string(body), "*pending*")
	})

	t.Run("Flush Commits", func(t *testing.T) {
		res, err := http.Post(ts.URL+"/flush", "", nil)
		require.NoError(t, err)
		defer res.Body.Close()

		body, _ := io.ReadAll(res.Body)
		assert.Contains(t, string(body), "HOST INSTANCES:")
		assert.Contains(t, string(body), "div#")
	})

	t.Run("Children Snapshot", func(t *testing.T) {
		res, err := http.Get(ts.URL + "/children")
		require.NoError(t, err)
		defer res.Body.Close()

		var snap []domain.NodeSnapshot
		require.NoError(t, json.NewDecoder(res.Body).Decode(&snap))
		require.Len(t, snap, 1)
		assert.Equal(t, "div", snap[0].Type)
		require.Len(t, snap[0].Children, 1)
		assert.Equal(t, "hello", snap[0].Children[0].Text)
	})
}

func TestDebugServerEmptySnapshot(t *testing.T) {
	r := perch.New(perch.WithOutput(io.Discard))
	ts := httptest.NewServer(debughttp.NewHandler(r))
	defer ts.Close()

	res, err := http.Get(ts.URL + "/children")
	require.NoError(t, err)
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	assert.JSONEq(t, "[]", string(body))
}
