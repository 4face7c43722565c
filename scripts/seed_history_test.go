package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSamples(t *testing.T) {
	input := "# sample inputs\n1 2 4\n\n2 4 | 1 0.5\n"

	reqs, err := readSamples(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, []float64{1, 2, 4}, reqs[0].Numbers)
	assert.Nil(t, reqs[0].Weights)
	assert.Equal(t, []float64{1, 0.5}, reqs[1].Weights)
}

func TestReadSamplesBadLine(t *testing.T) {
	_, err := readSamples(strings.NewReader("1 2\n3 x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestPost(t *testing.T) {
	var got []seedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/calculations", r.URL.Path)
		assert.Equal(t, "seed", r.Header.Get("X-Client-ID"))

		var req seedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		got = append(got, req)
		if len(req.Weights) > 0 && len(req.Weights) != len(req.Numbers) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	created, skipped := post(srv.Client(), srv.URL, "seed", []seedRequest{
		{Numbers: []float64{1, 2, 4}},
		{Numbers: []float64{1, 2}, Weights: []float64{1}},
	})
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, skipped)
	assert.Len(t, got, 2)
}
