package lookup

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestLookupMapsResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "openfda.upc")
		w.Write([]byte(`{"results":[{
			"brand_name":"Aspirin",
			"generic_name":"acetylsalicylic acid",
			"labeler_name":"Bayer",
			"openfda":{
				"manufacturer_name":["Bayer AG"],
				"substance_name":["ASPIRIN"]
			}
		}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", testLogger())
	p, err := c.Lookup(context.Background(), 300450449109)
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, "Aspirin", p.Name)
	assert.Equal(t, "acetylsalicylic acid", p.Artikul)
	assert.Equal(t, "ASPIRIN", p.Category)
	assert.Equal(t, "Bayer AG", p.Brend)
	assert.Equal(t, "OpenFDA", p.Postavshik)
	assert.Equal(t, int64(300450449109), p.Barcode)
	assert.Equal(t, "N/A", p.Srok)
}

func TestLookupFallsBackToPlaceholders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", testLogger())
	p, err := c.Lookup(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, "Nom mavjud emas", p.Name)
	assert.Equal(t, "Artikul mavjud emas", p.Artikul)
	assert.Equal(t, "Brend mavjud emas", p.Brend)
}

func TestLookupMissIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", testLogger())
	p, err := c.Lookup(context.Background(), 1)
	assert.NoError(t, err)
	assert.Nil(t, p)
}

func TestLookupEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", testLogger())
	p, err := c.Lookup(context.Background(), 1)
	assert.NoError(t, err)
	assert.Nil(t, p)
}

func TestLookupServerErrorIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", testLogger())
	_, err := c.Lookup(context.Background(), 1)
	assert.Error(t, err)
}
