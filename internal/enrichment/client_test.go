package enrichment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian/salesreport/internal/domain"
)

const catalogPayload = `{
	"products": [
		{"id": 1, "title": "Essence Mascara Lash Princess", "category": "beauty", "brand": "Essence", "price": 9.99, "rating": 4.94},
		{"id": 2, "title": "Eyeshadow Palette with Mirror", "category": "beauty", "brand": "Glamour Beauty", "price": 19.99, "rating": 3.28},
		{"id": 3, "title": "Powder Canister", "category": "beauty", "price": 14.99, "rating": 3.82}
	]
}`

func TestFetchProductInfoResolvesRequestedIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		w.Write([]byte(catalogPayload))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, zerolog.Nop())

	mapping, err := c.FetchProductInfo(context.Background(), []string{"P1", "P3", "P999", "bogus"})
	require.NoError(t, err)

	require.Len(t, mapping, 2)

	p1 := mapping["P1"]
	assert.Equal(t, "P1", p1.ProductID)
	assert.Equal(t, "Essence Mascara Lash Princess", p1.Title)
	assert.Equal(t, "Essence", p1.Supplier)
	require.NotNil(t, p1.ListPrice)
	assert.Equal(t, 9.99, *p1.ListPrice)

	// id 3 has no brand in the payload.
	assert.Equal(t, domain.UnknownField, mapping["P3"].Supplier)

	_, ok := mapping["P999"]
	assert.False(t, ok, "misses are allowed, not errors")
}

func TestFetchProductInfoServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, zerolog.Nop())

	_, err := c.FetchProductInfo(context.Background(), []string{"P1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestFetchProductInfoBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, zerolog.Nop())

	_, err := c.FetchProductInfo(context.Background(), []string{"P1"})
	require.Error(t, err)
}

func TestFetchProductInfoRespectsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Minute, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.FetchProductInfo(ctx, []string{"P1"})
	require.Error(t, err)
}

func TestNumericID(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"P1", 1, true},
		{"P101", 101, true},
		{"Q7", 0, false},
		{"P0", 0, false},
		{"P-3", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		n, ok := numericID(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if ok {
			assert.Equal(t, tt.want, n, tt.in)
		}
	}
}
