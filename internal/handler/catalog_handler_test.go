package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogHandler_List_HTML(t *testing.T) {
	env := newTestEnv(t, catalogBackend(), nil)

	w := env.do(call{method: http.MethodGet, path: "/perfumes?sort=price-low"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, "Oud Royal")
	assert.Contains(t, body, "Rp90.000")
	assert.Contains(t, body, "Masuk untuk Membeli")
}

func TestCatalogHandler_List_JSON(t *testing.T) {
	env := newTestEnv(t, catalogBackend(), nil)

	w := env.do(call{method: http.MethodGet, path: "/perfumes?brand=Noir", json: true})

	require.Equal(t, http.StatusOK, w.Code)
	env2 := decodeEnvelope(t, w)
	assert.True(t, env2.Success)

	var data struct {
		Perfumes []struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"perfumes"`
		Brands []string `json:"brands"`
		Total  int      `json:"total"`
		Filter struct {
			Brand string `json:"brand"`
		} `json:"filter"`
	}
	require.NoError(t, json.Unmarshal(env2.Data, &data))
	require.Len(t, data.Perfumes, 1)
	assert.Equal(t, "Amber Night", data.Perfumes[0].Name)
	assert.Equal(t, 2, data.Total)
	assert.Equal(t, []string{"Jamal", "Noir"}, data.Brands)
	assert.Equal(t, "Noir", data.Filter.Brand)
}

func TestCatalogHandler_List_BackendDown(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/perfumes", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	env := newTestEnv(t, mux, nil)

	w := env.do(call{method: http.MethodGet, path: "/perfumes"})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), catalogLoadFailedMessage)
}

func TestCatalogHandler_Detail(t *testing.T) {
	env := newTestEnv(t, catalogBackend(), nil)

	t.Run("customer can buy", func(t *testing.T) {
		w := env.do(call{method: http.MethodGet, path: "/perfumes/1", user: customer})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Tambah ke Keranjang")
	})

	t.Run("out of stock", func(t *testing.T) {
		w := env.do(call{method: http.MethodGet, path: "/perfumes/2", user: customer})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Stok Habis")
	})

	t.Run("unknown perfume", func(t *testing.T) {
		w := env.do(call{method: http.MethodGet, path: "/perfumes/99", json: true})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.False(t, decodeEnvelope(t, w).Success)
	})
}

func TestCatalogHandler_Brands(t *testing.T) {
	env := newTestEnv(t, catalogBackend(), nil)

	w := env.do(call{method: http.MethodGet, path: "/brands", json: true})

	require.Equal(t, http.StatusOK, w.Code)
	var brands []BrandSummary
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &brands))
	assert.Equal(t, []BrandSummary{{Name: "Jamal", Count: 1}, {Name: "Noir", Count: 1}}, brands)
}
