package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lending/core"
	"lending/internal/ratemodel"
	"lending/pkg/fixed"
	"lending/service/oracle"
	"lending/service/pool"
	"lending/service/transfer"
	"lending/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) http.Handler {
	ctx := context.Background()

	prices := oracle.NewStatic()
	prices.SetPrice("BTC", fixed.MustFromString("2"))

	models := ratemodel.Registry{"fixed": &ratemodel.Fixed{Rate: fixed.MustFromString("0.05")}}
	book := transfer.NewBook("vault")

	p, err := pool.New(pool.Config{}, memory.New(), prices, models, book, &core.Config{Admins: []string{"admin"}}, nil)
	require.NoError(t, err)

	require.NoError(t, p.ListMarket(ctx, "admin", "BTC", "fixed", fixed.MustFromString("0.1"), fixed.MustFromString("0.5")))
	require.NoError(t, book.Mint("BTC", "alice", fixed.Int(100)))
	book.Approve("BTC", "alice", fixed.Int(100))
	require.NoError(t, p.Supply(ctx, "alice", "BTC", fixed.Int(100)))

	return New(p, models).HandleRestAPI()
}

func get(t *testing.T, h http.Handler, path string, v interface{}) int {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
	return w.Code
}

func TestMarkets(t *testing.T) {
	h := newServer(t)

	var resp struct {
		Data []struct {
			Asset            string `json:"asset"`
			TotalSupplied    string `json:"total_supplied"`
			CollateralFactor string `json:"collateral_factor"`
			BorrowRate       string `json:"borrow_rate"`
		} `json:"data"`
	}

	require.Equal(t, http.StatusOK, get(t, h, "/markets", &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "BTC", resp.Data[0].Asset)
	assert.Equal(t, "100", resp.Data[0].TotalSupplied)
	assert.Equal(t, "0.5", resp.Data[0].CollateralFactor)
	assert.Equal(t, "0.05", resp.Data[0].BorrowRate)
}

func TestMarketNotListed(t *testing.T) {
	h := newServer(t)

	var resp struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}

	assert.Equal(t, http.StatusNotFound, get(t, h, "/markets/ETH", &resp))
	assert.Equal(t, int(core.ErrMarketNotListed), resp.Code)
}

func TestAccount(t *testing.T) {
	h := newServer(t)

	var resp struct {
		Data struct {
			Positions []struct {
				Asset    string `json:"asset"`
				Supplied string `json:"supplied"`
			} `json:"positions"`
			CollateralValue string `json:"collateral_value"`
			Health          string `json:"health"`
			Liquidatable    bool   `json:"liquidatable"`
		} `json:"data"`
	}

	require.Equal(t, http.StatusOK, get(t, h, "/accounts/alice", &resp))
	require.Len(t, resp.Data.Positions, 1)
	assert.Equal(t, "100", resp.Data.Positions[0].Supplied)
	assert.Equal(t, "100", resp.Data.CollateralValue)
	assert.Equal(t, "1", resp.Data.Health)
	assert.False(t, resp.Data.Liquidatable)
}

func TestEvents(t *testing.T) {
	h := newServer(t)

	var resp struct {
		Data []struct {
			ID     int64  `json:"id"`
			Type   string `json:"type"`
			Amount string `json:"amount"`
		} `json:"data"`
	}

	require.Equal(t, http.StatusOK, get(t, h, "/events?asset=BTC&limit=10", &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "MarketListed", resp.Data[0].Type)
	assert.Equal(t, "Supplied", resp.Data[1].Type)
	assert.Equal(t, "100", resp.Data[1].Amount)

	var bad struct {
		Code int `json:"code"`
	}
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/events?limit=-1", &bad))
}
