package oracle

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"lending/core"
	"lending/core/mock"
	"lending/pkg/fixed"

	"github.com/golang/mock/gomock"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic(t *testing.T) {
	ctx := context.Background()

	s, err := StaticFromConfig(map[string]decimal.Decimal{
		"BTC": decimal.RequireFromString("30000.5"),
	})
	require.Nil(t, err)

	price, err := s.GetPrice(ctx, "BTC")
	require.Nil(t, err)
	assert.Equal(t, fixed.MustFromString("30000.5"), price)

	_, err = s.GetPrice(ctx, "ETH")
	assert.True(t, errors.Is(err, core.ErrInvalidPrice))

	// returned prices are copies
	price.SetUint64(1)
	again, _ := s.GetPrice(ctx, "BTC")
	assert.Equal(t, fixed.MustFromString("30000.5"), again)
}

func TestCacheCollapsesFetches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	source := mock.NewMockPriceOracle(ctrl)
	source.EXPECT().
		GetPrice(gomock.Any(), "BTC").
		DoAndReturn(func(ctx context.Context, asset string) (*uint256.Int, error) {
			time.Sleep(50 * time.Millisecond)
			return fixed.Int(2), nil
		}).
		Times(1)

	c := Cache(source, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			price, err := c.GetPrice(ctx, "BTC")
			assert.Nil(t, err)
			assert.Equal(t, fixed.Int(2), price)
		}()
	}
	wg.Wait()

	price, err := c.GetPrice(ctx, "BTC")
	require.Nil(t, err)
	assert.Equal(t, fixed.Int(2), price)
}

func TestCacheDoesNotKeepErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	source := mock.NewMockPriceOracle(ctrl)
	gomock.InOrder(
		source.EXPECT().GetPrice(gomock.Any(), "ETH").Return(nil, core.ErrInvalidPrice),
		source.EXPECT().GetPrice(gomock.Any(), "ETH").Return(fixed.Int(3), nil),
	)

	c := Cache(source, time.Minute)

	_, err := c.GetPrice(ctx, "ETH")
	assert.True(t, errors.Is(err, core.ErrInvalidPrice))

	price, err := c.GetPrice(ctx, "ETH")
	require.Nil(t, err)
	assert.Equal(t, fixed.Int(3), price)
}

func TestRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/prices/BTC":
			_, _ = w.Write([]byte(`{"asset":"BTC","price":"30000.25"}`))
		case "/api/prices/ZERO":
			_, _ = w.Write([]byte(`{"asset":"ZERO","price":"0"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code":404,"msg":"not found"}`))
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	r := NewRemote(srv.URL + "/")

	price, err := r.GetPrice(ctx, "BTC")
	require.Nil(t, err)
	assert.Equal(t, fixed.MustFromString("30000.25"), price)

	_, err = r.GetPrice(ctx, "ZERO")
	assert.True(t, errors.Is(err, core.ErrInvalidPrice))

	_, err = r.GetPrice(ctx, "DOGE")
	assert.NotNil(t, err)
}
