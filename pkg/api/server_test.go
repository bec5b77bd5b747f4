package api_test

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crowdfund/pkg/api"
	"crowdfund/pkg/campaign"
	"crowdfund/pkg/campaign/store"
	"crowdfund/pkg/vault"
	"crowdfund/pkg/wallet"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func newAddress(t *testing.T) string {
	w, err := wallet.CreateWallet()
	require.NoError(t, err)
	return w.Address
}

// newTestServer builds a campaign with one contributor and one request and
// wraps it in the read-only API
func newTestServer(t *testing.T) (*httptest.Server, *campaign.Service, string, string) {
	custody := vault.NewVault()
	escrow := vault.NewEscrow(custody, newAddress(t))
	admin := newAddress(t)

	service := campaign.NewService(
		admin,
		&campaign.Config{
			Goal:            big.NewInt(1000),
			DeadlineOffset:  time.Hour,
			ApprovalPercent: 50,
		},
		store.NewMemoryStore(),
		fixedClock{now: time.Unix(1700000000, 0)},
		escrow,
		nil,
		zerolog.Nop(),
	)

	alice := newAddress(t)
	require.NoError(t, service.Contribute(alice, big.NewInt(600)))
	_, err := service.CreateRequest(admin, "hosting", newAddress(t), big.NewInt(300))
	require.NoError(t, err)

	ts := httptest.NewServer(api.NewServer(service, 0, zerolog.Nop()).Handler())
	t.Cleanup(ts.Close)
	return ts, service, admin, alice
}

func getJSON(t *testing.T, url string, expectStatus int) map[string]interface{} {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, expectStatus, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()

	out := map[string]interface{}{}
	require.NoError(t, decoder.Decode(&out))
	return out
}

func TestStatusEndpoint(t *testing.T) {
	ts, _, admin, _ := newTestServer(t)

	status := getJSON(t, ts.URL+"/api/status", http.StatusOK)
	assert.Equal(t, admin, status["admin"])
	assert.Equal(t, "1000", status["goal"].(json.Number).String())
	assert.Equal(t, "600", status["raised_amount"].(json.Number).String())
	assert.Equal(t, "100", status["minimum_contribution"].(json.Number).String())
	assert.Equal(t, "600", status["custodied_balance"].(json.Number).String())
}

func TestRequestEndpoints(t *testing.T) {
	ts, _, _, _ := newTestServer(t)

	t.Run("List", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/requests")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var requests []campaign.RequestInfo
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&requests))
		require.Len(t, requests, 1)
		assert.Equal(t, "hosting", requests[0].Description)
		assert.Equal(t, big.NewInt(300), requests[0].Value)
	})

	t.Run("Get", func(t *testing.T) {
		body := getJSON(t, ts.URL+"/api/requests/0", http.StatusOK)
		assert.Equal(t, "hosting", body["description"])
		assert.Equal(t, false, body["completed"])
	})

	t.Run("Not Found", func(t *testing.T) {
		body := getJSON(t, ts.URL+"/api/requests/5", http.StatusNotFound)
		assert.Contains(t, body["error"], "not found")
	})

	t.Run("Bad Index", func(t *testing.T) {
		body := getJSON(t, ts.URL+"/api/requests/abc", http.StatusBadRequest)
		assert.Contains(t, body["error"], "invalid")
	})
}

func TestBalanceEndpoint(t *testing.T) {
	ts, _, _, alice := newTestServer(t)

	t.Run("Contributor Balance", func(t *testing.T) {
		body := getJSON(t, ts.URL+"/api/balance/"+alice, http.StatusOK)
		assert.Equal(t, "600", body["balance"].(json.Number).String())
	})

	t.Run("Unknown Address Has Zero Balance", func(t *testing.T) {
		body := getJSON(t, ts.URL+"/api/balance/"+newAddress(t), http.StatusOK)
		assert.Equal(t, "0", body["balance"].(json.Number).String())
	})

	t.Run("Invalid Address", func(t *testing.T) {
		body := getJSON(t, ts.URL+"/api/balance/not-an-address", http.StatusBadRequest)
		assert.Contains(t, body["error"], "invalid address")
	})
}

func TestHealthEndpoint(t *testing.T) {
	ts, _, _, _ := newTestServer(t)

	body := getJSON(t, ts.URL+"/api/health", http.StatusOK)
	assert.Equal(t, "ok", body["status"])
}
