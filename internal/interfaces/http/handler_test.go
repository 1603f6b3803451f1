package httpinterface_test

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/application/offer"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/application/oracle"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/application/profile"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/application/pubsub"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/application/trade"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
	"github.com/Local-DAO/LocalMoney-sub000/internal/infrastructure/custody"
	"github.com/Local-DAO/LocalMoney-sub000/internal/infrastructure/metrics"
	pubsubinfra "github.com/Local-DAO/LocalMoney-sub000/internal/infrastructure/pubsub"
	"github.com/Local-DAO/LocalMoney-sub000/internal/infrastructure/storage/db/inmemory"
	httpinterface "github.com/Local-DAO/LocalMoney-sub000/internal/interfaces/http"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

var authority = randomIdentity()

func newTestRouter(t *testing.T) *gin.Engine {
	repoManager := inmemory.NewRepoManager()
	ledger := custody.NewLedger(repoManager)

	oracleSvc, err := oracle.NewService(repoManager, nil)
	require.NoError(t, err)
	profileSvc, err := profile.NewService(
		repoManager, nil, authority,
		profile.ScorePolicy{TradeCompletedDelta: 1, TradeDisputedDelta: -1},
	)
	require.NoError(t, err)

	ps, err := pubsubinfra.NewService("", nil, 0)
	require.NoError(t, err)
	webhookSvc := pubsub.NewService(ps)
	t.Cleanup(webhookSvc.Close)

	reg := prometheus.NewRegistry()
	publisher, err := metrics.NewTradePublisher(reg, webhookSvc)
	require.NoError(t, err)

	tradeSvc, err := trade.NewService(
		repoManager, ledger, oracleSvc, profileSvc, publisher, nil,
	)
	require.NoError(t, err)
	offerSvc, err := offer.NewService(repoManager, tradeSvc, nil)
	require.NoError(t, err)

	return httpinterface.NewRouter(httpinterface.Services{
		OfferSvc:            offerSvc,
		TradeSvc:            tradeSvc,
		ProfileSvc:          profileSvc,
		OracleSvc:           oracleSvc,
		Custody:             ledger,
		WebhookSvc:          webhookSvc,
		Gatherer:            reg,
		DefaultToleranceBps: 100,
	})
}

func TestTradeThroughOffer(t *testing.T) {
	r := newTestRouter(t)
	admin, maker, taker, mint :=
		randomIdentity(), randomIdentity(), randomIdentity(), randomIdentity()

	res := do(t, r, http.MethodPost, "/v1/oracle/initialize", map[string]interface{}{
		"admin": admin,
	}, http.StatusOK)
	require.Equal(t, true, res["is_initialized"])

	do(t, r, http.MethodPost, "/v1/oracle/prices", map[string]interface{}{
		"authority": admin,
		"quotes": []map[string]interface{}{
			{"currency": "USD", "usd_price": 100000},
		},
	}, http.StatusOK)

	for owner, username := range map[domain.Identity]string{
		maker: "maker", taker: "taker",
	} {
		do(t, r, http.MethodPost, "/v1/profiles", map[string]interface{}{
			"owner": owner, "username": username,
		}, http.StatusCreated)
	}

	res = do(t, r, http.MethodPost, "/v1/custody/credit", map[string]interface{}{
		"account": maker, "asset": mint, "amount": 5000,
	}, http.StatusOK)
	require.EqualValues(t, 5000, res["amount"])

	res = do(t, r, http.MethodPost, "/v1/offers", map[string]interface{}{
		"maker":           maker,
		"token_mint":      mint,
		"price_per_token": 100000,
		"min_amount":      100,
		"max_amount":      2000,
		"offer_type":      "SELL",
	}, http.StatusCreated)
	offerKey := res["key"].(string)

	res = do(t, r, http.MethodGet, "/v1/offers/"+offerKey, nil, http.StatusOK)
	require.Equal(t, "ACTIVE", res["status"])
	require.Equal(t, "SELL", res["offer_type"])

	res = do(t, r, http.MethodPost, "/v1/offers/"+offerKey+"/take", map[string]interface{}{
		"taker": taker, "amount": 1000,
	}, http.StatusCreated)
	tradeKey := res["key"].(string)

	res = do(t, r, http.MethodPost, "/v1/trades/"+tradeKey+"/deposit", map[string]interface{}{
		"depositor": maker, "amount": 1000,
	}, http.StatusOK)
	require.Equal(t, "ESCROW_DEPOSITED", res["status"])
	require.EqualValues(t, 1000, res["escrow_balance"])
	require.Equal(t, offerKey, res["offer"])

	res = do(t, r, http.MethodPost, "/v1/trades/"+tradeKey+"/complete", map[string]interface{}{
		"actor": taker, "currency": "USD",
	}, http.StatusOK)
	require.Equal(t, "COMPLETED", res["status"])
	require.EqualValues(t, 0, res["escrow_balance"])

	res = do(t, r, http.MethodGet, fmt.Sprintf(
		"/v1/custody/balances/%s?asset=%s", taker, mint,
	), nil, http.StatusOK)
	require.EqualValues(t, 1000, res["amount"])

	res = do(t, r, http.MethodGet, "/v1/profiles?owner="+maker.String(), nil, http.StatusOK)
	require.EqualValues(t, 1, res["trades_completed"])
	require.EqualValues(t, 1, res["reputation_score"])

	list := doList(t, r, "/v1/trades?party="+taker.String())
	require.Len(t, list, 1)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(
		t, w.Body.String(),
		`escrow_trade_events_total{event="TRADE_COMPLETED"} 1`,
	)
}

func TestErrorStatusCodes(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	maker, mint := randomIdentity(), randomIdentity()

	res := do(t, r, http.MethodPost, "/v1/offers", map[string]interface{}{
		"maker":           maker,
		"token_mint":      mint,
		"price_per_token": 100,
		"min_amount":      10,
		"max_amount":      20,
		"offer_type":      "BUY",
	}, http.StatusCreated)
	offerKey := res["key"].(string)

	tests := []struct {
		name         string
		method       string
		path         string
		body         interface{}
		expectedCode int
	}{
		{
			name:   "invalid amounts",
			method: http.MethodPost,
			path:   "/v1/offers",
			body: map[string]interface{}{
				"maker": maker, "token_mint": mint, "price_per_token": 1,
				"min_amount": 30, "max_amount": 20, "offer_type": "BUY",
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "duplicate offer",
			method: http.MethodPost,
			path:   "/v1/offers",
			body: map[string]interface{}{
				"maker": maker, "token_mint": mint, "price_per_token": 1,
				"min_amount": 10, "max_amount": 20, "offer_type": "BUY",
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "malformed key",
			method:       http.MethodGet,
			path:         "/v1/offers/not-a-key",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "unknown offer type filter",
			method:       http.MethodGet,
			path:         "/v1/offers?offer_type=SWAP",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "unknown offer",
			method:       http.MethodGet,
			path:         "/v1/offers/" + randomIdentity().String(),
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "pause by stranger",
			method:       http.MethodPost,
			path:         "/v1/offers/" + offerKey + "/pause",
			body:         map[string]interface{}{"actor": randomIdentity()},
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "take own offer",
			method:       http.MethodPost,
			path:         "/v1/offers/" + offerKey + "/take",
			body:         map[string]interface{}{"taker": maker, "amount": 15},
			expectedCode: http.StatusForbidden,
		},
		{
			name:   "verify without oracle",
			method: http.MethodPost,
			path:   "/v1/oracle/verify",
			body: map[string]interface{}{
				"price": 100, "currency": "USD",
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:         "missing party",
			method:       http.MethodGet,
			path:         "/v1/trades",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "invalid webhook event",
			method: http.MethodPost,
			path:   "/v1/webhooks",
			body: map[string]interface{}{
				"event": "OFFER_CREATED", "endpoint": "http://localhost/hook",
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "unknown webhook",
			method:       http.MethodDelete,
			path:         "/v1/webhooks/unknown",
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			res := do(t, r, tt.method, tt.path, tt.body, tt.expectedCode)
			require.NotEmpty(t, res["error"])
		})
	}
}

func TestWebhooks(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	res := do(t, r, http.MethodPost, "/v1/webhooks", map[string]interface{}{
		"event":           "TRADE_COMPLETED",
		"endpoint":        "http://localhost/hook",
		"generate_secret": true,
	}, http.StatusCreated)
	id := res["id"].(string)
	require.NotEmpty(t, res["secret"])

	list := doList(t, r, "/v1/webhooks?event=TRADE_COMPLETED")
	require.Len(t, list, 1)
	require.Equal(t, true, list[0]["is_secured"])

	do(t, r, http.MethodDelete, "/v1/webhooks/"+id, nil, http.StatusNoContent)
	require.Empty(t, doList(t, r, "/v1/webhooks"))
}

func do(
	t *testing.T, r http.Handler, method, path string, body interface{},
	expectedCode int,
) map[string]interface{} {
	w := serve(t, r, method, path, body)
	require.Equal(t, expectedCode, w.Code, w.Body.String())

	res := map[string]interface{}{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	}
	return res
}

func doList(t *testing.T, r http.Handler, path string) []map[string]interface{} {
	w := serve(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func serve(
	t *testing.T, r http.Handler, method, path string, body interface{},
) *httptest.ResponseRecorder {
	var reqBody *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(buf)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func randomIdentity() domain.Identity {
	var id domain.Identity
	//nolint
	rand.Read(id[:])
	return id
}
