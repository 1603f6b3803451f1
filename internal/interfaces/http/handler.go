package httpinterface

import (
	"net/http"
	"time"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/application/offer"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/application/oracle"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/application/profile"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/application/pubsub"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/application/trade"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/ports"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// Services groups the application services exposed through the API. Webhooks
// and Gatherer are optional.
type Services struct {
	OfferSvc   *offer.Service
	TradeSvc   *trade.Service
	ProfileSvc *profile.Service
	OracleSvc  *oracle.Service
	Custody    ports.AssetCustody
	WebhookSvc *pubsub.Service
	Gatherer   prometheus.Gatherer

	DefaultToleranceBps uint32
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}

type handler struct {
	Services
}

// NewRouter returns the gin engine serving the v1 API, a health check and,
// if a gatherer is given, the prometheus metrics.
func NewRouter(svcs Services) *gin.Engine {
	h := &handler{svcs}

	r := gin.New()
	r.Use(gin.Recovery(), logger())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	if svcs.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(
			promhttp.HandlerFor(svcs.Gatherer, promhttp.HandlerOpts{}),
		))
	}

	v1 := r.Group("/v1")

	offers := v1.Group("/offers")
	offers.POST("", h.createOffer)
	offers.GET("", h.listOffers)
	offers.GET("/:key", h.getOffer)
	offers.PATCH("/:key", h.updateOffer)
	offers.POST("/:key/pause", h.pauseOffer)
	offers.POST("/:key/resume", h.resumeOffer)
	offers.POST("/:key/close", h.closeOffer)
	offers.POST("/:key/take", h.takeOffer)

	trades := v1.Group("/trades")
	trades.POST("", h.createTrade)
	trades.GET("", h.listTrades)
	trades.GET("/:key", h.getTrade)
	trades.POST("/:key/deposit", h.depositEscrow)
	trades.POST("/:key/complete", h.completeTrade)
	trades.POST("/:key/cancel", h.cancelTrade)
	trades.POST("/:key/dispute", h.disputeTrade)

	profiles := v1.Group("/profiles")
	profiles.POST("", h.createProfile)
	profiles.GET("", h.getProfileByOwner)
	profiles.GET("/:key", h.getProfile)
	profiles.PATCH("/:key", h.updateProfile)
	profiles.POST("/:key/reputation", h.updateReputation)
	profiles.POST("/:key/verify", h.verifyProfile)

	oracleGroup := v1.Group("/oracle")
	oracleGroup.GET("", h.getOracle)
	oracleGroup.POST("/initialize", h.initializeOracle)
	oracleGroup.POST("/provider", h.setPriceProvider)
	oracleGroup.POST("/prices", h.updatePrices)
	oracleGroup.GET("/prices/:currency", h.getPrice)
	oracleGroup.POST("/routes", h.registerPriceRoute)
	oracleGroup.POST("/verify", h.verifyPrice)

	custody := v1.Group("/custody")
	custody.POST("/credit", h.credit)
	custody.GET("/balances/:account", h.getBalance)

	if svcs.WebhookSvc != nil {
		webhooks := v1.Group("/webhooks")
		webhooks.POST("", h.addWebhook)
		webhooks.GET("", h.listWebhooks)
		webhooks.DELETE("/:id", h.removeWebhook)
	}

	return r
}

func logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Debug("request served")
	}
}

func (h *handler) toleranceBps(bps *uint32) uint32 {
	if bps == nil {
		return h.DefaultToleranceBps
	}
	return *bps
}

func parseKey(c *gin.Context) (domain.Address, bool) {
	key, err := domain.NewAddressFromString(c.Param("key"))
	if err != nil {
		abortWithBadRequest(c, err)
		return domain.Address{}, false
	}
	return key, true
}

func parseIdentityQuery(c *gin.Context, name string) (*domain.Identity, bool) {
	str, ok := c.GetQuery(name)
	if !ok || len(str) <= 0 {
		return nil, true
	}
	id, err := domain.NewIdentityFromString(str)
	if err != nil {
		abortWithBadRequest(c, err)
		return nil, false
	}
	return &id, true
}

func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		abortWithBadRequest(c, err)
		return false
	}
	return true
}
