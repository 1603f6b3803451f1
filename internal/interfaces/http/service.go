package httpinterface

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	interfaces "github.com/Local-DAO/LocalMoney-sub000/internal/interfaces"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

type service struct {
	opts   ServiceOpts
	server *http.Server
}

type ServiceOpts struct {
	Port int
	Services
}

func (o ServiceOpts) validate() error {
	if o.Port <= 0 || o.Port > 65535 {
		return fmt.Errorf("invalid listening port %d", o.Port)
	}
	if o.OfferSvc == nil {
		return fmt.Errorf("offer app service must not be null")
	}
	if o.TradeSvc == nil {
		return fmt.Errorf("trade app service must not be null")
	}
	if o.ProfileSvc == nil {
		return fmt.Errorf("profile app service must not be null")
	}
	if o.OracleSvc == nil {
		return fmt.Errorf("oracle app service must not be null")
	}
	if o.Custody == nil {
		return fmt.Errorf("custody must not be null")
	}
	return nil
}

func NewService(opts ServiceOpts) (interfaces.Service, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid opts: %s", err)
	}

	return &service{
		opts: opts,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts.Services),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Start binds the listening port and serves the API in a separate goroutine.
func (s *service) Start() error {
	lis, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}

	go func() {
		if err := s.server.Serve(lis); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server stopped unexpectedly")
		}
	}()

	log.Infof("http server listening on %s", s.server.Addr)
	return nil
}

func (s *service) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("http server did not shut down gracefully")
		return
	}
	log.Info("http server stopped")
}
