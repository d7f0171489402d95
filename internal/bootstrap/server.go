package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ticketkinen/server/api"
	"github.com/ticketkinen/server/config"
	"github.com/ticketkinen/server/internal/auth"
)

type Handlers struct {
	Users    *api.UserHandler
	Tickets  *api.TicketHandler
	Bookings *api.BookingHandler
	Payments *api.PaymentHandler
	Verifier auth.Verifier
}

func NewRouter(h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to Ticket-kinen App database.")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := router.Group("")
	private := router.Group("", auth.Middleware(h.Verifier))

	h.Users.Register(public, private)
	h.Tickets.Register(public, private)
	h.Bookings.Register(private)
	h.Payments.Register(private)

	return router
}

// Run serves the HTTP API and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, h Handlers) error {
	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(h),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
