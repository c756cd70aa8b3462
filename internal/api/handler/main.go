package handler

import (
	"net/http"

	"concierge/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"
)

type Config struct {
	Container *do.Injector
	Mode      string
	Origins   []string
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	r.JSONSerializer = httpx.SegmentJSONSerializer{}
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	r.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "🏨")
	})

	routesAPIv1 := r.Group("/api/v1")
	{
		authentication, err := do.Invoke[*services.Authentication](cfg.Container)
		if err != nil {
			return nil, err
		}
		cors := middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.Origins,
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowCredentials: true,
			MaxAge:           60 * 60,
		})

		routesAPIv1.Use(cors)
		routesAPIv1.Use(Authn(authentication)) // Authn will NOT terminate unauthenticated requests.
		routesAPIv1.GET("", Hello)

		h := groupHotel{cfg.Container}
		routesAPIv1.GET("/hotels", h.List)
		routesAPIv1.POST("/hotels", h.Create)
		routesAPIv1.GET("/hotel/:hotel", h.Show)
		routesAPIv1.PUT("/hotel/:hotel", h.Update)
		routesAPIv1.DELETE("/hotel/:hotel", h.Deactivate)

		pv := groupProvider{cfg.Container}
		routesAPIv1.GET("/hotel/:hotel/providers", pv.List)

		routesAPIv1Loyalty := routesAPIv1.Group("/hotel/:hotel/loyalty")
		{
			m := groupMember{cfg.Container}
			routesAPIv1Loyalty.GET("/me", m.Me)
			routesAPIv1Loyalty.GET("/history", m.History)
			routesAPIv1Loyalty.GET("/rewards", m.Rewards)
			routesAPIv1Loyalty.POST("/redeem/:reward", m.Redeem)
			routesAPIv1Loyalty.GET("/redemptions", m.Redemptions)
		}

		bk := groupBooking{cfg.Container}
		routesAPIv1.GET("/hotel/:hotel/bookings", bk.MyBookings)

		routesAPIv1Admin := routesAPIv1.Group("/admin")
		{
			pr := groupProgram{cfg.Container}
			routesAPIv1Admin.GET("/program", pr.Show)
			routesAPIv1Admin.POST("/program", pr.Create)
			routesAPIv1Admin.PUT("/program", pr.Update)
			routesAPIv1Admin.GET("/members", pr.Members)
			routesAPIv1Admin.GET("/member/:member", pr.Member)
			routesAPIv1Admin.POST("/member/:member/adjust", pr.Adjust)
			routesAPIv1Admin.PUT("/member/:member/status", pr.Status)

			rw := groupReward{cfg.Container}
			routesAPIv1Admin.GET("/rewards", rw.List)
			routesAPIv1Admin.POST("/rewards", rw.Create)
			routesAPIv1Admin.PUT("/reward/:reward", rw.Update)
			routesAPIv1Admin.DELETE("/reward/:reward", rw.Deactivate)

			an := groupAnalytics{cfg.Container}
			routesAPIv1Admin.GET("/analytics", an.Dashboard)
			routesAPIv1Admin.GET("/analytics/roi", an.ROI)
			routesAPIv1Admin.POST("/sweep", an.TriggerSweep)
			routesAPIv1Admin.GET("/sweep/report", an.SweepReport)

			routesAPIv1Admin.POST("/bookings/completed", bk.Complete)
			routesAPIv1Admin.POST("/providers", pv.Create)
			routesAPIv1Admin.PUT("/provider/:provider", pv.Update)
			routesAPIv1Admin.DELETE("/provider/:provider", pv.Deactivate)
		}
	}

	return r, nil
}

func Hello(c echo.Context) error {
	return httpx.RestAbort(c, "hello world", nil)
}
