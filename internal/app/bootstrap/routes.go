// internal/app/bootstrap/routes.go
package bootstrap

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	activitiesfeature "github.com/mytripteam/mytrip/internal/app/features/activities"
	authgooglefeature "github.com/mytripteam/mytrip/internal/app/features/authgoogle"
	healthfeature "github.com/mytripteam/mytrip/internal/app/features/health"
	invitesfeature "github.com/mytripteam/mytrip/internal/app/features/invites"
	travelersfeature "github.com/mytripteam/mytrip/internal/app/features/travelers"
	tripsfeature "github.com/mytripteam/mytrip/internal/app/features/trips"
	activitystore "github.com/mytripteam/mytrip/internal/app/store/activities"
	invitestore "github.com/mytripteam/mytrip/internal/app/store/invites"
	"github.com/mytripteam/mytrip/internal/app/store/oauthstate"
	travelerstore "github.com/mytripteam/mytrip/internal/app/store/travelers"
	tripstore "github.com/mytripteam/mytrip/internal/app/store/trips"
	"github.com/mytripteam/mytrip/internal/app/system/auth"
	"github.com/mytripteam/mytrip/internal/app/system/budget"
	"github.com/mytripteam/mytrip/internal/app/system/mailer"
	"github.com/mytripteam/mytrip/internal/app/system/metrics"
	"github.com/mytripteam/mytrip/internal/app/system/ratelimit"
	"github.com/mytripteam/mytrip/internal/app/system/requestlog"
	"github.com/mytripteam/mytrip/internal/app/system/tokens"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE
// app.
//
// WAFFLE calls this after configuration, DB connections, schema setup and
// the Startup hook have completed. MyTrip wires the stores, the balance
// reconciler and the mailer into the feature handlers, then mounts:
//   - /health and /metrics for operations
//   - /login/google for the OAuth entry point
//   - /api for everything the frontend talks to
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	signer, err := tokens.NewSigner(appCfg.ConfirmTokenSecret, appCfg.ConfirmTokenExpiry)
	if err != nil {
		logger.Error("confirmation token signer init failed", zap.Error(err))
		return nil, err
	}

	mail := mailer.New(appCfg.MailSMTPHost, appCfg.MailSMTPPort,
		appCfg.MailSMTPUser, appCfg.MailSMTPPass,
		appCfg.MailFrom, appCfg.MailFromName, logger)

	db := deps.MongoDatabase
	travelers := travelerstore.New(db)
	trips := tripstore.New(db)
	activities := activitystore.New(db)
	invites := invitestore.New(db, logger)
	states := oauthstate.New(db)

	reconciler := budget.NewReconciler(trips, logger)

	r := chi.NewRouter()

	r.Use(requestlog.Middleware(logger))
	r.Use(metrics.Middleware)

	// Global auth middleware: resolves the caller's Principal from the
	// trusted header or the session cookie before any route runs.
	r.Use(sessionMgr.LoadPrincipal)

	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/metrics", metrics.Handler())

	googleHandler := authgooglefeature.NewHandler(travelers, states, sessionMgr,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret,
		appCfg.BaseURL, appCfg.FrontendURL, logger)
	authgooglefeature.RegisterRoot(r, googleHandler)

	travelersHandler := travelersfeature.NewHandler(travelers, signer, mail, sessionMgr,
		appCfg.BaseURL, appCfg.SiteName, expiryLabel(appCfg.ConfirmTokenExpiry), logger)
	travelersHandler.Limiter = ratelimit.NewLoginLimiter()

	tripsHandler := tripsfeature.NewHandler(trips, invites, reconciler, logger)
	activitiesHandler := activitiesfeature.NewHandler(activities, trips, invites, reconciler, logger)
	invitesHandler := invitesfeature.NewHandler(invites, travelers, trips, mail, appCfg.SiteName, logger)

	r.Route("/api", func(api chi.Router) {
		authgooglefeature.RegisterAPI(api, googleHandler)
		travelersfeature.Register(api, travelersHandler)
		tripsfeature.Register(api, tripsHandler)
		activitiesfeature.Register(api, activitiesHandler)
		invitesfeature.Register(api, invitesHandler)
	})

	return r, nil
}

// expiryLabel renders a token lifetime the way the e-mail copy expects it,
// e.g. "1 hora" or "30 minutos".
func expiryLabel(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		h := int(d / time.Hour)
		if h == 1 {
			return "1 hora"
		}
		return fmt.Sprintf("%d horas", h)
	}
	m := int(d / time.Minute)
	if m == 1 {
		return "1 minuto"
	}
	return fmt.Sprintf("%d minutos", m)
}
