package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	intconfig "logisticshub/internal/config"
	"logisticshub/internal/domain"
	"logisticshub/internal/http/middleware"
	"logisticshub/internal/repositories"
	"logisticshub/internal/services"
)

// Settings are the process-wide values handlers need besides the database.
type Settings struct {
	JWTSecret    []byte
	TokenTTL     time.Duration
	DefaultRates domain.Rates
	Now          func() time.Time
}

var (
	settingsMu sync.RWMutex
	settings   Settings
)

// Configure installs the settings used by every handler.
func Configure(s Settings) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = s
}

// SettingsFromEnv builds Settings from the loaded environment.
func SettingsFromEnv(env intconfig.Env) (Settings, error) {
	rates, err := domain.NewRates(env.DriverTripRate, env.MonthlyPayrollCost, env.FuelTaxPercent)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		JWTSecret:    []byte(env.JWTSecret),
		TokenTTL:     env.TokenTTL,
		DefaultRates: rates,
	}, nil
}

func currentSettings() Settings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

// Services are built per request so each one logs with its request id.
// Repositories fall back to the shared connection and the cache to the
// process default.

func authService(c *gin.Context) services.AuthService {
	s := currentSettings()
	return services.AuthService{
		Users:     repositories.UserRepository{},
		Secret:    s.JWTSecret,
		TTL:       s.TokenTTL,
		Now:       s.Now,
		RequestID: middleware.GetRequestID(c),
	}
}

// Authenticator validates bearer tokens with the configured secret against
// the users table.
type Authenticator struct{}

func (Authenticator) Authenticate(ctx context.Context, raw string) (domain.Session, error) {
	return authService(nil).Authenticate(ctx, raw)
}

func masterDataService(c *gin.Context) services.MasterDataService {
	return services.MasterDataService{RequestID: middleware.GetRequestID(c)}
}

func routeService(c *gin.Context) services.RouteService {
	return services.RouteService{RequestID: middleware.GetRequestID(c)}
}

func pricingService() services.PricingService {
	return services.PricingService{}
}

func tripService(c *gin.Context) services.TripService {
	return services.TripService{Pricing: pricingService(), RequestID: middleware.GetRequestID(c)}
}

func expenseService(c *gin.Context) services.ExpenseService {
	return services.ExpenseService{RequestID: middleware.GetRequestID(c)}
}

func userService(c *gin.Context) services.UserService {
	return services.UserService{RequestID: middleware.GetRequestID(c)}
}

func importService(c *gin.Context) services.ImportService {
	return services.ImportService{
		Routes:    routeService(c),
		Pricing:   pricingService(),
		RequestID: middleware.GetRequestID(c),
	}
}

func dashboardService() services.DashboardService {
	return services.DashboardService{Now: currentSettings().Now}
}

func exportService(c *gin.Context) services.ExportService {
	return services.ExportService{
		Dashboard: dashboardService(),
		Trips:     tripService(c),
		RequestID: middleware.GetRequestID(c),
		Now:       currentSettings().Now,
	}
}
