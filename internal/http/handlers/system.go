package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	intconfig "logisticshub/internal/config"
	intdb "logisticshub/internal/db"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// requiredTables must exist before the API is usable.
var requiredTables = []string{"clients", "routes", "drivers", "trucks", "tariffs", "trips", "expenses", "users"}

// SetRouter stores the active gin engine for /api/system/routes.
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DBCheck pings the database and reports missing tables.
func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(c.Request.Context()); err != nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "database not reachable", nil)
		return
	}
	missing := []string{}
	for _, t := range requiredTables {
		if !intdb.HasTable(intconfig.DB, t) {
			missing = append(missing, t)
		}
	}
	if len(missing) > 0 {
		respondError(c, http.StatusServiceUnavailable, "schema_incomplete", "run migrations first", gin.H{"missing_tables": missing})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "tables": len(requiredTables)})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		respondError(c, http.StatusServiceUnavailable, "not_ready", "router not ready", nil)
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
