package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/universe-backend/api/responses"
	"github.com/angelmondragon/universe-backend/pkg/config"
	"github.com/angelmondragon/universe-backend/pkg/logger"
	"github.com/angelmondragon/universe-backend/pkg/types"
)

const (
	statusRunning      = "✅ Running"
	statusSet          = "✅ Set"
	statusNotSet       = "❌ Not Set"
	statusNotAvailable = "❌ Not Available"
	statusWorking      = "✅ Connected & Working"
	statusConnected    = "Connected"
	statusNotConnected = "Not Connected"

	errorSummaryLimit = 80
)

// CollectionLister is the diagnostics view of the document store.
type CollectionLister interface {
	CollectionNames(ctx context.Context) ([]string, error)
}

// Diagnostics is the body of GET /test.
type Diagnostics struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// Root reports the service name.
func Root(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, types.StatusResponse{Name: cfg.App.Name, Status: "ok"})
	}
}

// StoreDiagnostics summarizes store configuration and connectivity. Store
// failures are folded into the body; the endpoint always answers 200.
func StoreDiagnostics(cfg *config.Config, store CollectionLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := Diagnostics{
			Backend:          statusRunning,
			Database:         statusNotAvailable,
			DatabaseURL:      setOrNot(cfg.Store.URL),
			DatabaseName:     setOrNot(cfg.Store.Name),
			ConnectionStatus: statusNotConnected,
			Collections:      []string{},
		}

		if store != nil {
			names, err := store.CollectionNames(r.Context())
			if err != nil {
				report.Database = "⚠️ Connected but Error: " + truncate(err.Error(), errorSummaryLimit)
				if logg != nil {
					logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "diagnostics.collections_failed")
				}
			} else {
				if names != nil {
					report.Collections = names
				}
				report.Database = statusWorking
				report.ConnectionStatus = statusConnected
			}
		}

		responses.WriteSuccess(w, report)
	}
}

func setOrNot(v string) string {
	if v != "" {
		return statusSet
	}
	return statusNotSet
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
