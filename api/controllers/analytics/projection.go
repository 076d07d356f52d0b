package analytics

import (
	"net/http"

	"github.com/angelmondragon/packfinderz-insights/api/responses"
	"github.com/angelmondragon/packfinderz-insights/api/validators"
	"github.com/angelmondragon/packfinderz-insights/internal/analytics"
	"github.com/angelmondragon/packfinderz-insights/internal/analytics/types"
	"github.com/angelmondragon/packfinderz-insights/internal/projection"
	"github.com/angelmondragon/packfinderz-insights/pkg/enums"
	"github.com/angelmondragon/packfinderz-insights/pkg/logger"
)

// Projection serves POST /api/v1/analytics/projection. The body is the raw analytics payload;
// view options come from the query string.
func Projection(service analytics.Service, defaults Defaults, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := resolveProjectionParams(r, defaults)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload projection.Payload
		if err := validators.DecodeUntrustedJSON(w, r, &payload, defaults.MaxBodyBytes); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		req := types.ProjectionRequest{
			Payload:            &payload,
			Metrics:            params.metrics(),
			IncludePredictions: params.IncludeForecast,
			CurrentWindow:      params.CurrentWindow,
			ForecastWindow:     params.ForecastDays,
			Policy:             enums.FilterPolicy(params.Policy),
		}

		result, err := service.Project(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// Metrics serves GET /api/v1/analytics/metrics.
func Metrics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, analytics.Catalog())
	}
}
