package analytics

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/packfinderz-insights/api/validators"
	"github.com/angelmondragon/packfinderz-insights/pkg/config"
	"github.com/angelmondragon/packfinderz-insights/pkg/enums"
	pkgerrors "github.com/angelmondragon/packfinderz-insights/pkg/errors"
)

// Defaults holds the server-side defaults and limits applied to projection requests.
type Defaults struct {
	CurrentWindow int
	ForecastDays  int
	MaxWindow     int
	MaxBodyBytes  int64
	Policy        enums.FilterPolicy
}

// DefaultsFromConfig maps the projection config onto handler defaults.
func DefaultsFromConfig(cfg config.ProjectionConfig) Defaults {
	return Defaults{
		CurrentWindow: cfg.DefaultCurrentWindow,
		ForecastDays:  cfg.DefaultForecastDays,
		MaxWindow:     cfg.MaxWindow,
		MaxBodyBytes:  cfg.MaxBodyBytes,
		Policy:        cfg.Policy(),
	}
}

type projectionParams struct {
	Metrics         []string `json:"metric" validate:"max=4,unique,dive,oneof=revenue orders_count conversion_rate avg_order_value"`
	IncludeForecast bool     `json:"include_forecast"`
	CurrentWindow   int      `json:"current_window"`
	ForecastDays    int      `json:"forecast_days"`
	Policy          string   `json:"policy" validate:"omitempty,oneof=keep_with_defaults drop_malformed"`
}

func (p projectionParams) metrics() []enums.Metric {
	out := make([]enums.Metric, 0, len(p.Metrics))
	for _, m := range p.Metrics {
		out = append(out, enums.Metric(m))
	}
	return out
}

func resolveProjectionParams(r *http.Request, defaults Defaults) (projectionParams, error) {
	query := r.URL.Query()
	params := projectionParams{
		Metrics: validators.ParseQueryList(r, "metric"),
		Policy:  strings.ToLower(strings.TrimSpace(query.Get("policy"))),
	}

	var err error
	if params.IncludeForecast, err = validators.ParseQueryBool(r, "include_forecast", true); err != nil {
		return params, err
	}
	if params.CurrentWindow, err = validators.ParseQueryInt(r, "current_window", defaults.CurrentWindow, 1, defaults.MaxWindow); err != nil {
		return params, err
	}
	if params.ForecastDays, err = resolveForecastDays(r, defaults); err != nil {
		return params, err
	}

	if err := validators.ValidateStruct(params); err != nil {
		return params, err
	}
	if params.Policy == "" {
		params.Policy = defaults.Policy.String()
	}
	return params, nil
}

// resolveForecastDays reads forecast_days or the horizon preset; supplying both is ambiguous.
func resolveForecastDays(r *http.Request, defaults Defaults) (int, error) {
	query := r.URL.Query()
	days := strings.TrimSpace(query.Get("forecast_days"))
	horizon := strings.TrimSpace(query.Get("horizon"))

	if days != "" && horizon != "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "forecast_days and horizon are mutually exclusive")
	}
	if horizon == "" {
		return validators.ParseQueryInt(r, "forecast_days", defaults.ForecastDays, 1, defaults.MaxWindow)
	}

	n, ok := presetDays(horizon)
	if !ok {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid horizon").
			WithDetails(map[string]any{"field": "horizon", "allowed": []string{"7d", "30d", "90d"}})
	}
	if n > defaults.MaxWindow {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "horizon exceeds the maximum window").
			WithDetails(map[string]any{"field": "horizon", "max": defaults.MaxWindow})
	}
	return n, nil
}

func presetDays(value string) (int, bool) {
	switch strings.ToLower(value) {
	case "7d":
		return 7, true
	case "30d":
		return 30, true
	case "90d":
		return 90, true
	default:
		return 0, false
	}
}
