package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/packfinderz-insights/internal/analytics/types"
	"github.com/angelmondragon/packfinderz-insights/internal/projection"
	"github.com/angelmondragon/packfinderz-insights/pkg/enums"
	pkgerrors "github.com/angelmondragon/packfinderz-insights/pkg/errors"
	"github.com/angelmondragon/packfinderz-insights/pkg/logger"
	"github.com/angelmondragon/packfinderz-insights/pkg/metrics"
)

// DefaultMaxWindow caps current and forecast windows when ServiceParams leaves it unset.
const DefaultMaxWindow = 365

// Service turns analytics payloads into chart-ready projections.
type Service interface {
	// Project validates the request and computes every requested metric.
	Project(ctx context.Context, req types.ProjectionRequest) (*types.ProjectionResponse, error)
}

// ServiceParams wires the service dependencies. Only Logger is required.
type ServiceParams struct {
	Logger    *logger.Logger
	Metrics   *metrics.ProjectionMetrics
	Clock     func() time.Time
	MaxWindow int
}

type service struct {
	logg      *logger.Logger
	metrics   *metrics.ProjectionMetrics
	clock     func() time.Time
	pipeline  *projection.Pipeline
	maxWindow int
}

// NewService builds the projection service.
func NewService(params ServiceParams) (Service, error) {
	if params.Logger == nil {
		return nil, errors.New("logger required")
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	maxWindow := params.MaxWindow
	if maxWindow <= 0 {
		maxWindow = DefaultMaxWindow
	}
	return &service{
		logg:      params.Logger,
		metrics:   params.Metrics,
		clock:     clock,
		pipeline:  projection.NewPipeline(projection.DateNormalizer{Now: clock}),
		maxWindow: maxWindow,
	}, nil
}

func (s *service) Project(ctx context.Context, req types.ProjectionRequest) (*types.ProjectionResponse, error) {
	metricList, opts, err := s.normalize(req)
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"metric_count": len(metricList),
		"policy":       opts.Policy.String(),
	})

	// One view per request: every metric after the first reuses the validated series.
	view := projection.NewView(
		projection.WithPipeline(s.pipeline),
		projection.WithObserver(s.metrics),
	)

	resp := &types.ProjectionResponse{
		Metrics:            make([]types.MetricView, 0, len(metricList)),
		Windows:            opts.Windows,
		Policy:             opts.Policy,
		IncludePredictions: opts.IncludePredictions,
		GeneratedAt:        s.clock().UTC(),
	}

	for _, metric := range metricList {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		opts.Metric = metric

		started := time.Now()
		result, err := view.Compute(req.Payload, opts)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("project %s", metric))
		}
		s.metrics.ObserveDuration(metric.String(), time.Since(started))

		resp.Metrics = append(resp.Metrics, types.MetricView{
			Metric: metric,
			Points: result.Points,
			Stats:  result.Stats,
		})
		resp.Totals = result.Totals
		resp.Diagnostics = result.Diagnostics
	}

	s.record(ctx, opts.Policy, resp.Diagnostics)
	return resp, nil
}

func (s *service) normalize(req types.ProjectionRequest) ([]enums.Metric, projection.Options, error) {
	var opts projection.Options
	if req.Payload == nil {
		return nil, opts, pkgerrors.New(pkgerrors.CodeValidation, "payload is required")
	}

	metricList, err := uniqueMetrics(req.Metrics)
	if err != nil {
		return nil, opts, err
	}

	policy := req.Policy
	if policy == "" {
		policy = enums.FilterPolicyKeepWithDefaults
	}
	if !policy.IsValid() {
		return nil, opts, pkgerrors.New(pkgerrors.CodeValidation, "invalid filter policy").
			WithDetails(map[string]any{"policy": string(policy)})
	}

	windows := []struct {
		name  string
		value int
	}{
		{"current_window", req.CurrentWindow},
		{"forecast_window", req.ForecastWindow},
	}
	for _, w := range windows {
		if w.value < 0 || w.value > s.maxWindow {
			return nil, opts, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s must be between 1 and %d", w.name, s.maxWindow)).
				WithDetails(map[string]any{"field": w.name, "value": w.value})
		}
	}

	opts = projection.Options{
		IncludePredictions: req.IncludePredictions,
		Windows:            projection.Windows{Current: req.CurrentWindow, Forecast: req.ForecastWindow}.Normalize(),
		Policy:             policy,
	}
	return metricList, opts, nil
}

// uniqueMetrics validates the requested metrics, dropping repeats and defaulting to revenue.
func uniqueMetrics(requested []enums.Metric) ([]enums.Metric, error) {
	if len(requested) == 0 {
		return []enums.Metric{enums.MetricRevenue}, nil
	}
	seen := make(map[enums.Metric]struct{}, len(requested))
	out := make([]enums.Metric, 0, len(requested))
	for _, m := range requested {
		if !m.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported metric").
				WithDetails(map[string]any{"metric": string(m), "supported": enums.Metrics()})
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out, nil
}

func (s *service) record(ctx context.Context, policy enums.FilterPolicy, diag projection.Diagnostics) {
	s.metrics.AddRepairs(policy.String(), diag.DefaultedFields, diag.ClampedFields)
	s.metrics.AddDropped(diag.Dropped)

	if diag.DefaultedFields == 0 && diag.Dropped == 0 {
		return
	}
	ctx = s.logg.WithFields(ctx, map[string]any{
		"records":          diag.Records,
		"malformed":        diag.Malformed,
		"dropped":          diag.Dropped,
		"defaulted_fields": diag.DefaultedFields,
		"clamped_fields":   diag.ClampedFields,
	})
	s.logg.Warn(ctx, "projection payload required repairs")
}
