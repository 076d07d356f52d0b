package analytics

import (
	"context"

	"github.com/angelmondragon/packfinderz-insights/internal/analytics/types"
)

type testAnalyticsService struct {
	last     types.ProjectionRequest
	calls    int
	response *types.ProjectionResponse
	err      error
}

func (s *testAnalyticsService) Project(ctx context.Context, req types.ProjectionRequest) (*types.ProjectionResponse, error) {
	s.last = req
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.response == nil {
		s.response = &types.ProjectionResponse{}
	}
	return s.response, nil
}

func (s *testAnalyticsService) called() bool {
	return s.calls > 0
}
