package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookarc/bookarc/internal/api"
	"github.com/bookarc/bookarc/internal/constants"
	"github.com/bookarc/bookarc/internal/testutil"
)

func TestGetRecommendationsFavoriteGenres(t *testing.T) {
	var gotGenres, gotExclude []int64

	svc := newTestService(Repositories{
		Catalog: &mockCatalogRepository{
			listFavoriteGenresFunc: func(_ context.Context, _ int64) ([]api.Genre, error) {
				return []api.Genre{{GenreID: 3, GenreName: "Fantasy"}, {GenreID: 5, GenreName: "Horror"}}, nil
			},
		},
		Recommendations: &mockRecommendationRepository{
			excludedBookIDsFunc: func(_ context.Context, _ int64) ([]int64, error) {
				return []int64{11, 12}, nil
			},
			candidatesByGenresFunc: func(_ context.Context, genreIDs, exclude []int64, limit int) ([]api.Recommendation, error) {
				gotGenres = genreIDs
				gotExclude = exclude
				assert.Equal(t, 5, limit)
				return []api.Recommendation{{BookID: 20, Title: "The Hollow Crown"}}, nil
			},
		},
	})

	result, err := svc.GetRecommendations(testutil.TestContext(), 1, 5)
	require.NoError(t, err)

	assert.True(t, result.BasedOnFavorites)
	assert.False(t, result.Fallback)
	assert.Equal(t, []int64{3, 5}, gotGenres)
	assert.Equal(t, []int64{11, 12}, gotExclude)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "Based on your favorite genres", result.Recommendations[0].Reason)
}

func TestGetRecommendationsHighlyRated(t *testing.T) {
	svc := newTestService(Repositories{
		Recommendations: &mockRecommendationRepository{
			candidatesByRatingFunc: func(_ context.Context, _ []int64, minRating float64, _ int) ([]api.Recommendation, error) {
				assert.InDelta(t, 4.0, minRating, 0.001)
				return []api.Recommendation{{BookID: 30, Title: "Quiet Rivers"}}, nil
			},
		},
	})

	result, err := svc.GetRecommendations(testutil.TestContext(), 1, 10)
	require.NoError(t, err)

	assert.False(t, result.BasedOnFavorites)
	assert.False(t, result.Fallback)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "Highly rated by readers", result.Recommendations[0].Reason)
}

func TestGetRecommendationsFallback(t *testing.T) {
	svc := newTestService(Repositories{
		Catalog: &mockCatalogRepository{
			listFavoriteGenresFunc: func(_ context.Context, _ int64) ([]api.Genre, error) {
				return []api.Genre{{GenreID: 3, GenreName: "Fantasy"}}, nil
			},
		},
		Recommendations: &mockRecommendationRepository{
			candidatesByGenresFunc: func(_ context.Context, _, _ []int64, _ int) ([]api.Recommendation, error) {
				return nil, nil
			},
			topRatedFunc: func(_ context.Context, _ int) ([]api.Recommendation, error) {
				return []api.Recommendation{{BookID: 40, Title: "Everyone Reads This"}}, nil
			},
		},
	})

	result, err := svc.GetRecommendations(testutil.TestContext(), 1, 10)
	require.NoError(t, err)

	// The fallback pool is not personalized, even when favorites exist.
	assert.True(t, result.Fallback)
	assert.False(t, result.BasedOnFavorites)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "Popular on BookArc", result.Recommendations[0].Reason)
}

func TestGetRecommendationsCountClamping(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		wantLimit int
	}{
		{name: "zero uses the default", count: 0, wantLimit: constants.DefaultRecommendationCount},
		{name: "negative uses the default", count: -1, wantLimit: constants.DefaultRecommendationCount},
		{name: "oversized is capped", count: 500, wantLimit: constants.MaxRecommendationCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(Repositories{
				Recommendations: &mockRecommendationRepository{
					candidatesByRatingFunc: func(_ context.Context, _ []int64, _ float64, limit int) ([]api.Recommendation, error) {
						assert.Equal(t, tt.wantLimit, limit)
						return []api.Recommendation{{BookID: 1}}, nil
					},
				},
			})

			_, err := svc.GetRecommendations(testutil.TestContext(), 1, tt.count)
			require.NoError(t, err)
		})
	}
}

func TestGetRecommendationsQueryFailure(t *testing.T) {
	svc := newTestService(Repositories{
		Recommendations: &mockRecommendationRepository{
			excludedBookIDsFunc: func(_ context.Context, _ int64) ([]int64, error) {
				return nil, errors.New("connection reset")
			},
		},
	})

	_, err := svc.GetRecommendations(testutil.TestContext(), 1, 10)
	require.Error(t, err)
}

func TestRecordInteraction(t *testing.T) {
	bookID := int64(7)
	var recorded *api.InteractionEvent

	svc := newTestService(Repositories{
		Recommendations: &mockRecommendationRepository{
			recordInteractionFunc: func(_ context.Context, event *api.InteractionEvent) error {
				recorded = event
				return nil
			},
		},
	})

	err := svc.RecordInteraction(testutil.TestContext(), 1, api.RecordInteractionRequest{
		BookID:    &bookID,
		EventType: "click",
	})
	require.NoError(t, err)
	require.NotNil(t, recorded)
	assert.Equal(t, int64(1), recorded.UserID)
	assert.Equal(t, "click", recorded.EventType)

	err = svc.RecordInteraction(testutil.TestContext(), 1, api.RecordInteractionRequest{EventType: "swipe"})
	require.Error(t, err)
}
