package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bookarc/bookarc/internal/api"
	"github.com/bookarc/bookarc/internal/constants"
)

// Recommendation reasons shown to the client.
const (
	reasonFavoriteGenres = "Based on your favorite genres"
	reasonHighlyRated    = "Highly rated by readers"
	reasonPopular        = "Popular on BookArc"
)

// highlyRatedFloor is the minimum average rating for the no-favorites path.
const highlyRatedFloor = 4.0

// RecommendationResult is the outcome of one selector run.
type RecommendationResult struct {
	Recommendations []api.Recommendation
	// BasedOnFavorites reports whether the favorite-genre path produced the
	// candidates.
	BasedOnFavorites bool
	// Fallback reports that the global top-rated pool was used because the
	// personalized paths came up empty.
	Fallback bool
}

// GetRecommendations runs the candidate selector for the caller.
//
// Books the user already rated, reviewed, or shelved are excluded. Users
// with favorite genres get genre-matched candidates; everyone else gets
// highly rated books. An empty result falls back to the global top-rated
// pool, ignoring exclusions, so the response is never empty on a non-empty
// catalog. Any query failure aborts the run.
func (s *Service) GetRecommendations(ctx context.Context, callerID int64, count int) (*RecommendationResult, error) {
	if count <= 0 {
		count = constants.DefaultRecommendationCount
	}
	if count > constants.MaxRecommendationCount {
		count = constants.MaxRecommendationCount
	}

	var (
		excluded  []int64
		favorites []api.Genre
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		excluded, err = s.repos.Recommendations.ExcludedBookIDs(gctx, callerID)
		return err
	})
	g.Go(func() error {
		var err error
		favorites, err = s.repos.Catalog.ListFavoriteGenres(gctx, callerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &RecommendationResult{BasedOnFavorites: len(favorites) > 0}

	var (
		candidates []api.Recommendation
		err        error
	)
	if len(favorites) > 0 {
		genreIDs := make([]int64, len(favorites))
		for i, genre := range favorites {
			genreIDs[i] = genre.GenreID
		}
		candidates, err = s.repos.Recommendations.CandidatesByGenres(ctx, genreIDs, excluded, count)
		tagReason(candidates, reasonFavoriteGenres)
	} else {
		candidates, err = s.repos.Recommendations.CandidatesByRating(ctx, excluded, highlyRatedFloor, count)
		tagReason(candidates, reasonHighlyRated)
	}
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		candidates, err = s.repos.Recommendations.TopRated(ctx, count)
		if err != nil {
			return nil, err
		}
		tagReason(candidates, reasonPopular)
		result.Fallback = true
		result.BasedOnFavorites = false
	}

	result.Recommendations = candidates
	return result, nil
}

func tagReason(recs []api.Recommendation, reason string) {
	for i := range recs {
		recs[i].Reason = reason
	}
}

// RecordInteraction appends one view/click/dismiss event used to bias future
// selection.
func (s *Service) RecordInteraction(ctx context.Context, callerID int64, req api.RecordInteractionRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	return s.repos.Recommendations.RecordInteraction(ctx, &api.InteractionEvent{
		UserID:    callerID,
		BookID:    req.BookID,
		EventType: req.EventType,
	})
}
