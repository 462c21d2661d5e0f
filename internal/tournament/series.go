package tournament

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// SeriesResult aggregates outcomes across a series of tournaments. Points
// follow the standard scale (entrants minus finish position); podium points
// award 3/2/1 for the top three places.
type SeriesResult struct {
	Tournaments int
	Wins        map[string]int
	Points      map[string]int
	Podiums     map[string]int
}

// Series runs Count independent tournaments and aggregates the results.
// Build must return a fresh tournament per index, including fresh agents;
// agents carry state between hands and cannot be shared across concurrent
// tournaments.
type Series struct {
	Count       int
	Parallelism int // concurrent tournaments; <=0 means GOMAXPROCS
	Build       func(i int) (*Tournament, error)
}

// Run plays the whole series. The context cancels tournaments that have not
// started yet; tournaments already running finish their current hand loop.
func (s *Series) Run(ctx context.Context) (*SeriesResult, error) {
	if s.Count <= 0 {
		return nil, fmt.Errorf("series count must be positive, got %d", s.Count)
	}
	if s.Build == nil {
		return nil, fmt.Errorf("series needs a Build function")
	}

	result := &SeriesResult{
		Tournaments: s.Count,
		Wins:        make(map[string]int),
		Points:      make(map[string]int),
		Podiums:     make(map[string]int),
	}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	if s.Parallelism > 0 {
		g.SetLimit(s.Parallelism)
	}

	for i := 0; i < s.Count; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := s.Build(i)
			if err != nil {
				return fmt.Errorf("building tournament %d: %w", i, err)
			}
			standings, err := t.Run()
			if err != nil {
				return fmt.Errorf("tournament %d: %w", i, err)
			}

			mu.Lock()
			defer mu.Unlock()
			for _, standing := range standings {
				result.Points[standing.ID] += len(standings) - standing.Place
				switch standing.Place {
				case 1:
					result.Wins[standing.ID]++
					result.Podiums[standing.ID] += 3
				case 2:
					result.Podiums[standing.ID] += 2
				case 3:
					result.Podiums[standing.ID]++
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
