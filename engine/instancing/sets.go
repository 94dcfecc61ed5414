package instancing

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

const (
	// LaneMarkers is the set of dashed centre-line markers.
	LaneMarkers = "lane_markers"

	// PostsLeft is the set of barrier posts along the left offset curve.
	PostsLeft = "posts_left"

	// PostsRight is the set of barrier posts along the right offset curve.
	PostsRight = "posts_right"

	// DefaultBuildWorkers bounds how many sets are sampled at once.
	DefaultBuildWorkers = 4
)

// SetSpec describes one named instance set to build.
type SetSpec struct {
	Name    string
	Curve   Sampler
	Count   int
	Options []BatchBuilderOption
}

// BuildSets builds every described set concurrently on a bounded worker pool and waits for all of them.
// Building happens once, before rendering starts.
//
// Parameters:
//   - workers: the maximum number of concurrent builds (minimum 1)
//   - specs: the sets to build; names must be unique and curves non-nil
//
// Returns:
//   - map[string]*Batch: the built batches keyed by set name
//   - error: an error if a spec is invalid
func BuildSets(workers int, specs ...SetSpec) (map[string]*Batch, error) {
	seen := make(map[string]struct{}, len(specs))
	for _, s := range specs {
		if s.Curve == nil {
			return nil, fmt.Errorf("instance set %q has no curve", s.Name)
		}
		if _, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("duplicate instance set %q", s.Name)
		}
		seen[s.Name] = struct{}{}
	}

	pool := worker.NewDynamicWorkerPool(max(workers, 1), 256, 1*time.Second)

	// The pool's own Wait blocks until workers idle out, so a WaitGroup is the barrier here.
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		out = make(map[string]*Batch, len(specs))
	)
	start := time.Now()
	for id, s := range specs {
		wg.Add(1)
		spec := s
		pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				b := Build(spec.Name, spec.Curve, spec.Count, spec.Options...)
				mu.Lock()
				out[spec.Name] = b
				mu.Unlock()
				return b, nil
			},
		})
	}
	wg.Wait()

	log.Printf("[instancing] built %d instance sets in %s", len(out), time.Since(start))
	return out, nil
}
