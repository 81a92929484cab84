package dfs

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ngvozdiev/netsim/graph"
)

// diversePathsDelayPenalty is added, once per already-chosen link a
// candidate path reuses, when KDiverse scores candidates.
const diversePathsDelayPenalty = time.Second

// cachedPath pairs a link sequence with its precomputed total delay.
type cachedPath struct {
	links graph.Links
	seq   graph.LinkSequence
	delay time.Duration
}

// PathCacheOption configures the fixed DFS request template a PathCache
// replays for every (source, destination) pair it hasn't cached yet.
type PathCacheOption func(*PathCache)

// WithCacheMaxHops bounds the hop count of every path the cache computes.
func WithCacheMaxHops(n int) PathCacheOption {
	return func(pc *PathCache) { pc.maxHops = n }
}

// WithCacheMaxDelay bounds the delay of every path the cache computes.
func WithCacheMaxDelay(d time.Duration) PathCacheOption {
	return func(pc *PathCache) { pc.maxDelay = d }
}

// WithCacheMaxDuration bounds the wall-clock time any one cache-filling DFS
// run may take.
func WithCacheMaxDuration(d time.Duration) PathCacheOption {
	return func(pc *PathCache) { pc.maxDuration = d }
}

// WithCacheStepsToCheckForStop sets how many stack operations the
// cache-filling DFS performs between samples of ctx cancellation.
func WithCacheStepsToCheckForStop(n int) PathCacheOption {
	return func(pc *PathCache) { pc.stepsToCheckForStop = n }
}

// WithCacheNodeDisjoint makes the cache compute node-disjoint rather than
// merely edge-disjoint loopless paths.
func WithCacheNodeDisjoint() PathCacheOption {
	return func(pc *PathCache) { pc.nodeDisjoint = true }
}

// PathCache lazily enumerates and caches, per (source, destination) pair,
// the full delay-sorted list of loopless paths found by a fixed-template
// DFS run (hop, weight, and duration budgets plus the node-disjoint flag).
// Per-query constraints and delay limits are applied against this cached
// base list rather than baked into it, so the same cached list serves every
// query regardless of the constraint it is evaluated against. A single
// mutex guards both ArrayGraph construction (one per destination) and the
// per-pair path lists, matching the combined link/path-storage lock the
// interning layer uses: path enumeration reads the array graph that
// destination-scoped locking already serializes access to.
type PathCache struct {
	storage             *graph.Storage
	maxHops             int
	maxDelay            time.Duration
	maxDuration         time.Duration
	stepsToCheckForStop int
	nodeDisjoint        bool

	mu          sync.Mutex
	arrayGraphs map[*graph.Node]*ArrayGraph
	paths       map[pathCacheKey][]cachedPath
}

type pathCacheKey struct {
	src, dst *graph.Node
}

// NewPathCache returns an empty PathCache over storage.
func NewPathCache(storage *graph.Storage, opts ...PathCacheOption) *PathCache {
	pc := &PathCache{
		storage:     storage,
		arrayGraphs: make(map[*graph.Node]*ArrayGraph),
		paths:       make(map[pathCacheKey][]cachedPath),
	}
	for _, o := range opts {
		o(pc)
	}
	return pc
}

func (pc *PathCache) arrayGraphForLocked(dst *graph.Node) (*ArrayGraph, error) {
	if ag, ok := pc.arrayGraphs[dst]; ok {
		return ag, nil
	}
	ag, err := NewArrayGraph(pc.storage, dst)
	if err != nil {
		return nil, err
	}
	pc.arrayGraphs[dst] = ag
	return ag, nil
}

// cacheAll returns the sorted path list for (src, dst), computing it on
// first access and caching it for every subsequent call.
func (pc *PathCache) cacheAll(ctx context.Context, src, dst *graph.Node) ([]cachedPath, error) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	key := pathCacheKey{src: src, dst: dst}
	if cached, ok := pc.paths[key]; ok {
		return cached, nil
	}

	ag, err := pc.arrayGraphForLocked(dst)
	if err != nil {
		return nil, err
	}

	var found []cachedPath
	err = Search(ctx, ag, src, SearchOptions{
		MaxHops:             pc.maxHops,
		MaxDelay:            pc.maxDelay,
		MaxDuration:         pc.maxDuration,
		StepsToCheckForStop: pc.stepsToCheckForStop,
		NodeDisjoint:        pc.nodeDisjoint,
	}, func(links graph.Links) bool {
		seq, seqErr := graph.NewLinkSequence(links)
		if seqErr != nil {
			return true
		}
		found = append(found, cachedPath{
			links: append(graph.Links(nil), links...),
			seq:   seq,
			delay: seq.Delay(),
		})
		return true
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].delay < found[j].delay })
	pc.paths[key] = found
	return found, nil
}

// filterCompliant returns the subsequence of all whose delay is within
// delayLimit (zero means unbounded) and that satisfies constraint (nil
// means no constraint), preserving the ascending-delay order of all.
func filterCompliant(all []cachedPath, constraint Constraint, delayLimit time.Duration) []cachedPath {
	if constraint == nil && delayLimit <= 0 {
		return all
	}
	out := make([]cachedPath, 0, len(all))
	for _, p := range all {
		if delayLimit > 0 && p.delay > delayLimit {
			continue
		}
		if constraint != nil && !constraint.Complies(p.seq) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// LowestDelay returns the first cached path from src to dst that satisfies
// constraint and delayLimit (zero means unbounded), interned under cookie,
// or the storage's empty path if none complies.
func (pc *PathCache) LowestDelay(ctx context.Context, src, dst *graph.Node, constraint Constraint, delayLimit time.Duration, cookie uint64) (*graph.Path, error) {
	all, err := pc.cacheAll(ctx, src, dst)
	if err != nil {
		return nil, err
	}
	filtered := filterCompliant(all, constraint, delayLimit)
	if len(filtered) == 0 {
		return pc.storage.EmptyPath(), nil
	}
	return pc.storage.PathFromLinks(cookie, filtered[0].links)
}

// KLowest returns the first k constraint- and delayLimit-satisfying cached
// paths from src to dst, ordered by ascending delay, each interned under
// cookie.
func (pc *PathCache) KLowest(ctx context.Context, src, dst *graph.Node, k int, constraint Constraint, delayLimit time.Duration, cookie uint64) ([]*graph.Path, error) {
	all, err := pc.cacheAll(ctx, src, dst)
	if err != nil {
		return nil, err
	}
	filtered := filterCompliant(all, constraint, delayLimit)
	if k > len(filtered) {
		k = len(filtered)
	}
	out := make([]*graph.Path, k)
	for i := 0; i < k; i++ {
		p, err := pc.storage.PathFromLinks(cookie, filtered[i].links)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// KHopsFromLowest returns the lowest-delay constraint- and delayLimit-
// satisfying path P plus every other such path whose hop count is at most k
// more than P's, each interned under cookie.
func (pc *PathCache) KHopsFromLowest(ctx context.Context, src, dst *graph.Node, k int, constraint Constraint, delayLimit time.Duration, cookie uint64) ([]*graph.Path, error) {
	all, err := pc.cacheAll(ctx, src, dst)
	if err != nil {
		return nil, err
	}
	filtered := filterCompliant(all, constraint, delayLimit)
	if len(filtered) == 0 {
		return nil, nil
	}

	maxHops := len(filtered[0].links) + k

	lowest, err := pc.storage.PathFromLinks(cookie, filtered[0].links)
	if err != nil {
		return nil, err
	}
	out := []*graph.Path{lowest}
	for _, p := range filtered[1:] {
		if len(p.links) > maxHops {
			continue
		}
		path, err := pc.storage.PathFromLinks(cookie, p.links)
		if err != nil {
			return nil, err
		}
		out = append(out, path)
	}
	return out, nil
}

// KDiverse returns up to k paths from src to dst, chosen from those
// satisfying constraint and delayLimit, to spread link usage across the
// result set: it iteratively picks the unchosen path with the lowest
// (delay + penalty) score, where penalty is diversePathsDelayPenalty per
// link the candidate shares with an already-chosen path, then merges the
// newly chosen path's links into the running overlap set. If fewer than k
// distinct paths survive the loop, the result is topped up from the
// delay-sorted list. The final result is sorted by ascending delay and
// interned under cookie.
func (pc *PathCache) KDiverse(ctx context.Context, src, dst *graph.Node, k int, constraint Constraint, delayLimit time.Duration, cookie uint64) ([]*graph.Path, error) {
	all, err := pc.cacheAll(ctx, src, dst)
	if err != nil {
		return nil, err
	}
	filtered := filterCompliant(all, constraint, delayLimit)
	if len(filtered) == 0 {
		return nil, nil
	}
	if k > len(filtered) {
		k = len(filtered)
	}

	chosenLinks := make(map[*graph.Link]bool)
	used := make(map[int]bool)
	var result []cachedPath

	for len(result) < k {
		bestIdx := -1
		var bestScore time.Duration
		for i, p := range filtered {
			if used[i] {
				continue
			}
			overlap := 0
			for _, l := range p.links {
				if chosenLinks[l] {
					overlap++
				}
			}
			score := p.delay + time.Duration(overlap)*diversePathsDelayPenalty
			if bestIdx == -1 || score < bestScore {
				bestIdx, bestScore = i, score
			}
		}
		if bestIdx == -1 {
			break
		}
		used[bestIdx] = true
		result = append(result, filtered[bestIdx])
		for _, l := range filtered[bestIdx].links {
			chosenLinks[l] = true
		}
	}

	if len(result) < k {
		for i, p := range filtered {
			if len(result) >= k {
				break
			}
			if used[i] {
				continue
			}
			result = append(result, p)
			used[i] = true
		}
	}

	sort.SliceStable(result, func(i, j int) bool { return result[i].delay < result[j].delay })

	out := make([]*graph.Path, len(result))
	for i, p := range result {
		path, err := pc.storage.PathFromLinks(cookie, p.links)
		if err != nil {
			return nil, err
		}
		out[i] = path
	}
	return out, nil
}

// Stats summarizes how much of a PathCache's space has been populated.
type Stats struct {
	NumSourceDestPairs int
	NumPaths           int
}

// CacheStats returns a snapshot of the cache's current contents.
func (pc *PathCache) CacheStats() Stats {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	s := Stats{NumSourceDestPairs: len(pc.paths)}
	for _, v := range pc.paths {
		s.NumPaths += len(v)
	}
	return s
}
