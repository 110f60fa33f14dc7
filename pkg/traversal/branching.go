package traversal

import "context"

type entry[T any, K comparable] struct {
	item T
	key  K
	ctx  *StepContext
}

// branch is one node of the branch arena. A branch sees the keys its parent marked at or before
// horizon, and so on up the lineage. up[k] is the ancestor 2^k levels above.
type branch[T any, K comparable] struct {
	parent  int
	horizon uint64
	depth   int
	up      []int
	queue   []entry[T, K]
	head    int
}

// mark records that a key was queued on a branch at seq.
type mark struct {
	branch int
	seq    uint64
}

// run holds the state of one execution. Non-branching runs use the root branch only.
type run[T any, K comparable] struct {
	t        *Traversal[T, K]
	id       string
	branches []*branch[T, K]
	marks    map[K][]mark
	work     []int
	seq      uint64
	// lifts counts ancestor jumps taken by visited checks.
	lifts int

	delivered int
	queued    int
	cancelled bool
}

func newRun[T any, K comparable](t *Traversal[T, K], id string) *run[T, K] {
	root := &branch[T, K]{parent: -1}
	return &run[T, K]{
		t:        t,
		id:       id,
		branches: []*branch[T, K]{root},
		marks:    make(map[K][]mark),
		work:     []int{0},
	}
}

func (r *run[T, K]) outcome() Outcome {
	return Outcome{
		RunID:     r.id,
		Delivered: r.delivered,
		Queued:    r.queued,
		Branches:  len(r.branches),
		Cancelled: r.cancelled,
	}
}

func (r *run[T, K]) isVisited(b int, key K) bool {
	for _, m := range r.marks[key] {
		if r.sees(b, m) {
			return true
		}
	}
	return false
}

// sees reports whether m is visible from branch b: m was marked on b itself, or on an ancestor
// before the fork leading towards b.
func (r *run[T, K]) sees(b int, m mark) bool {
	if m.branch == b {
		return true
	}
	owner := r.branches[m.branch]
	if owner.depth >= r.branches[b].depth {
		return false
	}
	child := r.ancestorAt(b, owner.depth+1)
	br := r.branches[child]
	return br.parent == m.branch && m.seq <= br.horizon
}

// ancestorAt returns the ancestor of b at depth, lifting by powers of two.
func (r *run[T, K]) ancestorAt(b, depth int) int {
	for k, diff := 0, r.branches[b].depth-depth; diff > 0; k, diff = k+1, diff>>1 {
		if diff&1 == 1 {
			b = r.branches[b].up[k]
			r.lifts++
		}
	}
	return b
}

func (r *run[T, K]) push(b int, e entry[T, K]) {
	r.seq++
	r.marks[e.key] = append(r.marks[e.key], mark{branch: b, seq: r.seq})
	r.branches[b].queue = append(r.branches[b].queue, e)
	r.queued++
}

func (r *run[T, K]) fork(parent int, e entry[T, K]) {
	id := len(r.branches)
	depth := r.branches[parent].depth + 1
	up := []int{parent}
	for k := 0; ; k++ {
		above := r.branches[up[k]]
		if k >= len(above.up) {
			break
		}
		up = append(up, above.up[k])
	}
	r.branches = append(r.branches, &branch[T, K]{
		parent:  parent,
		horizon: r.seq,
		depth:   depth,
		up:      up,
	})
	e.ctx.BranchID = id
	e.ctx.BranchDepth = depth
	e.ctx.IsBranchStartItem = true
	r.push(id, e)
	r.work = append(r.work, id)
}

func (r *run[T, K]) seed() {
	t := r.t
	for _, item := range t.starts {
		if !t.shouldQueueStart(item) {
			continue
		}
		key := t.key(item)
		if r.isVisited(0, key) {
			continue
		}
		ctx := newStartContext()
		for _, cv := range t.computers {
			ctx.values[cv.Key()] = cv.ComputeInitialValue(item)
		}
		r.push(0, entry[T, K]{item: item, key: key, ctx: ctx})
	}
}

// drain processes branches in work-list order. A branch runs its whole queue before the next
// branch starts. It returns early when ctx ends or the consumer stops pulling.
func (r *run[T, K]) drain(ctx context.Context, yield func(T, *StepContext) bool) {
	for len(r.work) > 0 {
		b := r.work[0]
		r.work = r.work[1:]
		br := r.branches[b]
		for br.head < len(br.queue) {
			if ctx.Err() != nil {
				r.cancelled = true
				return
			}
			e := br.queue[br.head]
			br.queue[br.head] = entry[T, K]{}
			br.head++
			if !r.step(ctx, b, e, yield) {
				return
			}
		}
		br.queue, br.head = nil, 0
	}
}

func (r *run[T, K]) step(ctx context.Context, b int, e entry[T, K], yield func(T, *StepContext) bool) bool {
	t := r.t
	e.ctx.IsStopping = t.shouldStop(e.item, e.ctx)
	r.delivered++
	for _, a := range t.actions {
		a(e.item, e.ctx)
	}
	if yield != nil && !yield(e.item, e.ctx) {
		return false
	}

	queued := 0
	if !e.ctx.IsStopping {
		queued = r.expand(b, e)
	}
	if t.cfg.hooks.OnStep != nil {
		t.cfg.hooks.OnStep(ctx, &StepEvent{
			RunID:      r.id,
			Name:       t.cfg.name,
			StepNumber: e.ctx.StepNumber,
			BranchID:   b,
			Stopping:   e.ctx.IsStopping,
			Queued:     queued,
		})
	}
	return true
}

func (r *run[T, K]) expand(b int, current entry[T, K]) int {
	t := r.t
	candidates := t.next(current.item)
	if len(candidates) == 0 {
		return 0
	}

	accepted := make([]entry[T, K], 0, len(candidates))
	seen := make(map[K]struct{}, len(candidates))
	for _, next := range candidates {
		key := t.key(next)
		if _, dup := seen[key]; dup || r.isVisited(b, key) {
			continue
		}
		nextCtx := current.ctx.child()
		for _, cv := range t.computers {
			k := cv.Key()
			nextCtx.values[k] = cv.ComputeNextValue(next, current.item, current.ctx.Value(k))
		}
		if !t.shouldQueue(next, nextCtx, current.item, current.ctx) {
			continue
		}
		seen[key] = struct{}{}
		accepted = append(accepted, entry[T, K]{item: next, key: key, ctx: nextCtx})
	}

	if t.cfg.branching && len(accepted) > 1 {
		for _, e := range accepted {
			r.fork(b, e)
		}
		return len(accepted)
	}
	for _, e := range accepted {
		r.push(b, e)
	}
	return len(accepted)
}
