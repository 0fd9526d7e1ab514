package revset

// ResolvedExpression is the immutable, tree-shaped input to Evaluate:
// symbolic names have already been resolved to commit identifiers.
type ResolvedExpression interface {
	isResolvedExpression()
}

// Commits is a literal set of commit ids.
type Commits struct {
	IDs []CommitID
}

func (Commits) isResolvedExpression() {}

// Ancestors is the ancestors of Heads restricted to Generation.
type Ancestors struct {
	Heads      ResolvedExpression
	Generation GenerationRangeU64
}

func (Ancestors) isResolvedExpression() {}

// Range is the ancestors of Heads that are not ancestors of Roots.
type Range struct {
	Roots      ResolvedExpression
	Heads      ResolvedExpression
	Generation GenerationRangeU64
}

func (Range) isResolvedExpression() {}

// DagRange is the set of commits reachable from Roots to Heads, restricted
// to GenerationFromRoots.
type DagRange struct {
	Roots               ResolvedExpression
	Heads               ResolvedExpression
	GenerationFromRoots GenerationRangeU64
}

func (DagRange) isResolvedExpression() {}

// Heads is the subset of Candidates with no descendant in Candidates.
type Heads struct {
	Candidates ResolvedExpression
}

func (Heads) isResolvedExpression() {}

// Roots is the subset of Candidates with no ancestor in Candidates.
type Roots struct {
	Candidates ResolvedExpression
}

func (Roots) isResolvedExpression() {}

// Latest is the Count candidates with the greatest committer timestamp.
type Latest struct {
	Candidates ResolvedExpression
	Count      int
}

func (Latest) isResolvedExpression() {}

// Union is the union of A and B.
type Union struct {
	A ResolvedExpression
	B ResolvedExpression
}

func (Union) isResolvedExpression() {}

// Intersection is the intersection of A and B.
type Intersection struct {
	A ResolvedExpression
	B ResolvedExpression
}

func (Intersection) isResolvedExpression() {}

// Difference is A minus B.
type Difference struct {
	A ResolvedExpression
	B ResolvedExpression
}

func (Difference) isResolvedExpression() {}

// FilterWithin is Candidates restricted to entries matching Predicate.
type FilterWithin struct {
	Candidates ResolvedExpression
	Predicate  ResolvedPredicateExpression
}

func (FilterWithin) isResolvedExpression() {}
