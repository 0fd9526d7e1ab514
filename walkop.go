package revset

// walkSet wraps a cloneable RevWalk as an InternalRevset (§4.3.2).
type walkSet struct {
	walk RevWalk
}

func newWalk(w RevWalk) InternalRevset {
	return &walkSet{walk: w}
}

func (s *walkSet) Iterator() Iterator {
	return s.walk.Clone()
}

func (s *walkSet) ToPredicateFunc() PredicateFunc {
	return AdaptToPredicateFunc(s.walk.Clone())
}
