package match

// Verdict is the outcome of one scalar field comparison. A field the query
// did not request is not requested and carries no match information.
type Verdict struct {
	requested bool
	matched   bool
}

// NewVerdict creates a scalar field verdict.
func NewVerdict(requested, matched bool) Verdict {
	return Verdict{requested: requested, matched: matched && requested}
}

// Requested reports whether the query constrained this field.
func (v Verdict) Requested() bool { return v.requested }

// Matched reports whether the item satisfied the constraint.
func (v Verdict) Matched() bool { return v.matched }

// FeatureMatch records which requested features the item carries.
type FeatureMatch struct {
	matched        []string
	totalRequested int
}

// NewFeatureMatch creates a feature match record.
func NewFeatureMatch(matched []string, totalRequested int) FeatureMatch {
	return FeatureMatch{matched: matched, totalRequested: totalRequested}
}

// Matched returns the requested features found on the item.
func (f FeatureMatch) Matched() []string { return f.matched }

// TotalRequested returns how many features the query asked for.
func (f FeatureMatch) TotalRequested() int { return f.totalRequested }

// Ratio returns |matched| / |requested|, or 0 when nothing was requested.
func (f FeatureMatch) Ratio() float64 {
	if f.totalRequested == 0 {
		return 0
	}
	return float64(len(f.matched)) / float64(f.totalRequested)
}

// FieldMatch is the per-item match evidence over all structured fields.
// Derived during scoring, never persisted.
type FieldMatch struct {
	roomType    Verdict
	maxCapacity Verdict
	viewType    Verdict
	features    FeatureMatch
}

// New creates a field match record.
func New(roomType, maxCapacity, viewType Verdict, features FeatureMatch) FieldMatch {
	return FieldMatch{
		roomType:    roomType,
		maxCapacity: maxCapacity,
		viewType:    viewType,
		features:    features,
	}
}

// RoomType returns the room type verdict.
func (m FieldMatch) RoomType() Verdict { return m.roomType }

// MaxCapacity returns the capacity verdict.
func (m FieldMatch) MaxCapacity() Verdict { return m.maxCapacity }

// ViewType returns the view type verdict.
func (m FieldMatch) ViewType() Verdict { return m.viewType }

// Features returns the feature match record.
func (m FieldMatch) Features() FeatureMatch { return m.features }
