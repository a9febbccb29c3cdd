package repository

// DefaultListLimit bounds the general listing when no usable limit is given.
const DefaultListLimit = 50

// DefaultWardListLimit bounds the per-ward listing.
const DefaultWardListLimit = 100

// ListQuery carries the optional listing parameters from the API. Empty
// strings mean "not supplied".
type ListQuery struct {
	Status    string
	Ward      string
	IssueType string
	Limit     int
}

// QueryPlan is the resolved listing plan. At most one equality predicate is
// ever selected, in precedence order status > ward > issue type; parameters
// past the first are silently ignored. This is a capability limit of the
// planner, kept so the backing store never needs a multi-field index. With
// no predicate the plan orders by creation time descending instead.
type QueryPlan struct {
	Field              string
	Value              string
	OrderByCreatedDesc bool
	Limit              int
}

// Filtered reports whether the plan carries an equality predicate.
func (p QueryPlan) Filtered() bool {
	return p.Field != ""
}

// Plan selects the single predicate and result bound for q. Non-positive
// limits fall back to the default.
func (q ListQuery) Plan() QueryPlan {
	plan := QueryPlan{Limit: q.Limit}
	if plan.Limit <= 0 {
		plan.Limit = DefaultListLimit
	}
	switch {
	case q.Status != "":
		plan.Field, plan.Value = "status", q.Status
	case q.Ward != "":
		plan.Field, plan.Value = "assigned_to", q.Ward
	case q.IssueType != "":
		plan.Field, plan.Value = "issue_type", q.IssueType
	default:
		plan.OrderByCreatedDesc = true
	}
	return plan
}
