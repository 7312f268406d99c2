package domain

// QuestionState is the full target state of one question as derived from
// a source row. Create and update operations carry it whole; options are
// always replaced as a set, never patched.
type QuestionState struct {
	CategoryID    int64
	QuestionText  string
	TimeLimit     int
	IsProduct     bool
	ProductTypeID string
	Hint          string
	Options       OptionSet
}

// QuestionUpdate targets an existing question with its full new state.
type QuestionUpdate struct {
	QuestionID string
	State      QuestionState
}

// ImportPlan is the reconciliation result: three disjoint operation
// lists that the applier executes under one transaction. Creates and
// updates are in source row order, deletes in existing-record order.
type ImportPlan struct {
	Creates []QuestionState
	Updates []QuestionUpdate
	Deletes []string
}

// IsEmpty reports whether the plan contains no operations.
func (p *ImportPlan) IsEmpty() bool {
	return len(p.Creates) == 0 && len(p.Updates) == 0 && len(p.Deletes) == 0
}
