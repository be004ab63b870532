package domain

// ConstraintMatch is one constraint's contribution to a shift's score.
type ConstraintMatch struct {
	ConstraintName string `json:"constraintName"`
	Score          Score  `json:"score"`
}

// Indictment explains which constraints a shift assignment violates or
// satisfies, with the summed score contribution. Computed by the
// solver, carried transiently on shift views.
type Indictment struct {
	ConstraintMatches []ConstraintMatch `json:"constraintMatches"`
	Score             Score             `json:"score"`
}

func (i *Indictment) Add(match ConstraintMatch) {
	i.ConstraintMatches = append(i.ConstraintMatches, match)
	i.Score = i.Score.Add(match.Score)
}
