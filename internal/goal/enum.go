package goal

type GoalType string

const (
	TypeTime  GoalType = "TIME"
	TypeCount GoalType = "COUNT"
)

var AllTypes = []GoalType{TypeTime, TypeCount}

func (t GoalType) IsValid() bool {
	for _, v := range AllTypes {
		if t == v {
			return true
		}
	}
	return false
}

type GoalPriority string

const (
	PriorityHigh   GoalPriority = "HIGH"
	PriorityMedium GoalPriority = "MEDIUM"
	PriorityLow    GoalPriority = "LOW"
)

var AllPriorities = []GoalPriority{PriorityHigh, PriorityMedium, PriorityLow}

func (p GoalPriority) IsValid() bool {
	for _, v := range AllPriorities {
		if p == v {
			return true
		}
	}
	return false
}
