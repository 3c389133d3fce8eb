package routine

type RoutineType string

const (
	TypeTime  RoutineType = "TIME"
	TypeCount RoutineType = "COUNT"
)

var AllTypes = []RoutineType{TypeTime, TypeCount}

func (t RoutineType) IsValid() bool {
	for _, v := range AllTypes {
		if t == v {
			return true
		}
	}
	return false
}
