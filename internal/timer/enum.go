package timer

type TimerStatus string

const (
	StatusActive    TimerStatus = "ACTIVE"
	StatusPaused    TimerStatus = "PAUSED"
	StatusCompleted TimerStatus = "COMPLETED"
)

var AllStatuses = []TimerStatus{
	StatusActive,
	StatusPaused,
	StatusCompleted,
}

func (s TimerStatus) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}
