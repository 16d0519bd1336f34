package loadtest

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	PercentageMultiplier = 100
	emailDomain          = "mergington.edu"
)

// outcome classifies a signup response.
type outcome int

const (
	outcomeAccepted outcome = iota
	outcomeDuplicate
	outcomeFull
	outcomeNotFound
	outcomeFailed
)

func (o outcome) String() string {
	switch o {
	case outcomeAccepted:
		return "accepted"
	case outcomeDuplicate:
		return "duplicate"
	case outcomeFull:
		return "full"
	case outcomeNotFound:
		return "not_found"
	default:
		return "failed"
	}
}
