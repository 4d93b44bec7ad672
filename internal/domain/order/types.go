package order

type Type string

const (
	TypeOnline    Type = "online"
	TypePractical Type = "practical"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeOnline, TypePractical:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCancelled, StatusExpired:
		return true
	default:
		return false
	}
}

// transitions is the complete set of allowed status moves. Anything absent is rejected.
var transitions = map[Status][]Status{
	StatusPending: {StatusPaid, StatusCancelled},
	StatusPaid:    {StatusExpired, StatusCancelled},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// SourcesOf lists the statuses from which next is reachable. Stores use it to
// build compare-and-set predicates.
func SourcesOf(next Status) []Status {
	var out []Status
	for _, from := range []Status{StatusPending, StatusPaid, StatusCancelled, StatusExpired} {
		if from.CanTransitionTo(next) {
			out = append(out, from)
		}
	}
	return out
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

type ItemKind string

const (
	ItemCourse        ItemKind = "course"
	ItemPracticalSeat ItemKind = "practical_seat"
	ItemPlasticCard   ItemKind = "plastic_card"
)

func (k ItemKind) IsValid() bool {
	switch k {
	case ItemCourse, ItemPracticalSeat, ItemPlasticCard:
		return true
	default:
		return false
	}
}
