package storefront

type Event int

const (
	CartOpened Event = iota
	CartClosed
	OrderSubmitted
)

func (e Event) String() string {
	switch e {
	case CartOpened:
		return "cart_opened"
	case CartClosed:
		return "cart_closed"
	case OrderSubmitted:
		return "order_submitted"
	default:
		return "unknown"
	}
}

type Listener func(Event)

// Recorder collects events in the order they were emitted.
type Recorder struct {
	events []Event
}

func (r *Recorder) Listen(e Event) {
	r.events = append(r.events, e)
}

func (r *Recorder) Events() []Event {
	return r.events
}

func (r *Recorder) Names() []string {
	names := make([]string, 0, len(r.events))
	for _, e := range r.events {
		names = append(names, e.String())
	}
	return names
}
