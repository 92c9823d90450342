package event

import "time"

// Event types emitted by lanes.
const (
	TypePriced = "priced"
)

// Context describes where an event originated.
type Context struct {
	ItemID      string `json:"itemID"`
	Lane        string `json:"lane"`
	EventType   string `json:"eventType"`
	TimeTakenMs int    `json:"timeTakenMs"`
}

type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata"`
	Data      T                      `json:"data"`
}

func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: time.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}
