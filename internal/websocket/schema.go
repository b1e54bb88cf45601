package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionSubmit  Action = "submit"
	ActionAdvance Action = "advance"
	ActionRetry   Action = "retry"
	ActionState   Action = "state"
	ActionPing    Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// SubmitRequest carries one attempt for the current item. Fields are
// mode-specific; the server ignores the ones that do not apply.
type SubmitRequest struct {
	Action           Action `json:"action"`
	OptionID         string `json:"option_id"`
	Text             string `json:"text"`
	ElapsedSeconds   int    `json:"elapsed_seconds"`
	Transcript       string `json:"transcript"`
	RecordingSeconds int    `json:"recording_seconds"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventOutcome Event = "outcome"
	EventState   Event = "state"
	EventResults Event = "results"
	EventError   Event = "error"
	EventPong    Event = "pong"
)

type OutcomeResponse struct {
	Event     Event       `json:"event"`
	Outcome   interface{} `json:"outcome"`
	State     interface{} `json:"state"`
	Persisted bool        `json:"persisted"`
}

type StateResponse struct {
	Event Event       `json:"event"`
	State interface{} `json:"state"`
}

type ResultsResponse struct {
	Event     Event       `json:"event"`
	Summary   interface{} `json:"summary"`
	Finalize  interface{} `json:"finalize,omitempty"`
	Persisted bool        `json:"persisted"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
