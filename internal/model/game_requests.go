package model

// GameAttemptRequest is the payload for submitting one attempt. Fields
// are mode-specific; unused ones are ignored by the scoring policy.
type GameAttemptRequest struct {
	// Reading: chosen option.
	OptionID string `json:"option_id"`

	// Writing: essay text and time spent writing.
	Text           string `json:"text"`
	ElapsedSeconds int    `json:"elapsed_seconds" binding:"min=0"`

	// Listening/speaking: what was spoken and for how long. The server
	// side recognizer turns this into confidence / keyword signals.
	Transcript       string `json:"transcript"`
	RecordingSeconds int    `json:"recording_seconds" binding:"min=0"`
}
