package model

// GameMode enumerates the four drill games.
type GameMode string

const (
	ModeListening GameMode = "listening"
	ModeSpeaking  GameMode = "speaking"
	ModeReading   GameMode = "reading"
	ModeWriting   GameMode = "writing"
)

// AllGameModes is a slice of all playable game modes.
var AllGameModes = []GameMode{
	ModeListening,
	ModeSpeaking,
	ModeReading,
	ModeWriting,
}

// ParseGameMode validates a mode string from a URL parameter.
func ParseGameMode(s string) (GameMode, bool) {
	mode := GameMode(s)
	for _, m := range AllGameModes {
		if m == mode {
			return mode, true
		}
	}
	return "", false
}

// SkillType extends GameMode with the vocabulary skill tracked in progress rows.
type SkillType string

const (
	SkillListening  SkillType = "listening"
	SkillSpeaking   SkillType = "speaking"
	SkillReading    SkillType = "reading"
	SkillWriting    SkillType = "writing"
	SkillVocabulary SkillType = "vocabulary"
)
