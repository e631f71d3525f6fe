package mode

// Mode is a response-behavior tier controlling the prompt template, token
// budget and pipeline complexity of a chat request.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeLite     Mode = "lite"
	ModeStandard Mode = "standard"
	ModeHardcore Mode = "hardcore"
)

// Parse maps a request string to a Mode. Empty input means auto.
func Parse(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeLite, ModeStandard, ModeHardcore, ModeAuto:
		return Mode(s), true
	case "":
		return ModeAuto, true
	default:
		return "", false
	}
}

// Effective reports whether the mode may reach an upstream call path.
// Auto must always be resolved first.
func (m Mode) Effective() bool {
	return m == ModeLite || m == ModeStandard || m == ModeHardcore
}
