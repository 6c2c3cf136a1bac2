package llm

// Tone maps an age to the communication-style descriptor used in every
// generation prompt. Four fixed bands; the boundaries are exact.
func Tone(age int) string {
	switch {
	case age < 13:
		return "friendly, simple, and encouraging like talking to a curious kid"
	case age < 18:
		return "engaging and supportive like talking to a teenager"
	case age < 25:
		return "enthusiastic and relatable like talking to a young adult"
	default:
		return "professional but approachable like talking to an adult professional"
	}
}
