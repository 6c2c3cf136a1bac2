package llm

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pavelanni/tutor/internal/quiz"
)

func TestToneBands(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{8, "friendly, simple, and encouraging like talking to a curious kid"},
		{12, "friendly, simple, and encouraging like talking to a curious kid"},
		{13, "engaging and supportive like talking to a teenager"},
		{17, "engaging and supportive like talking to a teenager"},
		{18, "enthusiastic and relatable like talking to a young adult"},
		{24, "enthusiastic and relatable like talking to a young adult"},
		{25, "professional but approachable like talking to an adult professional"},
		{70, "professional but approachable like talking to an adult professional"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("age %d", tt.age), func(t *testing.T) {
			if got := Tone(tt.age); got != tt.want {
				t.Errorf("Tone(%d) = %q, want %q", tt.age, got, tt.want)
			}
		})
	}
}

// validQuizJSON builds a well-formed quiz response with n questions.
func validQuizJSON(n int) string {
	var sb strings.Builder
	sb.WriteString(`{"questions": [`)
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `{
			"question": "What does question %d ask?",
			"options": ["A) One", "B) Two", "C) Three", "D) Four"],
			"correct": %d,
			"explanation": "Because."
		}`, i+1, i%4)
	}
	sb.WriteString(`]}`)
	return sb.String()
}

func TestParseQuizValid(t *testing.T) {
	items, err := parseQuiz(validQuizJSON(quiz.NumQuestions))
	if err != nil {
		t.Fatalf("parseQuiz: %v", err)
	}
	if len(items) != quiz.NumQuestions {
		t.Fatalf("expected %d items, got %d", quiz.NumQuestions, len(items))
	}
	if items[0].Question != "What does question 1 ask?" {
		t.Errorf("unexpected question text %q", items[0].Question)
	}
	if items[3].Correct != 3 {
		t.Errorf("expected correct index 3, got %d", items[3].Correct)
	}
}

func TestParseQuizFenced(t *testing.T) {
	tests := []struct {
		name string
		wrap func(string) string
	}{
		{"json fence", func(s string) string { return "```json\n" + s + "\n```" }},
		{"bare fence", func(s string) string { return "```\n" + s + "\n```" }},
		{"fence with prose", func(s string) string {
			return "Here is your quiz:\n```json\n" + s + "\n```\nEnjoy!"
		}},
		{"no fence", func(s string) string { return s }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := parseQuiz(tt.wrap(validQuizJSON(quiz.NumQuestions)))
			if err != nil {
				t.Fatalf("parseQuiz: %v", err)
			}
			if len(items) != quiz.NumQuestions {
				t.Fatalf("expected %d items, got %d", quiz.NumQuestions, len(items))
			}
		})
	}
}

func TestParseQuizRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not JSON", "I'm sorry, I can't do that."},
		{"wrong question count", validQuizJSON(5)},
		{"too many questions", validQuizJSON(9)},
		{"empty questions", `{"questions": []}`},
		{"missing key", `{"items": []}`},
		{"three options", `{"questions": [` + strings.Repeat(`{"question":"Q?","options":["A","B","C"],"correct":0,"explanation":"E"},`, 7) +
			`{"question":"Q?","options":["A","B","C"],"correct":0,"explanation":"E"}]}`},
		{"correct out of range", `{"questions": [` + strings.Repeat(`{"question":"Q?","options":["A","B","C","D"],"correct":4,"explanation":"E"},`, 7) +
			`{"question":"Q?","options":["A","B","C","D"],"correct":4,"explanation":"E"}]}`},
		{"empty question text", `{"questions": [` + strings.Repeat(`{"question":" ","options":["A","B","C","D"],"correct":0,"explanation":"E"},`, 7) +
			`{"question":" ","options":["A","B","C","D"],"correct":0,"explanation":"E"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := parseQuiz(tt.raw)
			if err == nil {
				t.Fatal("expected parse error")
			}
			if items != nil {
				t.Errorf("expected nil items on error, got %d", len(items))
			}
		})
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"unterminated fence", "```json\n{\"a\": 1}", `{"a": 1}`},
		{"surrounding prose", "Sure!\n```json\n{\"a\": 1}\n```\nDone.", `{"a": 1}`},
		{"whitespace", "  \n{\"a\": 1}\n ", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.in); got != tt.want {
				t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	long := strings.Repeat("x", 300)
	got := truncate(long, rawDiagnosticLimit)
	if len(got) != rawDiagnosticLimit+3 {
		t.Errorf("truncated length = %d, want %d", len(got), rawDiagnosticLimit+3)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated diagnostic should end with ellipsis, got %q", got[len(got)-5:])
	}
}

func TestIsDegraded(t *testing.T) {
	if !IsDegraded(DegradedLessonPrefix + "timeout") {
		t.Error("lesson error marker should be degraded")
	}
	if !IsDegraded(DegradedAnswerPrefix + "timeout") {
		t.Error("answer error marker should be degraded")
	}
	if IsDegraded("A real lesson about loops.") {
		t.Error("real content should not be degraded")
	}
}
