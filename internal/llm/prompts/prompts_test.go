package prompts

import (
	"strings"
	"testing"
)

func TestBuildLesson(t *testing.T) {
	prompt, err := BuildLesson(Data{Topic: "Python Basics", Age: 16, Tone: "engaging and supportive"})
	if err != nil {
		t.Fatalf("BuildLesson: %v", err)
	}
	if !strings.Contains(prompt, `"Python Basics"`) {
		t.Error("prompt should contain the quoted topic")
	}
	if !strings.Contains(prompt, "16 years old") {
		t.Error("prompt should contain the age")
	}
	if !strings.Contains(prompt, "engaging and supportive tone") {
		t.Error("prompt should contain the tone")
	}
	if !strings.Contains(prompt, "Introduction") {
		t.Error("prompt should request the lesson structure")
	}
}

func TestBuildQuiz(t *testing.T) {
	prompt, err := BuildQuiz(Data{Topic: "Loops", Age: 30, Tone: "professional"})
	if err != nil {
		t.Fatalf("BuildQuiz: %v", err)
	}
	if !strings.Contains(prompt, "exactly 8 multiple choice") {
		t.Error("prompt should pin the question count")
	}
	if !strings.Contains(prompt, `"questions"`) {
		t.Error("prompt should describe the JSON contract")
	}
	if !strings.Contains(prompt, "index (0-3)") {
		t.Error("prompt should describe the correct-index range")
	}
}

func TestBuildAnswer(t *testing.T) {
	prompt, err := BuildAnswer(Data{
		Topic:    "Loops",
		Age:      12,
		Tone:     "friendly",
		Question: "What is a while loop?",
	})
	if err != nil {
		t.Fatalf("BuildAnswer: %v", err)
	}
	if !strings.Contains(prompt, `"What is a while loop?"`) {
		t.Error("prompt should contain the quoted question")
	}
	if !strings.Contains(prompt, `"Loops"`) {
		t.Error("prompt should contain the quoted topic")
	}
	if !strings.Contains(prompt, "redirect them back") {
		t.Error("prompt should instruct redirecting off-topic questions")
	}
}
