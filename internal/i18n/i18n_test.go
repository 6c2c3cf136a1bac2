package i18n

import (
	"context"
	"testing"
)

func initLang(t *testing.T, lang string) context.Context {
	t.Helper()
	if err := Init(lang); err != nil {
		t.Fatalf("Init(%q): %v", lang, err)
	}
	loc := NewLocalizer(lang)
	return WithLocalizer(context.Background(), loc)
}

func TestTranslateEnglish(t *testing.T) {
	ctx := initLang(t, "en")

	got := T(ctx, "AppTitle")
	if got != "AI Coding Tutor" {
		t.Errorf("T(AppTitle) = %q, want 'AI Coding Tutor'", got)
	}

	got = T(ctx, "TakeQuiz")
	if got != "Take Quiz to Continue" {
		t.Errorf("T(TakeQuiz) = %q, want 'Take Quiz to Continue'", got)
	}
}

func TestTranslateRussian(t *testing.T) {
	ctx := initLang(t, "ru")

	got := T(ctx, "AppTitle")
	if got != "ИИ-репетитор по программированию" {
		t.Errorf("T(AppTitle) = %q, want 'ИИ-репетитор по программированию'", got)
	}

	got = T(ctx, "SignIn")
	if got != "Войти" {
		t.Errorf("T(SignIn) = %q, want 'Войти'", got)
	}
}

func TestTemplateDataTranslation(t *testing.T) {
	ctx := initLang(t, "en")

	got := Td(ctx, "Learning", map[string]any{"Topic": "Python"})
	if got != "Learning: Python" {
		t.Errorf("Td(Learning, Topic=Python) = %q, want 'Learning: Python'", got)
	}

	got = Td(ctx, "QuizPassRule", map[string]any{"Pass": 5, "Total": 8})
	if got != "You need 5 correct answers out of 8 to pass!" {
		t.Errorf("Td(QuizPassRule) = %q", got)
	}
}

func TestMissingKey(t *testing.T) {
	ctx := initLang(t, "en")

	got := T(ctx, "NonExistentKey")
	if got != "NonExistentKey" {
		t.Errorf("T(NonExistentKey) = %q, want 'NonExistentKey'", got)
	}
}

func TestMissingLocalizerFallsBackToEnglish(t *testing.T) {
	initLang(t, "en")

	got := T(context.Background(), "Logout")
	if got != "Logout" {
		t.Errorf("T with bare context = %q, want 'Logout'", got)
	}
}
