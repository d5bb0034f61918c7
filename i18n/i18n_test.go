package i18n

import (
	"context"
	"testing"
)

func TestDetectLanguage(t *testing.T) {
	if DetectLanguage("en-US,en;q=0.9") != "en" {
		t.Fatalf("expected en")
	}
	if DetectLanguage("EN-gb") != "en" {
		t.Fatalf("expected en for EN-gb")
	}
	if DetectLanguage("de-DE,ru;q=0.8") != "ru" {
		t.Fatalf("expected ru from second tag")
	}
	if DetectLanguage("fr-FR,fr;q=0.8") != "ru" {
		t.Fatalf("expected ru fallback")
	}
	if DetectLanguage("") != "ru" {
		t.Fatalf("expected default ru")
	}
}

func TestTranslations(t *testing.T) {
	if T("en", "required") != "Required" {
		t.Fatalf("expected Required")
	}
	if T("ru", "required") != "Обязательное поле" {
		t.Fatalf("expected russian message")
	}
	// unknown code -> fallback to code
	if T("en", "__nope__") != "__nope__" {
		t.Fatalf("expected fallback to code")
	}
	// unknown language -> fallback to ru translation if exists
	if T("es", "not_found") != "Запись не найдена" {
		t.Fatalf("expected ru fallback for es lang")
	}
}

func TestMessageTablesHaveSameKeys(t *testing.T) {
	for code := range messages[LangRU] {
		if _, ok := messages[LangEN][code]; !ok {
			t.Errorf("missing en translation for %q", code)
		}
	}
	for code := range messages[LangEN] {
		if _, ok := messages[LangRU][code]; !ok {
			t.Errorf("missing ru translation for %q", code)
		}
	}
}

func TestLangContext(t *testing.T) {
	if LangFrom(context.Background()) != DefaultLang {
		t.Fatalf("expected default language")
	}
	ctx := WithLang(context.Background(), "en")
	if LangFrom(ctx) != "en" {
		t.Fatalf("expected en from context")
	}
}
