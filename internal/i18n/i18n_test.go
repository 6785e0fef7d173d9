package i18n

import (
	"slices"
	"strings"
	"testing"
)

func TestInitAndAvailableLocales(t *testing.T) {
	Init("en")
	if GetLang() != "en" {
		t.Fatalf("expected lang 'en', got %q", GetLang())
	}
	av := AvailableLocales()
	for _, k := range []string{"en", "ru"} {
		if !slices.Contains(av, k) {
			t.Fatalf("expected available locale %q in %v", k, av)
		}
	}
}

func TestT_BasicAndFormatting(t *testing.T) {
	Init("en")

	if got := T("host.not_found", "alpha"); got != `Host "alpha" not found.` {
		t.Fatalf("unexpected formatted translation: %q", got)
	}
	if got := T("no.such.message"); got != "no.such.message" {
		t.Fatalf("expected fallback to message ID, got %q", got)
	}

	SetLang("ru")
	if GetLang() != "ru" {
		t.Fatalf("expected lang 'ru', got %q", GetLang())
	}
	if got := T("host.not_found", "alpha"); !strings.Contains(got, "alpha") || strings.Contains(got, "not found") {
		t.Fatalf("expected Russian translation, got %q", got)
	}
	Init("en")
}

func TestLocalesHaveSameKeys(t *testing.T) {
	en := loadKeys(t, "locales/en.yaml")
	ru := loadKeys(t, "locales/ru.yaml")
	for k := range en {
		if _, ok := ru[k]; !ok {
			t.Errorf("ru.yaml is missing %q", k)
		}
	}
	for k := range ru {
		if _, ok := en[k]; !ok {
			t.Errorf("en.yaml is missing %q", k)
		}
	}
}

func loadKeys(t *testing.T, name string) map[string]bool {
	t.Helper()
	data, err := localeFS.ReadFile(name)
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	keys := map[string]bool{}
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if k, _, ok := strings.Cut(line, ":"); ok {
			keys[strings.TrimSpace(k)] = true
		}
	}
	return keys
}
