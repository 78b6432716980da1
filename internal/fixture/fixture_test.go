package fixture

import (
	"testing"

	"github.com/cmroboticsacademy/facilitate/loader"
)

func TestLoadBundledFixturesParse(t *testing.T) {
	for _, name := range Names() {
		data, err := Load(name)
		if err != nil {
			t.Fatalf("fixture %q: unexpected error: %v", name, err)
		}
		if _, err := loader.Load(data); err != nil {
			t.Fatalf("fixture %q: does not parse as a program: %v", name, err)
		}
	}
}

func TestLoadUnknownFixtureFails(t *testing.T) {
	if _, err := Load("does-not-exist"); err == nil {
		t.Fatalf("expected an error for an unknown fixture name")
	}
}
