package resources

import (
	"bytes"
	"testing"
)

func TestLogo(t *testing.T) {
	for _, name := range []string{IconActive, IconPaused} {
		resource, err := Logo(name)
		if err != nil {
			t.Fatalf("Logo(%s): %v", name, err)
		}
		if !bytes.HasPrefix(resource.Content(), []byte("<svg")) {
			t.Errorf("%s is not an svg", name)
		}
		again := MustLogo(name)
		if again != resource {
			t.Errorf("%s not cached", name)
		}
	}

	if _, err := Logo("missing.svg"); err == nil {
		t.Error("missing logo should fail")
	}
}
