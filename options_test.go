package bellhop

import (
	"errors"
	"testing"
)

func TestOptionCharacterRoundTrip(t *testing.T) {
	for _, fam := range optionFamilies() {
		for c, tag := range fam.fwd {
			got, err := fam.decode(c)
			if err != nil {
				t.Fatalf("%s: decode(%q): %v", fam.name, string(c), err)
			}
			if got != tag {
				t.Errorf("%s: decode(%q) = %q, want %q", fam.name, string(c), got, tag)
			}
			if back := fam.encode(tag); back != c {
				t.Errorf("%s: encode(%q) = %q, want %q", fam.name, tag, string(back), string(c))
			}
		}
	}
}

func TestOptionDecodeUnknownCharacter(t *testing.T) {
	for _, fam := range optionFamilies() {
		if _, err := fam.decode('?'); err == nil {
			t.Errorf("%s: decode('?') succeeded, want error", fam.name)
		} else {
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Errorf("%s: decode('?') error type %T, want *FormatError", fam.name, err)
			}
		}
	}
}

func TestOptionEncodeUnknownTagPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("encode of an unknown tag did not panic")
		}
	}()
	taskOpts.encode("no-such-task")
}

func TestOptionTagsSorted(t *testing.T) {
	for _, fam := range optionFamilies() {
		tags := fam.tags()
		if len(tags) != len(fam.fwd) {
			t.Errorf("%s: %d tags for %d characters", fam.name, len(tags), len(fam.fwd))
		}
		for i := 1; i < len(tags); i++ {
			if tags[i] < tags[i-1] {
				t.Errorf("%s: tags not sorted: %v", fam.name, tags)
			}
		}
	}
}
