package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hello-world", Slugify("Hello World!"))
	assert.Equal(t, "hello-world", Slugify("Hello, World!"))
	assert.Equal(t, "hello-world", Slugify("Hello    World"))
	assert.Equal(t, "hello-world", Slugify("  Hello World  "))
	assert.Equal(t, "the-great-data-harvest-of-2145", Slugify("The Great Data Harvest of 2145"))
	assert.Equal(t, "", Slugify("!!!"))
	assert.Equal(t, "", Slugify(""))
}

func TestSlugifyBounded(t *testing.T) {
	long := strings.Repeat("word ", 100)
	out := Slugify(long)
	assert.LessOrEqual(t, len(out), 255)
	assert.False(t, strings.HasPrefix(out, "-"))
	assert.False(t, strings.HasSuffix(out, "-"))
	for _, r := range out {
		ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
		assert.True(t, ok, "unexpected rune %q", r)
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	for _, title := range []string{
		"Hello World!",
		"Sylvan Data Consortium",
		"L'Étrange Académie",
		"  spaced   out  ",
	} {
		s := Slugify(title)
		assert.Equal(t, s, Slugify(s))
		// The slug survives a round trip through the display form.
		assert.Equal(t, s, Slugify(Unslugify(s)))
	}
}

func TestUnslugify(t *testing.T) {
	assert.Equal(t, "Hello World", Unslugify("hello-world"))
	assert.Equal(t, "Hello World", Unslugify("hello--world"))
	assert.Equal(t, "Hello World", Unslugify("-hello-world-"))
	assert.Equal(t, "Ancient Ruins", Unslugify("ancient-ruins"))
	assert.Equal(t, "", Unslugify(""))
}

func TestUnslugifyNotAnInverse(t *testing.T) {
	// Casing and punctuation are gone for good.
	assert.Equal(t, "Hello World", Unslugify(Slugify("HELLO, world!")))
}
