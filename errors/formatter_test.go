package errors

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat_Nil(t *testing.T) {
	assert.Empty(t, Format(nil, DefaultFormatterConfig()))
}

func TestFormat_MessageAndHints(t *testing.T) {
	err := Validation(ErrRoleExclusion, "host win01 cannot have role master").
		WithHint("windows machines can only be agents").
		Err()

	out := Format(err, FormatterConfig{Color: "never", MaxLineLength: 200})
	assert.Contains(t, out, "host win01 cannot have role master")
	assert.Contains(t, out, "hint: windows machines can only be agents")
}

func TestFormat_Explanation(t *testing.T) {
	err := Validation(ErrMasterCount, "found none among 2 hosts").
		WithExplanation("a multi-host run installs agents against one master").
		Err()

	out := Format(err, FormatterConfig{Color: "never", MaxLineLength: 200})
	assert.Contains(t, out, "found none among 2 hosts")
	assert.Contains(t, out, "a multi-host run installs agents against one master")
}

func TestFormat_WrapsLongMessages(t *testing.T) {
	err := errors.New(strings.Repeat("word ", 40))

	out := Format(err, FormatterConfig{Color: "never", MaxLineLength: 20})
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len(line), 20)
	}
}

func TestFormat_VerboseIncludesContext(t *testing.T) {
	err := Build(ErrInvalidPlatform).WithContext("host", "web01").Err()

	out := Format(err, FormatterConfig{Color: "never", Verbose: true})
	assert.Contains(t, out, "Context")
	assert.Contains(t, out, "web01")
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, "a b\nc d", wrapText("a b c d", 3))
	assert.Equal(t, "single", wrapText("single", 0))
}
