// Package timeparse resolves natural-language time expressions
// ("tomorrow at 9am", "Monday 10am", "in 2 hours") into absolute
// timestamps relative to a reference time.
package timeparse

import (
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var parser = newParser()

func newParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// Parse extracts a temporal expression from text and resolves it against
// ref. The second return is false when no recognizable expression exists;
// that is a soft failure the caller should answer with a re-prompt, not
// an error.
func Parse(text string, ref time.Time) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	result, err := parser.Parse(text, ref)
	if err != nil || result == nil {
		return time.Time{}, false
	}

	return result.Time, true
}
