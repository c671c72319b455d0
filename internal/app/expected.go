package app

import (
	"fmt"
	"os"
	"strings"

	diff "github.com/hexops/gotextdiff"
	myers "github.com/hexops/gotextdiff/myers"
	"github.com/pkg/errors"
)

// CheckExpected compares rendered answers with the content of expectedPath and
// returns a unified diff, or an empty string when they match. Line endings
// and a missing trailing newline are not treated as differences.
func CheckExpected(rendered []byte, expectedPath string) (string, error) {
	data, err := os.ReadFile(expectedPath)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read expected answers %s", expectedPath)
	}

	expected := normalizeText(string(data))
	actual := normalizeText(string(rendered))
	if expected == actual {
		return "", nil
	}

	edits := myers.ComputeEdits("", expected, actual)
	unified := diff.ToUnified("a/"+expectedPath, "b/answers", expected, edits)
	return fmt.Sprint(unified), nil
}

func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	return s
}
