package testsupport

import (
	"os"
	"testing"
)

// ReadFixture returns the contents of a testdata file or fails tb.
func ReadFixture(tb testing.TB, path string) []byte {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}
