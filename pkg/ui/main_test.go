package ui

import (
	"os"
	"testing"

	"github.com/vanderheijden86/cascade/pkg/debug"
)

func TestMain(m *testing.M) {
	// Keep debug output out of test logs even when CASCADE_DEBUG is set
	debug.SetEnabled(false)

	os.Exit(m.Run())
}
