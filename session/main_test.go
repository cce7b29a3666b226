package session_test

import (
	"testing"

	"github.com/ruffel/commandeer/commandeertest"
)

func TestMain(m *testing.M) {
	commandeertest.Main(m)
}
