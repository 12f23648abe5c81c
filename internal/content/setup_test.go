package content

import (
	"os"
	"testing"

	"github.com/tripstych/elemental/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init("error", "text")

	// Exit with the result of the tests
	os.Exit(m.Run())
}
