package defaults

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeouts(t *testing.T) {
	// leave room to write the error response after the handler gives up
	assert.LessOrEqual(t, ValidateHandlerTimeout+5*time.Second, ServerWriteTimeout)
	assert.Less(t, ServerReadTimeout, ServerWriteTimeout)
	assert.Positive(t, ServerShutdownTimeout)
}

func TestLimits(t *testing.T) {
	assert.Less(t, MultipartMemoryBytes, MaxUploadBytes)
	assert.Positive(t, ChunkSize)
	assert.GreaterOrEqual(t, SuggestionMinDistance, 1)
}
