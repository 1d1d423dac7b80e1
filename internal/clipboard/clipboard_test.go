package clipboard

import (
	stderrors "errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpshade/wordsmith/internal/errors"
)

func stubClipboard(t *testing.T, isUnsupported bool, write func(string) error) {
	t.Helper()
	origWrite, origUnsupported := writeAll, unsupported
	writeAll = write
	unsupported = func() bool { return isUnsupported }
	t.Cleanup(func() {
		writeAll, unsupported = origWrite, origUnsupported
	})
}

func TestCopyWritesText(t *testing.T) {
	var got string
	stubClipboard(t, false, func(text string) error {
		got = text
		return nil
	})

	msg, err := CopyWithFallback("Old Mill of Ages")
	require.NoError(t, err)
	assert.Equal(t, "Copied to clipboard!", msg)
	assert.Equal(t, "Old Mill of Ages", got)
	assert.True(t, IsClipboardAvailable())
}

func TestCopyUnsupported(t *testing.T) {
	stubClipboard(t, true, func(string) error {
		t.Fatal("write must not be attempted")
		return nil
	})

	err := Copy("x")
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrCodeClipboardUnavailable, appErr.Code)
	assert.Equal(t, GetInstallInstructions(), appErr.Details)
	assert.False(t, IsClipboardAvailable())
}

func TestCopyWriteFailure(t *testing.T) {
	cause := stderrors.New("xclip: exit status 1")
	stubClipboard(t, false, func(string) error { return cause })

	_, err := CopyWithFallback("x")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, cause))
}

func TestGetInstallInstructions(t *testing.T) {
	instructions := GetInstallInstructions()
	assert.NotEmpty(t, instructions)
	if runtime.GOOS == "linux" {
		assert.Contains(t, instructions, "xclip")
	}
}
