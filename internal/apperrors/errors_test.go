package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "message and cause",
			err:  TranscriptionFailed("whisper", errors.New("exit status 1"), "whisper failed"),
			want: "whisper failed: exit status 1",
		},
		{
			name: "message only",
			err:  UnsupportedFileType("detect", nil, "unsupported file type: .xyz"),
			want: "unsupported file type: .xyz",
		},
		{
			name: "kind as fallback",
			err:  &Error{Kind: KindDeliveryFailed},
			want: "DeliveryFailed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestIsMatchesKind(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("process: %w", UnreachableSource("probe", cause, "cannot reach source"))

	assert.True(t, errors.Is(err, ErrUnreachableSource))
	assert.False(t, errors.Is(err, ErrAcquisitionFailed))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, KindUnreachableSource, KindOf(err))
	assert.Equal(t, KindUnknown, KindOf(cause))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 1, KindUnknown.ExitCode())
	seen := map[int]bool{}
	for k := KindUnsupportedFileType; k <= KindDeliveryFailed; k++ {
		code := k.ExitCode()
		assert.False(t, seen[code], "duplicate exit code for %s", k)
		assert.NotZero(t, code)
		seen[code] = true
	}
}
