package astcimage_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-astc/astcencoder/astcimage"
)

func TestErrorInfo_TruncatesToCapacity(t *testing.T) {
	var info astcimage.ErrorInfo
	info.SetMessage(strings.Repeat("x", 200))

	require.Equal(t, astcimage.ErrorInfoSize-1, info.Len())
	require.Equal(t, strings.Repeat("x", astcimage.ErrorInfoSize-1), info.Message())
}

func TestErrorInfo_ShorterMessageReplacesLonger(t *testing.T) {
	var info astcimage.ErrorInfo
	info.SetMessage("could not compress image")
	info.SetMessage("no data")

	require.Equal(t, "no data", info.Message())
}

func TestErrorInfo_CaptureOnlyOnFailure(t *testing.T) {
	var info astcimage.ErrorInfo
	require.True(t, info.Capture(astcimage.ErrCancelled))
	require.False(t, info.Capture(nil))
	require.Equal(t, "task was cancelled", info.Message())

	info.Reset()
	require.Empty(t, info.Message())
}

func TestError_MatchesSentinelThroughWrapping(t *testing.T) {
	_, err := astcimage.NewRawImage([]byte{}, 0, 1, 4, 1, false, false)
	require.Error(t, err)

	wrapped := fmt.Errorf("loading tile: %w", err)
	require.ErrorIs(t, wrapped, astcimage.ErrInvalidWidth)
	require.NotErrorIs(t, wrapped, astcimage.ErrInvalidHeight)
	require.Equal(t, astcimage.KindInvalidInput, astcimage.KindOf(wrapped))
	require.Equal(t, "invalid width", err.Error())
}

func TestKindOf(t *testing.T) {
	require.Equal(t, astcimage.KindNone, astcimage.KindOf(nil))
	require.Equal(t, astcimage.KindExecution, astcimage.KindOf(errors.New("boom")))
	require.Equal(t, astcimage.KindCancelled, astcimage.KindOf(astcimage.ErrCancelled))
	require.Equal(t, astcimage.KindBusy, astcimage.KindOf(astcimage.ErrWorkerBusy))
	require.Equal(t, "resource", astcimage.KindOf(astcimage.ErrContextAlloc).String())
}
