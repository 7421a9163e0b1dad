package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOffset(t *testing.T) {
	require.Equal(t, 0, Offset(1, 10))
	require.Equal(t, 10, Offset(2, 10))
	require.Equal(t, 4, Offset(3, 2))
}

func TestTotalPages(t *testing.T) {
	require.Equal(t, 0, TotalPages(0, 10))
	require.Equal(t, 1, TotalPages(1, 10))
	require.Equal(t, 1, TotalPages(10, 10))
	require.Equal(t, 2, TotalPages(11, 10))
	require.Equal(t, 2, TotalPages(3, 2))
}

func TestGetPageInfo(t *testing.T) {
	info := GetPageInfo(3, 1, 2)
	require.True(t, info.HasNextPage)
	require.False(t, info.HasPreviousPage)
	require.Equal(t, int64(3), info.TotalCount)
	require.Equal(t, 2, info.TotalPages)
	require.Equal(t, 1, info.CurrentPage)

	info = GetPageInfo(3, 2, 2)
	require.False(t, info.HasNextPage)
	require.True(t, info.HasPreviousPage)
	require.Equal(t, 2, info.CurrentPage)
}

func TestGetPageInfo_PagePastEnd(t *testing.T) {
	info := GetPageInfo(3, 5, 2)
	require.False(t, info.HasNextPage)
	require.True(t, info.HasPreviousPage)
	require.Equal(t, 5, info.CurrentPage)
	require.Equal(t, 2, info.TotalPages)
}

func TestGetPageInfo_Empty(t *testing.T) {
	info := GetPageInfo(0, 1, 10)
	require.False(t, info.HasNextPage)
	require.False(t, info.HasPreviousPage)
	require.Equal(t, int64(0), info.TotalCount)
	require.Equal(t, 0, info.TotalPages)
}
