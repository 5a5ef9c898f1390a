//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package opt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/markkurossi/optreduce/netlist"
)

func TestParseArgs(t *testing.T) {
	params := NewParams()
	require.NoError(t, ParseArgs(params, nil))
	require.False(t, params.Fine)
	require.Nil(t, params.Selection)

	params = NewParams()
	require.NoError(t, ParseArgs(params, []string{"-fine", "top", "sub/$*"}))
	require.True(t, params.Fine)
	sel, ok := params.Selection.(*netlist.Selection)
	require.True(t, ok)
	require.Equal(t, "top sub/$*", sel.String())

	params = NewParams()
	require.ErrorIs(t, ParseArgs(params, []string{"-full"}), ErrUnknownOption)
	require.ErrorIs(t, ParseArgs(params, []string{"top", "-fine"}),
		ErrUnknownOption)
	require.Error(t, ParseArgs(params, []string{"top/[x"}))
}
