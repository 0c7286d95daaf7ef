package contracts

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	sender := util.Uint160{1, 2, 3}

	c, err := Compile(sender, "landreg")
	require.NoError(t, err)
	require.Equal(t, "Land Registry", c.Manifest.Name)
	require.Equal(t, state.CreateContractHash(sender, c.NEF.Checksum, c.Manifest.Name), c.Hash)

	require.NotNil(t, c.Manifest.ABI.GetMethod("registerLand", 4))
	require.NotNil(t, c.Manifest.ABI.GetMethod("viewLand", 1))
	require.NotNil(t, c.Manifest.ABI.GetMethod("queryRemote", 2))
	require.NotNil(t, c.Manifest.ABI.GetEvent("LandRegistered"))
	require.NotNil(t, c.Manifest.ABI.GetEvent("ExternalViewResult"))

	// The result is cached, the first sender determines the hash.
	c2, err := Compile(util.Uint160{4, 5, 6}, "landreg")
	require.NoError(t, err)
	require.Same(t, c, c2)
}

func TestCompileMissingSource(t *testing.T) {
	_, err := Compile(util.Uint160{}, "nonexistent")
	require.Error(t, err)
}
