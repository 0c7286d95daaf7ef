/*
Package contracts provides access to the compiled Land Registry contract.

Unlike registries that ship prebuilt NEF artifacts, the contract is compiled
from its Go source on demand, so callers always get artifacts matching the
current source tree.
*/
package contracts

import (
	"fmt"
	"path"

	"github.com/nspcc-dev/neo-go/cli/smartcontract"
	"github.com/nspcc-dev/neo-go/pkg/compiler"
	"github.com/nspcc-dev/neo-go/pkg/config"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// LandRegistrySource is the path to the Land Registry contract source
// relative to the repository root.
const LandRegistrySource = "contracts/landreg"

// Contract groups information about a compiled Neo contract.
type Contract struct {
	Hash     util.Uint160
	NEF      *nef.File
	Manifest *manifest.Manifest
}

var compiled = map[string]*Contract{}

// Compile compiles the contract from the given source directory and returns
// its NEF, manifest and the hash it will get when deployed by sender. Results
// are cached per directory, so the sender of the first call determines the
// cached hash.
func Compile(sender util.Uint160, ctrPath string) (*Contract, error) {
	if c, ok := compiled[ctrPath]; ok {
		return c, nil
	}

	// nef.NewFile() cares about version a lot.
	if config.Version == "" {
		config.Version = "0.90.0-landreg"
	}

	conf, err := smartcontract.ParseContractConfig(path.Join(ctrPath, "config.yml"))
	if err != nil {
		return nil, err
	}

	o := &compiler.Options{}
	o.Name = conf.Name
	o.ContractEvents = conf.Events
	o.ContractSupportedStandards = conf.SupportedStandards
	o.Permissions = make([]manifest.Permission, len(conf.Permissions))
	for i := range conf.Permissions {
		o.Permissions[i] = manifest.Permission(conf.Permissions[i])
	}
	o.SafeMethods = conf.SafeMethods

	ne, di, err := compiler.CompileWithOptions(ctrPath, nil, o)
	if err != nil {
		return nil, fmt.Errorf("compile contract: %w", err)
	}

	m, err := compiler.CreateManifest(di, o)
	if err != nil {
		return nil, fmt.Errorf("create manifest: %w", err)
	}

	c := &Contract{
		Hash:     state.CreateContractHash(sender, ne.Checksum, m.Name),
		NEF:      ne,
		Manifest: m,
	}
	compiled[ctrPath] = c
	return c, nil
}
