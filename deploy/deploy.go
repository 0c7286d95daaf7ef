// Package deploy provides the Land Registry contract deployment routine.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"

	"github.com/landreg-dev/landreg-contract/contracts"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for the Land Registry deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions
	// to the blockchain.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract
	// by its address. GetContractStateByHash returns an error with
	// 'Unknown contract' substring if the requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// Prm groups parameters of the Land Registry deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance to deploy to.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	LocalAccount *wallet.Account

	// Account that will manage the verification agent roster and receive
	// registration fees. Fixed for the contract's lifetime.
	Developer util.Uint160

	// Contract source directory. Defaults to [contracts.LandRegistrySource].
	SourceDir string
}

// Deploy compiles the Land Registry contract and deploys it to the Neo
// blockchain represented by prm.Blockchain with prm.Developer as the fixed
// registry developer. Deploy returns the address of the deployed contract.
// If the contract is already on the chain, Deploy does nothing and returns
// its address.
func Deploy(ctx context.Context, prm Prm) (util.Uint160, error) {
	switch {
	case prm.Blockchain == nil:
		return util.Uint160{}, errors.New("missing blockchain")
	case prm.LocalAccount == nil:
		return util.Uint160{}, errors.New("missing local account")
	case prm.Developer.Equals(util.Uint160{}):
		return util.Uint160{}, errors.New("missing developer account")
	}

	l := prm.Logger
	if l == nil {
		l = zap.NewNop()
	}

	srcDir := prm.SourceDir
	if srcDir == "" {
		srcDir = contracts.LandRegistrySource
	}

	ctr, err := contracts.Compile(prm.LocalAccount.ScriptHash(), srcDir)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("compile contract from '%s': %w", srcDir, err)
	}

	l.Info("compiled land registry contract", zap.Stringer("expected address", ctr.Hash))

	if err = ctx.Err(); err != nil {
		return util.Uint160{}, err
	}

	alreadyOnChain, err := isDeployed(prm.Blockchain, ctr.Hash)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("check contract presence on the chain: %w", err)
	}
	if alreadyOnChain {
		l.Info("land registry contract is already on the chain, skip deployment")
		return ctr.Hash, nil
	}

	act, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("init transaction sender: %w", err)
	}

	l.Info("sending deployment transaction",
		zap.Stringer("developer", prm.Developer))

	txHash, vub, err := management.New(act).Deploy(ctr.NEF, ctr.Manifest, []any{prm.Developer})
	aer, err := act.Wait(txHash, vub, err)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("deploy contract: %w", err)
	}
	if aer.VMState != vmstate.Halt {
		return util.Uint160{}, fmt.Errorf("deployment transaction faulted: %s", aer.FaultException)
	}

	l.Info("land registry contract deployed", zap.Stringer("address", ctr.Hash))

	return ctr.Hash, nil
}

func isDeployed(b Blockchain, addr util.Uint160) (bool, error) {
	_, err := b.GetContractStateByHash(addr)
	if err != nil {
		if strings.Contains(err.Error(), "Unknown contract") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
