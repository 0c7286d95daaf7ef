package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const landregPath = "../contracts/landreg"

func iteratorToArray(iter *storage.Iterator) []stackitem.Item {
	stackItems := make([]stackitem.Item, 0)
	for iter.Next() {
		stackItems = append(stackItems, iter.Value())
	}
	return stackItems
}

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

func compileRegistry(t *testing.T, e *neotest.Executor) *neotest.Contract {
	return neotest.CompileFile(t, e.CommitteeHash, landregPath, path.Join(landregPath, "config.yml"))
}

// deployRegistry deploys the land registry contract with the given developer
// account and returns its hash.
func deployRegistry(t *testing.T, e *neotest.Executor, developer util.Uint160) util.Uint160 {
	c := compileRegistry(t, e)
	e.DeployContract(t, c, []any{developer})
	return c.Hash
}

// newRegistryInvoker deploys the contract with the committee as developer and
// returns a committee-signed invoker for it.
func newRegistryInvoker(t *testing.T) (*neotest.Executor, *neotest.ContractInvoker) {
	e := newExecutor(t)
	h := deployRegistry(t, e, e.CommitteeHash)
	return e, e.CommitteeInvoker(h)
}

func gasBalance(t *testing.T, e *neotest.Executor, acc util.Uint160) int64 {
	stack, err := e.CommitteeInvoker(e.NativeHash(t, nativenames.Gas)).TestInvoke(t, "balanceOf", acc)
	require.NoError(t, err)
	return stack.Pop().BigInt().Int64()
}
