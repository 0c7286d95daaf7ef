package tests

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/landreg-dev/landreg-contract/common"
	"github.com/landreg-dev/landreg-contract/contracts/landreg/landregconst"
	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const registrationFee = int64(landregconst.RegistrationFee)

func registerParcel(t *testing.T, c *neotest.ContractInvoker, owner neotest.Signer, certificate, size int64) util.Uint256 {
	return c.WithSigners(owner).Invoke(t, stackitem.Null{}, "registerLand",
		owner.ScriptHash(), certificate, size, registrationFee)
}

func parcelDetails(owner util.Uint160, size int64, status string) stackitem.Item {
	return stackitem.NewStruct([]stackitem.Item{
		stackitem.NewByteArray(owner.BytesBE()),
		stackitem.NewBigInteger(big.NewInt(size)),
		stackitem.NewByteArray([]byte(status)),
	})
}

func TestDeploy(t *testing.T) {
	e := newExecutor(t)
	ctr := compileRegistry(t, e)

	e.DeployContractCheckFAULT(t, ctr, []any{[]byte{1, 2, 3}},
		"incorrect developer script hash length")

	e.DeployContract(t, ctr, []any{e.CommitteeHash})
	c := e.CommitteeInvoker(ctr.Hash)

	// Hash160 return values come out of the VM as Buffer items.
	c.Invoke(t, stackitem.NewBuffer(e.CommitteeHash.BytesBE()), "developer")
	c.Invoke(t, stackitem.NewBigInteger(big.NewInt(registrationFee)), "registrationFee")
	c.Invoke(t, stackitem.NewBigInteger(big.NewInt(common.Version)), "version")
}

func TestRegisterLand(t *testing.T) {
	e, c := newRegistryInvoker(t)
	owner := e.NewAccount(t)
	cOwner := c.WithSigners(owner)

	cOwner.InvokeFail(t, "certificate must be non-zero", "registerLand",
		owner.ScriptHash(), int64(0), int64(100), registrationFee)
	cOwner.InvokeFail(t, "size must be positive", "registerLand",
		owner.ScriptHash(), int64(42), int64(0), registrationFee)
	cOwner.InvokeFail(t, landregconst.IncorrectFeeError, "registerLand",
		owner.ScriptHash(), int64(42), int64(100), registrationFee-1)
	cOwner.InvokeFail(t, landregconst.IncorrectFeeError, "registerLand",
		owner.ScriptHash(), int64(42), int64(100), registrationFee+1)

	// Committee signs, but the record names another owner.
	c.InvokeFail(t, common.ErrOwnerWitnessFailed, "registerLand",
		owner.ScriptHash(), int64(42), int64(100), registrationFee)

	txHash := registerParcel(t, c, owner, 42, 100)
	e.CheckTxNotificationEvent(t, txHash, 1, state.NotificationEvent{
		ScriptHash: c.Hash,
		Name:       "FeePaid",
		Item: stackitem.NewArray([]stackitem.Item{
			stackitem.NewByteArray(owner.ScriptHash().BytesBE()),
			stackitem.NewBigInteger(big.NewInt(registrationFee)),
		}),
	})
	e.CheckTxNotificationEvent(t, txHash, 2, state.NotificationEvent{
		ScriptHash: c.Hash,
		Name:       "LandRegistered",
		Item: stackitem.NewArray([]stackitem.Item{
			stackitem.NewBigInteger(big.NewInt(42)),
			stackitem.NewByteArray(owner.ScriptHash().BytesBE()),
		}),
	})

	cOwner.InvokeFail(t, landregconst.AlreadyExistsError, "registerLand",
		owner.ScriptHash(), int64(42), int64(200), registrationFee)
}

func TestRegisterLandFeeForwarding(t *testing.T) {
	e := newExecutor(t)
	developer := e.NewAccount(t)
	h := deployRegistry(t, e, developer.ScriptHash())
	c := e.CommitteeInvoker(h)

	owner := e.NewAccount(t)
	before := gasBalance(t, e, developer.ScriptHash())

	registerParcel(t, c, owner, 42, 100)

	after := gasBalance(t, e, developer.ScriptHash())
	require.Equal(t, registrationFee, after-before)
}

func TestViewLand(t *testing.T) {
	e, c := newRegistryInvoker(t)
	owner := e.NewAccount(t)

	c.InvokeFail(t, landregconst.NotFoundError, "viewLand", int64(42))

	registerParcel(t, c, owner, 42, 100)
	c.Invoke(t, parcelDetails(owner.ScriptHash(), 100, "Pending"), "viewLand", int64(42))

	agent := e.NewAccount(t)
	c.Invoke(t, stackitem.Null{}, "addAgent", agent.ScriptHash())
	c.WithSigners(agent).Invoke(t, stackitem.Null{}, "verifyOwnership", agent.ScriptHash(), int64(42))
	c.Invoke(t, parcelDetails(owner.ScriptHash(), 100, "Verified"), "viewLand", int64(42))
}

func TestViewAllCertificates(t *testing.T) {
	e, c := newRegistryInvoker(t)
	owner := e.NewAccount(t)

	c.Invoke(t, stackitem.NewArray([]stackitem.Item{}), "viewAllCertificates")

	registerParcel(t, c, owner, 42, 100)
	registerParcel(t, c, owner, 7, 50)
	registerParcel(t, c, owner, 99, 25)

	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewBigInteger(big.NewInt(42)),
		stackitem.NewBigInteger(big.NewInt(7)),
		stackitem.NewBigInteger(big.NewInt(99)),
	}), "viewAllCertificates")
}

func TestAgentRoster(t *testing.T) {
	e, c := newRegistryInvoker(t)
	stranger := e.NewAccount(t)
	agent1 := e.NewAccount(t)
	agent2 := e.NewAccount(t)
	agent3 := e.NewAccount(t)

	c.WithSigners(stranger).InvokeFail(t, common.ErrDeveloperWitnessFailed, "addAgent", agent1.ScriptHash())
	c.InvokeFail(t, "incorrect agent script hash length", "addAgent", []byte{1, 2, 3})

	txHash := c.Invoke(t, stackitem.Null{}, "addAgent", agent1.ScriptHash())
	e.CheckTxNotificationEvent(t, txHash, 0, state.NotificationEvent{
		ScriptHash: c.Hash,
		Name:       "AgentAdded",
		Item: stackitem.NewArray([]stackitem.Item{
			stackitem.NewByteArray(agent1.ScriptHash().BytesBE()),
		}),
	})
	c.Invoke(t, stackitem.Make(true), "isAgent", agent1.ScriptHash())
	c.Invoke(t, stackitem.Make(false), "isAgent", agent2.ScriptHash())

	c.InvokeFail(t, landregconst.AlreadyAgentError, "addAgent", agent1.ScriptHash())

	c.Invoke(t, stackitem.Null{}, "addAgent", agent2.ScriptHash())
	c.Invoke(t, stackitem.Null{}, "addAgent", agent3.ScriptHash())
	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(agent1.ScriptHash().BytesBE()),
		stackitem.NewByteArray(agent2.ScriptHash().BytesBE()),
		stackitem.NewByteArray(agent3.ScriptHash().BytesBE()),
	}), "getAgents")

	c.WithSigners(stranger).InvokeFail(t, common.ErrDeveloperWitnessFailed, "revokeAgent", agent1.ScriptHash())
	c.InvokeFail(t, landregconst.NotAgentError, "revokeAgent", stranger.ScriptHash())

	// The revoked entry is replaced with the last one.
	txHash = c.Invoke(t, stackitem.Null{}, "revokeAgent", agent1.ScriptHash())
	e.CheckTxNotificationEvent(t, txHash, 0, state.NotificationEvent{
		ScriptHash: c.Hash,
		Name:       "AgentRevoked",
		Item: stackitem.NewArray([]stackitem.Item{
			stackitem.NewByteArray(agent1.ScriptHash().BytesBE()),
		}),
	})
	c.Invoke(t, stackitem.Make(false), "isAgent", agent1.ScriptHash())
	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(agent3.ScriptHash().BytesBE()),
		stackitem.NewByteArray(agent2.ScriptHash().BytesBE()),
	}), "getAgents")
}

func TestVerifyOwnership(t *testing.T) {
	e, c := newRegistryInvoker(t)
	owner := e.NewAccount(t)
	agent := e.NewAccount(t)
	cAgent := c.WithSigners(agent)

	registerParcel(t, c, owner, 42, 100)

	// Committee signs, but the claim names the agent account.
	c.InvokeFail(t, common.ErrWitnessFailed, "verifyOwnership", agent.ScriptHash(), int64(42))
	cAgent.InvokeFail(t, landregconst.NotAgentError, "verifyOwnership", agent.ScriptHash(), int64(42))

	c.Invoke(t, stackitem.Null{}, "addAgent", agent.ScriptHash())
	cAgent.InvokeFail(t, landregconst.NotFoundError, "verifyOwnership", agent.ScriptHash(), int64(404))

	txHash := cAgent.Invoke(t, stackitem.Null{}, "verifyOwnership", agent.ScriptHash(), int64(42))
	e.CheckTxNotificationEvent(t, txHash, 0, state.NotificationEvent{
		ScriptHash: c.Hash,
		Name:       "LandVerified",
		Item: stackitem.NewArray([]stackitem.Item{
			stackitem.NewBigInteger(big.NewInt(42)),
			stackitem.NewByteArray(agent.ScriptHash().BytesBE()),
		}),
	})
	c.Invoke(t, parcelDetails(owner.ScriptHash(), 100, "Verified"), "viewLand", int64(42))

	// Re-verification of a Verified parcel is a no-op that succeeds.
	cAgent.Invoke(t, stackitem.Null{}, "verifyOwnership", agent.ScriptHash(), int64(42))
	c.Invoke(t, parcelDetails(owner.ScriptHash(), 100, "Verified"), "viewLand", int64(42))

	c.Invoke(t, stackitem.Null{}, "revokeAgent", agent.ScriptHash())
	cAgent.InvokeFail(t, landregconst.NotAgentError, "verifyOwnership", agent.ScriptHash(), int64(42))
}

func TestTransferLand(t *testing.T) {
	e, c := newRegistryInvoker(t)
	alice := e.NewAccount(t)
	bob := e.NewAccount(t)
	carol := e.NewAccount(t)
	agent := e.NewAccount(t)

	registerParcel(t, c, alice, 42, 100)

	c.WithSigners(alice).InvokeFail(t, "incorrect new owner script hash length",
		"transferLand", int64(42), []byte{1, 2, 3})
	c.WithSigners(alice).InvokeFail(t, landregconst.NotVerifiedError,
		"transferLand", int64(42), bob.ScriptHash())
	c.WithSigners(bob).InvokeFail(t, common.ErrOwnerWitnessFailed,
		"transferLand", int64(42), bob.ScriptHash())
	// A missing parcel has no owner to witness for, nobody can transfer it.
	c.WithSigners(alice).InvokeFail(t, "", "transferLand", int64(404), bob.ScriptHash())

	c.Invoke(t, stackitem.Null{}, "addAgent", agent.ScriptHash())
	c.WithSigners(agent).Invoke(t, stackitem.Null{}, "verifyOwnership", agent.ScriptHash(), int64(42))

	txHash := c.WithSigners(alice).Invoke(t, stackitem.Null{}, "transferLand", int64(42), bob.ScriptHash())
	e.CheckTxNotificationEvent(t, txHash, 0, state.NotificationEvent{
		ScriptHash: c.Hash,
		Name:       "LandTransferred",
		Item: stackitem.NewArray([]stackitem.Item{
			stackitem.NewBigInteger(big.NewInt(42)),
			stackitem.NewByteArray(alice.ScriptHash().BytesBE()),
			stackitem.NewByteArray(bob.ScriptHash().BytesBE()),
		}),
	})
	c.Invoke(t, parcelDetails(bob.ScriptHash(), 100, "Verified"), "viewLand", int64(42))

	// The previous owner has no power over the parcel anymore.
	c.WithSigners(alice).InvokeFail(t, common.ErrOwnerWitnessFailed,
		"transferLand", int64(42), alice.ScriptHash())

	// The parcel stays Verified, the new owner may pass it on.
	c.WithSigners(bob).Invoke(t, stackitem.Null{}, "transferLand", int64(42), carol.ScriptHash())
	c.Invoke(t, parcelDetails(carol.ScriptHash(), 100, "Verified"), "viewLand", int64(42))
}

func TestIterateParcels(t *testing.T) {
	e, c := newRegistryInvoker(t)
	owner := e.NewAccount(t)

	registerParcel(t, c, owner, 42, 100)
	registerParcel(t, c, owner, 7, 50)

	s, err := c.TestInvoke(t, "iterateParcels")
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	iter, ok := s.Pop().Value().(*storage.Iterator)
	require.True(t, ok)

	sizes := make(map[int64]int64)
	for _, kv := range iteratorToArray(iter) {
		pair := kv.Value().([]stackitem.Item)
		require.Len(t, pair, 2)

		key, err := pair[0].TryBytes()
		require.NoError(t, err)

		fields := pair[1].Value().([]stackitem.Item)
		require.Len(t, fields, 3)
		size, err := fields[0].TryInteger()
		require.NoError(t, err)

		sizes[bigint.FromBytes(key).Int64()] = size.Int64()
	}
	require.Equal(t, map[int64]int64{42: 100, 7: 50}, sizes)
}

// viewFields unpacks a RemoteView structure or an ExternalViewResult
// notification payload.
func viewFields(t *testing.T, item stackitem.Item) (bool, []byte) {
	fields, isStruct := item.Value().([]stackitem.Item)
	require.True(t, isStruct)
	require.Len(t, fields, 2)

	success, err := fields[0].TryBool()
	require.NoError(t, err)
	owner, err := fields[1].TryBytes()
	require.NoError(t, err)

	return success, owner
}

// queryRemoteView invokes queryRemote and returns the reported view, checking
// that the transaction halts and the ExternalViewResult notification carries
// the same values as the returned structure.
func queryRemoteView(t *testing.T, c *neotest.ContractInvoker, target util.Uint160, certificate int64) (bool, []byte) {
	tx := c.PrepareInvoke(t, "queryRemote", target, certificate)
	c.AddNewBlock(t, tx)
	aer := c.CheckHalt(t, tx.Hash())

	require.Len(t, aer.Stack, 1)
	success, owner := viewFields(t, aer.Stack[0])

	var notified bool
	for i := range aer.Events {
		if aer.Events[i].Name != "ExternalViewResult" {
			continue
		}
		evSuccess, evOwner := viewFields(t, aer.Events[i].Item)
		require.Equal(t, success, evSuccess)
		require.Equal(t, owner, evOwner)
		notified = true
	}
	require.True(t, notified)

	return success, owner
}

func TestQueryRemote(t *testing.T) {
	e := newExecutor(t)
	hA := deployRegistry(t, e, e.CommitteeHash)
	cA := e.CommitteeInvoker(hA)

	// Second, independent registry instance deployed by a separate account
	// funded to cover the deployment fee.
	deployer := e.NewAccount(t)
	e.ValidatorInvoker(e.NativeHash(t, nativenames.Gas)).Invoke(t, true, "transfer",
		e.Validator.ScriptHash(), deployer.ScriptHash(), int64(1000_0000_0000), nil)

	ctr := compileRegistry(t, e)
	hB := state.CreateContractHash(deployer.ScriptHash(), ctr.NEF.Checksum, ctr.Manifest.Name)
	// compileRegistry precomputes the hash for the committee sender and the
	// returned contract is cached, so deploy a copy carrying the hash for the
	// actual deployer to satisfy neotest's deploy check.
	ctrB := *ctr
	ctrB.Hash = hB
	e.DeployContractBy(t, deployer, &ctrB, []any{e.CommitteeHash})

	owner := e.NewAccount(t)
	registerParcel(t, e.CommitteeInvoker(hB), owner, 7, 50)

	// Nonexistent target contract.
	success, viewOwner := queryRemoteView(t, cA, util.Uint160{1, 2, 3}, 7)
	require.False(t, success)
	require.Empty(t, viewOwner)

	// Target contract has no viewLand method.
	success, viewOwner = queryRemoteView(t, cA, e.NativeHash(t, nativenames.Gas), 7)
	require.False(t, success)
	require.Empty(t, viewOwner)

	// Target registry has no such parcel.
	success, viewOwner = queryRemoteView(t, cA, hB, 404)
	require.False(t, success)
	require.Empty(t, viewOwner)

	success, viewOwner = queryRemoteView(t, cA, hB, 7)
	require.True(t, success)
	require.Equal(t, owner.ScriptHash().BytesBE(), viewOwner)
}

func TestUpdate(t *testing.T) {
	e, c := newRegistryInvoker(t)
	ctr := compileRegistry(t, e)

	nefBytes, err := ctr.NEF.Bytes()
	require.NoError(t, err)
	manifestBytes, err := json.Marshal(ctr.Manifest)
	require.NoError(t, err)

	stranger := e.NewAccount(t)
	c.WithSigners(stranger).InvokeFail(t, common.ErrDeveloperWitnessFailed,
		"update", nefBytes, manifestBytes, nil)
	c.InvokeFail(t, common.ErrAlreadyUpdated, "update", nefBytes, manifestBytes, nil)
}

func TestLandLifecycle(t *testing.T) {
	e, c := newRegistryInvoker(t)
	alice := e.NewAccount(t)
	bob := e.NewAccount(t)
	agent := e.NewAccount(t)

	registerParcel(t, c, alice, 42, 100)
	c.Invoke(t, parcelDetails(alice.ScriptHash(), 100, "Pending"), "viewLand", int64(42))

	c.WithSigners(alice).InvokeFail(t, landregconst.NotVerifiedError,
		"transferLand", int64(42), bob.ScriptHash())

	c.Invoke(t, stackitem.Null{}, "addAgent", agent.ScriptHash())
	c.WithSigners(agent).Invoke(t, stackitem.Null{}, "verifyOwnership", agent.ScriptHash(), int64(42))

	c.WithSigners(alice).Invoke(t, stackitem.Null{}, "transferLand", int64(42), bob.ScriptHash())
	c.Invoke(t, parcelDetails(bob.ScriptHash(), 100, "Verified"), "viewLand", int64(42))
	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewBigInteger(big.NewInt(42)),
	}), "viewAllCertificates")
}
