package landreg

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"

	"github.com/landreg-dev/landreg-contract/common"
	"github.com/landreg-dev/landreg-contract/contracts/landreg/landregconst"
	"github.com/landreg-dev/landreg-contract/contracts/landreg/parcelstate"
)

type (
	// Parcel stores metadata of a single registered land parcel.
	Parcel struct {
		// Land size, immutable after registration.
		Size int
		// Current owner, changes on transfer.
		Owner interop.Hash160
		// Lifecycle state.
		Status parcelstate.Status
	}

	// LandDetails is a public view of a parcel returned by ViewLand.
	LandDetails struct {
		Owner  interop.Hash160
		Size   int
		Status string
	}

	// RemoteView is the result of querying a peer registry, see QueryRemote.
	// Owner is raw bytes since a failed query carries an empty one.
	RemoteView struct {
		Success bool
		Owner   []byte
	}
)

const (
	developerKey    = 'd'
	certificatesKey = 'c'
	agentListKey    = 'l'

	parcelPrefix = 'p'
	agentPrefix  = 'a'
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		developer interop.Hash160
	})

	if len(args.developer) != interop.Hash160Len {
		panic("incorrect developer script hash length")
	}

	storage.Put(ctx, developerKey, args.developer)
	runtime.Log("land registry contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the registry developer.
func Update(script []byte, manifest []byte, data any) {
	ctx := storage.GetReadOnlyContext()
	common.CheckDeveloperWitness(getDeveloper(ctx))

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("land registry contract updated")
}

// Developer returns the script hash of the registry developer. The developer
// is fixed at deployment time and manages the verification agent roster.
func Developer() interop.Hash160 {
	return getDeveloper(storage.GetReadOnlyContext())
}

// RegistrationFee returns the exact amount of GAS required to register a
// parcel, see [landregconst.RegistrationFee].
func RegistrationFee() int {
	return landregconst.RegistrationFee
}

// AddAgent authorizes an address to verify parcel ownership claims. It can be
// invoked only by the registry developer.
//
// It produces AgentAdded notification.
func AddAgent(agent interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckDeveloperWitness(getDeveloper(ctx))

	if len(agent) != interop.Hash160Len {
		panic("incorrect agent script hash length")
	}

	key := agentKey(agent)
	if storage.Get(ctx, key) != nil {
		panic(landregconst.AlreadyAgentError)
	}
	storage.Put(ctx, key, []byte{1})

	agents := common.GetAddressList(ctx, agentListKey)
	agents = append(agents, agent)
	common.SetSerialized(ctx, agentListKey, agents)

	runtime.Notify("AgentAdded", agent)
}

// RevokeAgent removes an address from the verification agent roster. It can
// be invoked only by the registry developer. The removed entry is swapped
// with the last one, so roster enumeration order is not stable across
// revocations.
//
// It produces AgentRevoked notification.
func RevokeAgent(agent interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckDeveloperWitness(getDeveloper(ctx))

	key := agentKey(agent)
	if storage.Get(ctx, key) == nil {
		panic(landregconst.NotAgentError)
	}
	storage.Delete(ctx, key)

	agents := common.GetAddressList(ctx, agentListKey)
	last := len(agents) - 1
	for i := 0; i < len(agents); i++ {
		if agents[i].Equals(agent) {
			agents[i] = agents[last]
			break
		}
	}
	updated := []interop.Hash160{}
	for i := 0; i < last; i++ {
		updated = append(updated, agents[i])
	}
	common.SetSerialized(ctx, agentListKey, updated)

	runtime.Notify("AgentRevoked", agent)
}

// IsAgent returns true if the address is currently an authorized
// verification agent.
func IsAgent(addr interop.Hash160) bool {
	return storage.Get(storage.GetReadOnlyContext(), agentKey(addr)) != nil
}

// GetAgents returns addresses of all currently authorized verification
// agents. Order reflects addition history until the first revocation.
func GetAgents() []interop.Hash160 {
	return common.GetAddressList(storage.GetReadOnlyContext(), agentListKey)
}

// RegisterLand creates a new Pending parcel record with the given certificate
// owned by owner. It can be invoked by anyone able to pay the registration
// fee: payment must equal RegistrationFee exactly and is forwarded to the
// registry developer as GAS. If the fee transfer fails, the whole
// registration is aborted.
//
// It produces FeePaid and LandRegistered notifications, in that order.
func RegisterLand(owner interop.Hash160, certificate int, size int, payment int) {
	if len(owner) != interop.Hash160Len {
		panic("incorrect owner script hash length")
	}
	if certificate == 0 {
		panic("certificate must be non-zero")
	}
	if size <= 0 {
		panic("size must be positive")
	}

	common.CheckOwnerWitness(owner)

	if payment != landregconst.RegistrationFee {
		panic(landregconst.IncorrectFeeError)
	}

	ctx := storage.GetContext()
	key := parcelKey(certificate)
	if storage.Get(ctx, key) != nil {
		panic(landregconst.AlreadyExistsError)
	}

	if !gas.Transfer(owner, getDeveloper(ctx), payment, nil) {
		panic(landregconst.FeeTransferError)
	}

	common.SetSerialized(ctx, key, Parcel{
		Size:   size,
		Owner:  owner,
		Status: parcelstate.Pending,
	})

	certs := common.GetIntList(ctx, certificatesKey)
	certs = append(certs, certificate)
	common.SetSerialized(ctx, certificatesKey, certs)

	runtime.Notify("FeePaid", owner, payment)
	runtime.Notify("LandRegistered", certificate, owner)
}

// VerifyOwnership attests that the recorded ownership of the parcel is valid
// and advances it to the Verified state. It can be invoked only by an
// authorized verification agent. Re-verifying an already Verified parcel is
// a no-op that still succeeds.
//
// It produces LandVerified notification.
func VerifyOwnership(agent interop.Hash160, certificate int) {
	common.CheckWitness(agent)

	ctx := storage.GetContext()
	if storage.Get(ctx, agentKey(agent)) == nil {
		panic(landregconst.NotAgentError)
	}

	parcel := getParcel(ctx, certificate)
	if parcel.Status == parcelstate.None {
		panic(landregconst.NotFoundError)
	}

	parcel.Status = parcelstate.Verified
	common.SetSerialized(ctx, parcelKey(certificate), parcel)

	runtime.Notify("LandVerified", certificate, agent)
}

// TransferLand changes the owner of a Verified parcel to newOwner. It can be
// invoked only by the current parcel owner. A missing parcel has an empty
// owner, so its witness check rejects any caller. Size and status are left
// untouched, hence the new owner may transfer the parcel further.
//
// It produces LandTransferred notification.
func TransferLand(certificate int, newOwner interop.Hash160) {
	if len(newOwner) != interop.Hash160Len {
		panic("incorrect new owner script hash length")
	}

	ctx := storage.GetContext()
	parcel := getParcel(ctx, certificate)
	common.CheckOwnerWitness(parcel.Owner)

	if parcel.Status != parcelstate.Verified {
		panic(landregconst.NotVerifiedError)
	}

	from := parcel.Owner
	parcel.Owner = newOwner
	common.SetSerialized(ctx, parcelKey(certificate), parcel)

	runtime.Notify("LandTransferred", certificate, from, newOwner)
}

// ViewLand returns the owner, size and textual status of the parcel with the
// given certificate. It panics with NotFoundError if the parcel is missing.
func ViewLand(certificate int) LandDetails {
	parcel := getParcel(storage.GetReadOnlyContext(), certificate)
	if parcel.Status == parcelstate.None {
		panic(landregconst.NotFoundError)
	}

	return LandDetails{
		Owner:  parcel.Owner,
		Size:   parcel.Size,
		Status: statusText(parcel.Status),
	}
}

// ViewAllCertificates returns certificates of all parcels ever registered,
// of any status, in registration order.
func ViewAllCertificates() []int {
	return common.GetIntList(storage.GetReadOnlyContext(), certificatesKey)
}

// IterateParcels returns an iterator over all parcel records. Iterator values
// are key-value pairs where key is the certificate bytes and value is the
// deserialized Parcel structure.
func IterateParcels() iterator.Iterator {
	return storage.Find(storage.GetReadOnlyContext(), []byte{parcelPrefix},
		storage.DeserializeValues|storage.RemovePrefix)
}

// QueryRemote performs a read-only viewLand query against another land
// registry instance and reports the owner it returned. The target is not
// trusted: any failure of the remote query is collapsed into a RemoteView
// with Success set to false and an empty owner, it never propagates to the
// caller.
//
// It produces ExternalViewResult notification.
func QueryRemote(target interop.Hash160, certificate int) RemoteView {
	ok, owner := remoteLand(target, certificate)
	// On a recovered panic the neo-go compiler returns default result values
	// (Null for a byte slice) instead of the deferred assignments, so restore
	// the empty owner that remoteLand guarantees under Go semantics.
	if owner == nil {
		owner = []byte{}
	}
	view := RemoteView{Success: ok, Owner: owner}
	runtime.Notify("ExternalViewResult", view.Success, view.Owner)
	return view
}

// remoteLand calls viewLand on the target contract. A missing contract or a
// contract without the method are detected upfront since such calls fault
// the VM bypassing exception handling. Remote faults and malformed responses
// are recovered. All of them leave ok false and owner empty.
func remoteLand(target interop.Hash160, certificate int) (ok bool, owner []byte) {
	// The neo-go compiler leaves unassigned slots as Null rather than the Go
	// zero value, so set ok explicitly for the bare-return paths to keep the
	// notification argument a Boolean.
	ok = false
	owner = []byte{}
	defer func() {
		if r := recover(); r != nil {
			ok = false
			owner = []byte{}
			runtime.Log("remote viewLand query failed")
		}
	}()

	remote := management.GetContract(target)
	if remote == nil {
		runtime.Log("remote registry is not on the chain")
		return
	}
	if !hasMethod(remote, "viewLand") {
		runtime.Log("remote contract has no viewLand method")
		return
	}

	land := contract.Call(target, "viewLand", contract.ReadOnly, certificate).(LandDetails)
	if len(land.Owner) != interop.Hash160Len {
		panic("malformed remote viewLand response")
	}

	return true, land.Owner
}

func hasMethod(c *management.Contract, name string) bool {
	methods := c.Manifest.ABI.Methods
	for i := 0; i < len(methods); i++ {
		if methods[i].Name == name {
			return true
		}
	}
	return false
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func statusText(status parcelstate.Status) string {
	switch status {
	case parcelstate.Pending:
		return "Pending"
	case parcelstate.Verified:
		return "Verified"
	default:
		return "None"
	}
}

func getDeveloper(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, developerKey).(interop.Hash160)
}

func getParcel(ctx storage.Context, certificate int) Parcel {
	data := storage.Get(ctx, parcelKey(certificate))
	if data != nil {
		return std.Deserialize(data.([]byte)).(Parcel)
	}

	return Parcel{}
}

func parcelKey(certificate int) []byte {
	return append([]byte{parcelPrefix}, convert.ToBytes(certificate)...)
}

func agentKey(agent interop.Hash160) []byte {
	return append([]byte{agentPrefix}, agent...)
}
