// Package landreg contains RPC wrappers for the Land Registry contract.
package landreg

import (
	"errors"
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// LandregLandDetails is a contract-specific landreg.LandDetails type used by its methods.
type LandregLandDetails struct {
	Owner  util.Uint160
	Size   *big.Int
	Status string
}

// LandregParcel is a contract-specific landreg.Parcel type used by its methods.
type LandregParcel struct {
	Size   *big.Int
	Owner  util.Uint160
	Status *big.Int
}

// LandregRemoteView is a contract-specific landreg.RemoteView type used by its
// methods. Owner is kept raw because a failed query carries an empty one.
type LandregRemoteView struct {
	Success bool
	Owner   []byte
}

// AgentAddedEvent represents "AgentAdded" event emitted by the contract.
type AgentAddedEvent struct {
	Agent util.Uint160
}

// AgentRevokedEvent represents "AgentRevoked" event emitted by the contract.
type AgentRevokedEvent struct {
	Agent util.Uint160
}

// FeePaidEvent represents "FeePaid" event emitted by the contract.
type FeePaidEvent struct {
	Payer  util.Uint160
	Amount *big.Int
}

// LandRegisteredEvent represents "LandRegistered" event emitted by the contract.
type LandRegisteredEvent struct {
	Certificate *big.Int
	Owner       util.Uint160
}

// LandVerifiedEvent represents "LandVerified" event emitted by the contract.
type LandVerifiedEvent struct {
	Certificate *big.Int
	Agent       util.Uint160
}

// LandTransferredEvent represents "LandTransferred" event emitted by the contract.
type LandTransferredEvent struct {
	Certificate *big.Int
	From        util.Uint160
	To          util.Uint160
}

// ExternalViewResultEvent represents "ExternalViewResult" event emitted by the contract.
type ExternalViewResultEvent struct {
	Success bool
	Owner   []byte
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// Developer invokes `developer` method of contract.
func (c *ContractReader) Developer() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "developer"))
}

// GetAgents invokes `getAgents` method of contract.
func (c *ContractReader) GetAgents() ([]util.Uint160, error) {
	return unwrap.ArrayOfUint160(c.invoker.Call(c.hash, "getAgents"))
}

// IsAgent invokes `isAgent` method of contract.
func (c *ContractReader) IsAgent(addr util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isAgent", addr))
}

// IterateParcels invokes `iterateParcels` method of contract.
func (c *ContractReader) IterateParcels() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "iterateParcels"))
}

// IterateParcelsExpanded is similar to IterateParcels (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) IterateParcelsExpanded(_numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "iterateParcels", _numOfIteratorItems))
}

// RegistrationFee invokes `registrationFee` method of contract.
func (c *ContractReader) RegistrationFee() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "registrationFee"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// ViewAllCertificates invokes `viewAllCertificates` method of contract.
func (c *ContractReader) ViewAllCertificates() ([]*big.Int, error) {
	return unwrap.ArrayOfBigInts(c.invoker.Call(c.hash, "viewAllCertificates"))
}

// ViewLand invokes `viewLand` method of contract.
func (c *ContractReader) ViewLand(certificate *big.Int) (*LandregLandDetails, error) {
	return itemToLandregLandDetails(unwrap.Item(c.invoker.Call(c.hash, "viewLand", certificate)))
}

// AddAgent creates a transaction invoking `addAgent` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) AddAgent(agent util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "addAgent", agent)
}

// AddAgentTransaction creates a transaction invoking `addAgent` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) AddAgentTransaction(agent util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "addAgent", agent)
}

// AddAgentUnsigned creates a transaction invoking `addAgent` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) AddAgentUnsigned(agent util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "addAgent", nil, agent)
}

// RevokeAgent creates a transaction invoking `revokeAgent` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RevokeAgent(agent util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "revokeAgent", agent)
}

// RevokeAgentTransaction creates a transaction invoking `revokeAgent` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RevokeAgentTransaction(agent util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "revokeAgent", agent)
}

// RevokeAgentUnsigned creates a transaction invoking `revokeAgent` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RevokeAgentUnsigned(agent util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "revokeAgent", nil, agent)
}

// RegisterLand creates a transaction invoking `registerLand` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RegisterLand(owner util.Uint160, certificate *big.Int, size *big.Int, payment *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "registerLand", owner, certificate, size, payment)
}

// RegisterLandTransaction creates a transaction invoking `registerLand` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RegisterLandTransaction(owner util.Uint160, certificate *big.Int, size *big.Int, payment *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "registerLand", owner, certificate, size, payment)
}

// RegisterLandUnsigned creates a transaction invoking `registerLand` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RegisterLandUnsigned(owner util.Uint160, certificate *big.Int, size *big.Int, payment *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "registerLand", nil, owner, certificate, size, payment)
}

// VerifyOwnership creates a transaction invoking `verifyOwnership` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) VerifyOwnership(agent util.Uint160, certificate *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "verifyOwnership", agent, certificate)
}

// VerifyOwnershipTransaction creates a transaction invoking `verifyOwnership` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) VerifyOwnershipTransaction(agent util.Uint160, certificate *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "verifyOwnership", agent, certificate)
}

// VerifyOwnershipUnsigned creates a transaction invoking `verifyOwnership` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) VerifyOwnershipUnsigned(agent util.Uint160, certificate *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "verifyOwnership", nil, agent, certificate)
}

// TransferLand creates a transaction invoking `transferLand` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) TransferLand(certificate *big.Int, newOwner util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "transferLand", certificate, newOwner)
}

// TransferLandTransaction creates a transaction invoking `transferLand` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) TransferLandTransaction(certificate *big.Int, newOwner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "transferLand", certificate, newOwner)
}

// TransferLandUnsigned creates a transaction invoking `transferLand` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) TransferLandUnsigned(certificate *big.Int, newOwner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "transferLand", nil, certificate, newOwner)
}

// QueryRemote creates a transaction invoking `queryRemote` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) QueryRemote(target util.Uint160, certificate *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "queryRemote", target, certificate)
}

// QueryRemoteTransaction creates a transaction invoking `queryRemote` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) QueryRemoteTransaction(target util.Uint160, certificate *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "queryRemote", target, certificate)
}

// QueryRemoteUnsigned creates a transaction invoking `queryRemote` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) QueryRemoteUnsigned(target util.Uint160, certificate *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "queryRemote", nil, target, certificate)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// itemToLandregLandDetails converts stack item into *LandregLandDetails.
func itemToLandregLandDetails(item stackitem.Item, err error) (*LandregLandDetails, error) {
	if err != nil {
		return nil, err
	}
	res := new(LandregLandDetails)
	err = res.FromStackItem(item)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// FromStackItem retrieves fields of LandregLandDetails from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *LandregLandDetails) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var err error
	res.Owner, err = hash160FromItem(arr[0])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	res.Size, err = arr[1].TryInteger()
	if err != nil {
		return fmt.Errorf("field Size: %w", err)
	}

	res.Status, err = stringFromItem(arr[2])
	if err != nil {
		return fmt.Errorf("field Status: %w", err)
	}

	return nil
}

// itemToLandregParcel converts stack item into *LandregParcel.
func itemToLandregParcel(item stackitem.Item, err error) (*LandregParcel, error) {
	if err != nil {
		return nil, err
	}
	res := new(LandregParcel)
	err = res.FromStackItem(item)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// FromStackItem retrieves fields of LandregParcel from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *LandregParcel) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var err error
	res.Size, err = arr[0].TryInteger()
	if err != nil {
		return fmt.Errorf("field Size: %w", err)
	}

	res.Owner, err = hash160FromItem(arr[1])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	res.Status, err = arr[2].TryInteger()
	if err != nil {
		return fmt.Errorf("field Status: %w", err)
	}

	return nil
}

// FromStackItem retrieves fields of LandregRemoteView from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *LandregRemoteView) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var err error
	res.Success, err = arr[0].TryBool()
	if err != nil {
		return fmt.Errorf("field Success: %w", err)
	}

	res.Owner, err = bytesFromItem(arr[1])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	return nil
}

// AgentAddedEventsFromApplicationLog retrieves a set of all emitted events
// with "AgentAdded" name from the provided [result.ApplicationLog].
func AgentAddedEventsFromApplicationLog(log *result.ApplicationLog) ([]*AgentAddedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*AgentAddedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "AgentAdded" {
				continue
			}
			event := new(AgentAddedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize AgentAddedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to AgentAddedEvent or
// returns an error if it's not possible to do to so.
func (e *AgentAddedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var err error
	e.Agent, err = hash160FromItem(arr[0])
	if err != nil {
		return fmt.Errorf("field Agent: %w", err)
	}

	return nil
}

// AgentRevokedEventsFromApplicationLog retrieves a set of all emitted events
// with "AgentRevoked" name from the provided [result.ApplicationLog].
func AgentRevokedEventsFromApplicationLog(log *result.ApplicationLog) ([]*AgentRevokedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*AgentRevokedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "AgentRevoked" {
				continue
			}
			event := new(AgentRevokedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize AgentRevokedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to AgentRevokedEvent or
// returns an error if it's not possible to do to so.
func (e *AgentRevokedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var err error
	e.Agent, err = hash160FromItem(arr[0])
	if err != nil {
		return fmt.Errorf("field Agent: %w", err)
	}

	return nil
}

// FeePaidEventsFromApplicationLog retrieves a set of all emitted events
// with "FeePaid" name from the provided [result.ApplicationLog].
func FeePaidEventsFromApplicationLog(log *result.ApplicationLog) ([]*FeePaidEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*FeePaidEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "FeePaid" {
				continue
			}
			event := new(FeePaidEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize FeePaidEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to FeePaidEvent or
// returns an error if it's not possible to do to so.
func (e *FeePaidEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var err error
	e.Payer, err = hash160FromItem(arr[0])
	if err != nil {
		return fmt.Errorf("field Payer: %w", err)
	}

	e.Amount, err = arr[1].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// LandRegisteredEventsFromApplicationLog retrieves a set of all emitted events
// with "LandRegistered" name from the provided [result.ApplicationLog].
func LandRegisteredEventsFromApplicationLog(log *result.ApplicationLog) ([]*LandRegisteredEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*LandRegisteredEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "LandRegistered" {
				continue
			}
			event := new(LandRegisteredEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize LandRegisteredEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to LandRegisteredEvent or
// returns an error if it's not possible to do to so.
func (e *LandRegisteredEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var err error
	e.Certificate, err = arr[0].TryInteger()
	if err != nil {
		return fmt.Errorf("field Certificate: %w", err)
	}

	e.Owner, err = hash160FromItem(arr[1])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	return nil
}

// LandVerifiedEventsFromApplicationLog retrieves a set of all emitted events
// with "LandVerified" name from the provided [result.ApplicationLog].
func LandVerifiedEventsFromApplicationLog(log *result.ApplicationLog) ([]*LandVerifiedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*LandVerifiedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "LandVerified" {
				continue
			}
			event := new(LandVerifiedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize LandVerifiedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to LandVerifiedEvent or
// returns an error if it's not possible to do to so.
func (e *LandVerifiedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var err error
	e.Certificate, err = arr[0].TryInteger()
	if err != nil {
		return fmt.Errorf("field Certificate: %w", err)
	}

	e.Agent, err = hash160FromItem(arr[1])
	if err != nil {
		return fmt.Errorf("field Agent: %w", err)
	}

	return nil
}

// LandTransferredEventsFromApplicationLog retrieves a set of all emitted events
// with "LandTransferred" name from the provided [result.ApplicationLog].
func LandTransferredEventsFromApplicationLog(log *result.ApplicationLog) ([]*LandTransferredEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*LandTransferredEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "LandTransferred" {
				continue
			}
			event := new(LandTransferredEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize LandTransferredEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to LandTransferredEvent or
// returns an error if it's not possible to do to so.
func (e *LandTransferredEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var err error
	e.Certificate, err = arr[0].TryInteger()
	if err != nil {
		return fmt.Errorf("field Certificate: %w", err)
	}

	e.From, err = hash160FromItem(arr[1])
	if err != nil {
		return fmt.Errorf("field From: %w", err)
	}

	e.To, err = hash160FromItem(arr[2])
	if err != nil {
		return fmt.Errorf("field To: %w", err)
	}

	return nil
}

// ExternalViewResultEventsFromApplicationLog retrieves a set of all emitted events
// with "ExternalViewResult" name from the provided [result.ApplicationLog].
func ExternalViewResultEventsFromApplicationLog(log *result.ApplicationLog) ([]*ExternalViewResultEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ExternalViewResultEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ExternalViewResult" {
				continue
			}
			event := new(ExternalViewResultEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ExternalViewResultEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ExternalViewResultEvent
// or returns an error if it's not possible to do to so.
func (e *ExternalViewResultEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var err error
	e.Success, err = arr[0].TryBool()
	if err != nil {
		return fmt.Errorf("field Success: %w", err)
	}

	e.Owner, err = bytesFromItem(arr[1])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	return nil
}

func hash160FromItem(item stackitem.Item) (util.Uint160, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint160{}, err
	}
	u, err := util.Uint160DecodeBytesBE(b)
	if err != nil {
		return util.Uint160{}, err
	}
	return u, nil
}

func stringFromItem(item stackitem.Item) (string, error) {
	b, err := item.TryBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.New("not a UTF-8 string")
	}
	return string(b), nil
}

// bytesFromItem is like [stackitem.Item.TryBytes] but maps Null to an empty
// value, which is what a failed remote query carries.
func bytesFromItem(item stackitem.Item) ([]byte, error) {
	if _, ok := item.(stackitem.Null); ok {
		return nil, nil
	}
	return item.TryBytes()
}
