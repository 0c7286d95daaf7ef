package main

import (
	"context"
	"fmt"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"

	"github.com/landreg-dev/landreg-contract/rpc/landreg"
)

// iteratorBatchSize is the number of iterator items requested from the RPC
// server at once.
const iteratorBatchSize = 100

// wrapper over the Neo RPC client providing read access to a deployed Land
// Registry contract.
type remoteBlockchain struct {
	rpc *rpcclient.Client
	inv *invoker.Invoker
}

// newRemoteBlockchain dials Neo RPC server and returns remoteBlockchain based
// on the opened connection. Connection and all requests are done within 15s
// timeout.
func newRemoteBlockchain(blockchainRPCEndpoint string) (*remoteBlockchain, error) {
	c, err := rpcclient.New(context.Background(), blockchainRPCEndpoint, rpcclient.Options{
		DialTimeout:    15 * time.Second,
		RequestTimeout: 15 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	return &remoteBlockchain{
		rpc: c,
		inv: invoker.New(c, nil),
	}, nil
}

func (x *remoteBlockchain) close() {
	x.rpc.Close()
}

// collectParcels reads all parcel records through the contract's
// iterateParcels method. Session-based iteration is tried first, with a
// fallback to in-VM iterator expansion for servers without session support.
func (x *remoteBlockchain) collectParcels(reader *landreg.ContractReader) ([]stackitem.Item, error) {
	sessionID, iter, err := reader.IterateParcels()
	if err != nil {
		return reader.IterateParcelsExpanded(iteratorBatchSize)
	}

	defer func() {
		_ = x.inv.TerminateSession(sessionID)
	}()

	var res []stackitem.Item

	for {
		items, err := x.inv.TraverseIterator(sessionID, &iter, iteratorBatchSize)
		if err != nil {
			return nil, fmt.Errorf("traverse parcel iterator: %w", err)
		}
		if len(items) == 0 {
			return res, nil
		}

		res = append(res, items...)
	}
}
