// Dump prints the whole contents of a deployed Land Registry contract:
// developer, registration fee, agent roster and every parcel record.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"

	"github.com/landreg-dev/landreg-contract/contracts/landreg/parcelstate"
	"github.com/landreg-dev/landreg-contract/rpc/landreg"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	contractAddr := flag.String("contract", "", "Land Registry contract address (LE hex)")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *contractAddr == "":
		log.Fatal("missing Land Registry contract address")
	}

	h, err := util.Uint160DecodeStringLE(*contractAddr)
	if err != nil {
		log.Fatal(fmt.Errorf("invalid contract address: %w", err))
	}

	b, err := newRemoteBlockchain(*neoRPCEndpoint)
	if err != nil {
		log.Fatal(fmt.Errorf("init remote blockchain: %w", err))
	}

	defer b.close()

	err = _dump(landreg.NewReader(b.inv, h), b)
	if err != nil {
		log.Fatal(err)
	}
}

func _dump(reader *landreg.ContractReader, b *remoteBlockchain) error {
	developer, err := reader.Developer()
	if err != nil {
		return fmt.Errorf("read developer: %w", err)
	}

	fee, err := reader.RegistrationFee()
	if err != nil {
		return fmt.Errorf("read registration fee: %w", err)
	}

	version, err := reader.Version()
	if err != nil {
		return fmt.Errorf("read contract version: %w", err)
	}

	fmt.Printf("Land Registry v%s\n", version)
	fmt.Printf("developer:        %s\n", address.Uint160ToString(developer))
	fmt.Printf("registration fee: %s\n", fee)

	agents, err := reader.GetAgents()
	if err != nil {
		return fmt.Errorf("read agent roster: %w", err)
	}

	fmt.Printf("agents (%d):\n", len(agents))
	for _, a := range agents {
		fmt.Printf("  %s\n", address.Uint160ToString(a))
	}

	items, err := b.collectParcels(reader)
	if err != nil {
		return fmt.Errorf("read parcels: %w", err)
	}

	fmt.Printf("parcels (%d):\n", len(items))
	for i := range items {
		err = printParcel(items[i])
		if err != nil {
			return fmt.Errorf("malformed parcel record #%d: %w", i, err)
		}
	}

	return nil
}

// printParcel prints a single key-value pair produced by the contract's
// iterateParcels method: certificate bytes and the parcel structure.
func printParcel(item stackitem.Item) error {
	pair, ok := item.Value().([]stackitem.Item)
	if !ok || len(pair) != 2 {
		return fmt.Errorf("not a key-value pair")
	}

	rawCert, err := pair[0].TryBytes()
	if err != nil {
		return fmt.Errorf("certificate key: %w", err)
	}

	var parcel landreg.LandregParcel
	err = parcel.FromStackItem(pair[1])
	if err != nil {
		return err
	}

	fmt.Printf("  certificate %s: owner %s, size %s, status %s\n",
		bigint.FromBytes(rawCert),
		address.Uint160ToString(parcel.Owner),
		parcel.Size,
		statusText(parcelstate.Status(parcel.Status.Int64())))

	return nil
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
