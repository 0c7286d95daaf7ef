/*
Package landreg contains implementation of the Land Registry contract.

The contract is an authoritative registry of land parcels. Anyone can
register a parcel under a unique integer certificate by paying a fixed GAS
fee that is forwarded to the registry developer. A registered parcel starts
in the Pending state and advances to Verified once a verification agent
attests its recorded ownership; only Verified parcels can be transferred,
and only by their current owner. The verification agent roster is managed
exclusively by the developer whose account is fixed at deployment time.

The contract can also query a peer registry instance about a parcel owner
with queryRemote. The peer is untrusted, so any failure of that call is
converted into an unsuccessful result instead of failing the local call.

# Contract notifications

AgentAdded notification. This notification is produced when the developer
authorizes a new verification agent.

	AgentAdded:
	  - name: agent
	    type: Hash160

AgentRevoked notification. This notification is produced when the developer
removes an agent from the roster.

	AgentRevoked:
	  - name: agent
	    type: Hash160

FeePaid notification. This notification is produced when a registrant's fee
has been forwarded to the developer, right before LandRegistered.

	FeePaid:
	  - name: payer
	    type: Hash160
	  - name: amount
	    type: Integer

LandRegistered notification. This notification is produced when a new parcel
record has been created.

	LandRegistered:
	  - name: certificate
	    type: Integer
	  - name: owner
	    type: Hash160

LandVerified notification. This notification is produced when an agent
attests a parcel's ownership.

	LandVerified:
	  - name: certificate
	    type: Integer
	  - name: agent
	    type: Hash160

LandTransferred notification. This notification is produced when a Verified
parcel changes hands.

	LandTransferred:
	  - name: certificate
	    type: Integer
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160

ExternalViewResult notification. This notification is produced when a peer
registry has been queried, successfully or not.

	ExternalViewResult:
	  - name: success
	    type: Boolean
	  - name: owner
	    type: ByteArray
*/
package landreg
