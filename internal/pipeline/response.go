package pipeline

import (
	"github.com/attestlab/attestd/internal/abihash"
	"github.com/attestlab/attestd/internal/ethaddr"
)

// Response is the signed, tamper-evident result of one request.
type Response struct {
	// ReqID is the unpredictable per-request identifier, also bound into the
	// signed payload.
	ReqID string `json:"reqId"`

	// App is the canonical module name and AppID its derived uint256
	// identifier in decimal form.
	App   string `json:"app"`
	AppID string `json:"appId"`

	// Method is the module operation that produced this response.
	Method string `json:"method"`

	// Data carries the request inputs and the exact ordered fields the
	// signature commits to.
	Data Data `json:"data"`

	// Signatures holds the node's attestation. A single-signer node emits
	// exactly one entry; the list form matches the wire contract shared with
	// aggregating deployments.
	Signatures []SignatureEntry `json:"signatures"`
}

// Data is the signed portion of a response together with its inputs.
type Data struct {
	Params     map[string]any  `json:"params"`
	Timestamp  int64           `json:"timestamp"`
	SignParams []abihash.Field `json:"signParams"`
}

// SignatureEntry is one signer's attestation over the response commitment.
type SignatureEntry struct {
	// Owner is the signer's checksummed address.
	Owner string `json:"owner"`

	// OwnerPubKey is the minimal public-key view (x and yParity), enough for
	// a verifier to reconstruct the full point.
	OwnerPubKey ethaddr.View `json:"ownerPubKey"`

	// Signature is the full encoded (e, s) pair. Carrying e explicitly lets
	// third parties verify from the response alone; verifiers still recompute
	// the challenge from the public fields as a cross-check.
	Signature string `json:"signature"`
}
