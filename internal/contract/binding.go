package contract

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Mohsinsiddi/nftmkt/internal/chain"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Binding is a callable proxy for one deployed contract: a fixed address plus
// a parsed interface descriptor. View calls go through Call; state-changing
// calls need a Sender.
type Binding struct {
	client *chain.EVMClient
	abi    abi.ABI
	addr   common.Address
	from   string // caller identity for view functions keyed on msg.sender
}

// BindOption configures a Binding.
type BindOption func(*Binding)

// WithCallerAddress sets the from address used on view calls. Required for
// msg.sender-scoped views such as getUserListings.
func WithCallerAddress(addr string) BindOption {
	return func(b *Binding) {
		b.from = addr
	}
}

// NewBinding binds a parsed ABI against a contract address.
func NewBinding(client *chain.EVMClient, contractABI abi.ABI, addr string, opts ...BindOption) *Binding {
	b := &Binding{
		client: client,
		abi:    contractABI,
		addr:   common.HexToAddress(addr),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Address returns the bound contract address.
func (b *Binding) Address() string {
	return b.addr.Hex()
}

// Call invokes a read-only (view/pure) function and returns the decoded
// positional results.
func (b *Binding) Call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	m, ok := b.abi.Methods[method]
	if !ok {
		return nil, fmt.Errorf("function %q not found in ABI", method)
	}
	if !m.IsConstant() {
		return nil, fmt.Errorf("function %q is not a read function (stateMutability: %s)", method, m.StateMutability)
	}

	calldata, err := b.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("encoding call: %w", err)
	}

	result, err := b.client.CallContract(ctx, b.from, b.addr.Hex(), "0x"+hex.EncodeToString(calldata))
	if err != nil {
		return nil, fmt.Errorf("contract call failed: %w", err)
	}

	raw, err := hex.DecodeString(strings.TrimPrefix(result, "0x"))
	if err != nil {
		return nil, fmt.Errorf("decoding hex result: %w", err)
	}

	out, err := b.abi.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("decoding result: %w", err)
	}
	return out, nil
}

// Pack encodes calldata for a function without invoking it.
func (b *Binding) Pack(method string, args ...interface{}) ([]byte, error) {
	return b.abi.Pack(method, args...)
}

// EventTopic returns the topic hash for a named event in the bound ABI.
func (b *Binding) EventTopic(event string) (string, error) {
	ev, ok := b.abi.Events[event]
	if !ok {
		return "", fmt.Errorf("event %q not found in ABI", event)
	}
	return ev.ID.Hex(), nil
}
