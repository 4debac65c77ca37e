package contract

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/Mohsinsiddi/nftmkt/internal/chain"
	"github.com/Mohsinsiddi/nftmkt/internal/wallet"
	"github.com/ethereum/go-ethereum/core/types"
)

// Gas limit used when estimation fails. Mint and list transactions fit well
// under this on the target contracts.
const fallbackGasLimit = 300_000

// Sender sends write transactions to a bound contract and waits for one
// confirmation. No retries; failures propagate to the caller.
type Sender struct {
	binding *Binding
	client  *chain.EVMClient
	signer  *wallet.Signer
	chainID *big.Int
}

// NewSender creates a Sender on top of a Binding.
func NewSender(binding *Binding, client *chain.EVMClient, signer *wallet.Signer, chainID *big.Int) *Sender {
	return &Sender{
		binding: binding,
		client:  client,
		signer:  signer,
		chainID: chainID,
	}
}

// Send calls a write function with an optional payable value, broadcasts the
// signed transaction, and blocks until one confirmation. The returned receipt
// carries the transaction hash.
func (s *Sender) Send(ctx context.Context, method string, value *big.Int, args ...interface{}) (*chain.TxReceipt, error) {
	m, ok := s.binding.abi.Methods[method]
	if !ok {
		return nil, fmt.Errorf("function %q not found in ABI", method)
	}
	if m.IsConstant() {
		return nil, fmt.Errorf("function %q is not a write function", method)
	}

	calldata, err := s.binding.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("encoding call: %w", err)
	}

	from := s.signer.Address()
	to := s.binding.Address()
	dataHex := "0x" + hex.EncodeToString(calldata)

	gas, err := s.client.EstimateGas(ctx, from, to, dataHex, value)
	if err != nil {
		gas = fallbackGasLimit
	}

	gasPrice, err := s.client.GasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting gas price: %w", err)
	}

	nonce, err := s.client.GetNonce(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("getting nonce: %w", err)
	}

	if value == nil {
		value = big.NewInt(0)
	}
	toAddr := s.binding.addr
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   s.chainID,
		Nonce:     nonce,
		GasTipCap: gasPrice,
		GasFeeCap: new(big.Int).Mul(gasPrice, big.NewInt(2)),
		Gas:       gas,
		To:        &toAddr,
		Value:     value,
		Data:      calldata,
	})

	raw, err := s.signer.SignTx(tx, s.chainID)
	if err != nil {
		return nil, fmt.Errorf("signing transaction: %w", err)
	}

	hash, err := s.client.SendRawTransaction(ctx, "0x"+hex.EncodeToString(raw))
	if err != nil {
		return nil, fmt.Errorf("broadcasting transaction: %w", err)
	}

	receipt, err := s.client.WaitForReceipt(ctx, hash)
	if err != nil {
		return receipt, err
	}
	return receipt, nil
}

// From returns the sending address.
func (s *Sender) From() string {
	return s.signer.Address()
}
