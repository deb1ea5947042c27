// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package transaction

import (
	"encoding/binary"
	"fmt"

	"github.com/blinklabs-io/concordium-go/module"
	"github.com/blinklabs-io/concordium-go/types"
	"github.com/blinklabs-io/concordium-go/wire"
)

// Payload is the kind-specific part of an account transaction
type Payload interface {
	Type() TransactionType
	encodeBody(w *wire.Writer) error
	baseEnergy() types.Energy
}

// EncodePayload returns the kind tag followed by the payload body
func EncodePayload(p Payload) ([]byte, error) {
	w := wire.NewWriter()
	w.WriteUint8(uint8(p.Type()))
	if err := p.encodeBody(w); err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", p.Type(), err)
	}
	return w.Bytes(), nil
}

// DecodePayload decodes a serialized payload. Only Transfer, TransferWithMemo and
// RegisterData payloads can be decoded
func DecodePayload(data []byte) (Payload, error) {
	c := wire.NewCursor(data)
	tag, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}
	var ret Payload
	switch TransactionType(tag) {
	case TxTypeTransfer:
		ret, err = decodeTransfer(c)
	case TxTypeTransferWithMemo:
		ret, err = decodeTransferWithMemo(c)
	case TxTypeRegisterData:
		ret, err = decodeRegisterData(c)
	default:
		return nil, UnsupportedTransactionKindError{Type: TransactionType(tag)}
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", TransactionType(tag), err)
	}
	if err := c.Done(); err != nil {
		return nil, err
	}
	return ret, nil
}

// Transfer moves CCD to another account
type Transfer struct {
	ToAddress types.AccountAddress
	Amount    types.CcdAmount
}

func (*Transfer) Type() TransactionType { return TxTypeTransfer }

func (*Transfer) baseEnergy() types.Energy { return simpleTransferCost }

func (p *Transfer) encodeBody(w *wire.Writer) error {
	w.WriteRaw(p.ToAddress.Bytes())
	w.WriteUint64BE(p.Amount.MicroCcd())
	return nil
}

func decodeTransfer(c *wire.Cursor) (*Transfer, error) {
	to, err := readAccountAddress(c)
	if err != nil {
		return nil, err
	}
	amount, err := c.ReadUint64BE()
	if err != nil {
		return nil, err
	}
	return &Transfer{ToAddress: to, Amount: types.CcdAmount(amount)}, nil
}

// TransferWithMemo moves CCD to another account and attaches a memo
type TransferWithMemo struct {
	ToAddress types.AccountAddress
	Memo      types.Memo
	Amount    types.CcdAmount
}

func (*TransferWithMemo) Type() TransactionType { return TxTypeTransferWithMemo }

func (*TransferWithMemo) baseEnergy() types.Energy { return simpleTransferCost }

func (p *TransferWithMemo) encodeBody(w *wire.Writer) error {
	w.WriteRaw(p.ToAddress.Bytes())
	if err := writeMemo(w, p.Memo); err != nil {
		return err
	}
	w.WriteUint64BE(p.Amount.MicroCcd())
	return nil
}

func decodeTransferWithMemo(c *wire.Cursor) (*TransferWithMemo, error) {
	to, err := readAccountAddress(c)
	if err != nil {
		return nil, err
	}
	memo, err := readMemo(c)
	if err != nil {
		return nil, err
	}
	amount, err := c.ReadUint64BE()
	if err != nil {
		return nil, err
	}
	return &TransferWithMemo{
		ToAddress: to,
		Memo:      memo,
		Amount:    types.CcdAmount(amount),
	}, nil
}

// RegisterData stores arbitrary data on chain
type RegisterData struct {
	Data types.DataBlob
}

func (*RegisterData) Type() TransactionType { return TxTypeRegisterData }

func (*RegisterData) baseEnergy() types.Energy { return registerDataCost }

func (p *RegisterData) encodeBody(w *wire.Writer) error {
	if _, err := types.NewDataBlob(p.Data); err != nil {
		return err
	}
	return w.WritePrefixedBytes(wire.Prefix16, binary.BigEndian, p.Data)
}

func decodeRegisterData(c *wire.Cursor) (*RegisterData, error) {
	data, err := c.ReadPrefixedBytes(wire.Prefix16, binary.BigEndian)
	if err != nil {
		return nil, err
	}
	blob, err := types.NewDataBlob(data)
	if err != nil {
		return nil, err
	}
	return &RegisterData{Data: blob}, nil
}

// DeployModule deploys a versioned wasm module
type DeployModule struct {
	Module *module.VersionedSource
}

func (*DeployModule) Type() TransactionType { return TxTypeDeployModule }

func (p *DeployModule) baseEnergy() types.Energy {
	if p.Module == nil {
		return 0
	}
	return types.Energy(len(p.Module.Source) / deployModuleCostDivisor)
}

func (p *DeployModule) encodeBody(w *wire.Writer) error {
	if p.Module == nil {
		return fmt.Errorf("missing module source")
	}
	w.WriteRaw(p.Module.Bytes())
	return nil
}

// InitContract creates a new contract instance from a deployed module
type InitContract struct {
	Amount    types.CcdAmount
	ModuleRef types.ModuleReference
	InitName  types.InitName
	Param     types.Parameter
	// MaxContractExecutionEnergy is the energy reserved for running the init function
	MaxContractExecutionEnergy types.Energy
}

func (*InitContract) Type() TransactionType { return TxTypeInitContract }

func (p *InitContract) baseEnergy() types.Energy { return p.MaxContractExecutionEnergy }

func (p *InitContract) encodeBody(w *wire.Writer) error {
	if _, err := types.NewInitName(string(p.InitName)); err != nil {
		return err
	}
	w.WriteUint64BE(p.Amount.MicroCcd())
	w.WriteRaw(p.ModuleRef.Bytes())
	if err := w.WritePrefixedString(wire.Prefix16, binary.BigEndian, string(p.InitName)); err != nil {
		return err
	}
	return w.WritePrefixedBytes(wire.Prefix16, binary.BigEndian, p.Param)
}

// UpdateContract invokes a receive function of an existing contract instance
type UpdateContract struct {
	Amount      types.CcdAmount
	Address     types.ContractAddress
	ReceiveName types.ReceiveName
	Message     types.Parameter
	// MaxContractExecutionEnergy is the energy reserved for running the receive function
	MaxContractExecutionEnergy types.Energy
}

func (*UpdateContract) Type() TransactionType { return TxTypeUpdate }

func (p *UpdateContract) baseEnergy() types.Energy { return p.MaxContractExecutionEnergy }

func (p *UpdateContract) encodeBody(w *wire.Writer) error {
	if _, err := types.NewReceiveName(string(p.ReceiveName)); err != nil {
		return err
	}
	w.WriteUint64BE(p.Amount.MicroCcd())
	w.WriteUint64BE(p.Address.Index)
	w.WriteUint64BE(p.Address.Subindex)
	if err := w.WritePrefixedString(wire.Prefix16, binary.BigEndian, string(p.ReceiveName)); err != nil {
		return err
	}
	return w.WritePrefixedBytes(wire.Prefix16, binary.BigEndian, p.Message)
}

// ScheduledRelease is one step of a release schedule
type ScheduledRelease struct {
	Timestamp types.Timestamp
	Amount    types.CcdAmount
}

// TransferWithSchedule moves CCD that is released to the receiver over time
type TransferWithSchedule struct {
	ToAddress types.AccountAddress
	Schedule  []ScheduledRelease
}

func (*TransferWithSchedule) Type() TransactionType { return TxTypeTransferWithSchedule }

func (p *TransferWithSchedule) baseEnergy() types.Energy {
	return scheduledTransferCost(len(p.Schedule))
}

func (p *TransferWithSchedule) encodeBody(w *wire.Writer) error {
	w.WriteRaw(p.ToAddress.Bytes())
	return writeSchedule(w, p.Schedule)
}

// TransferWithScheduleAndMemo is a scheduled transfer with an attached memo
type TransferWithScheduleAndMemo struct {
	ToAddress types.AccountAddress
	Memo      types.Memo
	Schedule  []ScheduledRelease
}

func (*TransferWithScheduleAndMemo) Type() TransactionType {
	return TxTypeTransferWithScheduleAndMemo
}

func (p *TransferWithScheduleAndMemo) baseEnergy() types.Energy {
	return scheduledTransferCost(len(p.Schedule))
}

func (p *TransferWithScheduleAndMemo) encodeBody(w *wire.Writer) error {
	w.WriteRaw(p.ToAddress.Bytes())
	if err := writeMemo(w, p.Memo); err != nil {
		return err
	}
	return writeSchedule(w, p.Schedule)
}

// CredentialPublicKeys are the keys of a credential and the number of them needed to sign
type CredentialPublicKeys struct {
	Keys      map[uint8]types.PublicKey
	Threshold uint8
}

func (k CredentialPublicKeys) encode(w *wire.Writer) error {
	if len(k.Keys) > 255 {
		return fmt.Errorf("too many credential keys: %d", len(k.Keys))
	}
	if k.Threshold == 0 || int(k.Threshold) > len(k.Keys) {
		return fmt.Errorf(
			"invalid credential threshold %d for %d keys",
			k.Threshold,
			len(k.Keys),
		)
	}
	w.WriteUint8(uint8(len(k.Keys)))
	for _, idx := range sortedIndices(k.Keys) {
		w.WriteUint8(idx)
		w.WriteUint8(ed25519SchemeID)
		w.WriteRaw(k.Keys[idx].Bytes())
	}
	w.WriteUint8(k.Threshold)
	return nil
}

// UpdateCredentialKeys replaces the keys of one of the sender's credentials
type UpdateCredentialKeys struct {
	CredId types.CredentialRegistrationId
	Keys   CredentialPublicKeys
	// CurrentCredentialCount is the number of credentials on the account before the
	// update. It only affects the energy cost
	CurrentCredentialCount int
}

func (*UpdateCredentialKeys) Type() TransactionType { return TxTypeUpdateCredentialKeys }

func (p *UpdateCredentialKeys) baseEnergy() types.Energy {
	return updateCredentialKeysCost(p.CurrentCredentialCount, len(p.Keys.Keys))
}

func (p *UpdateCredentialKeys) encodeBody(w *wire.Writer) error {
	w.WriteRaw(p.CredId.Bytes())
	return p.Keys.encode(w)
}

// DelegationTarget selects where delegated stake goes
type DelegationTarget struct {
	// Passive delegation when nil
	BakerId *uint64
}

// ConfigureDelegation adds, updates or removes the sender's delegation. Nil fields are
// left unchanged
type ConfigureDelegation struct {
	Stake            *types.CcdAmount
	RestakeEarnings  *bool
	DelegationTarget *DelegationTarget
}

func (*ConfigureDelegation) Type() TransactionType { return TxTypeConfigureDelegation }

func (*ConfigureDelegation) baseEnergy() types.Energy { return configureDelegationCost }

func (p *ConfigureDelegation) encodeBody(w *wire.Writer) error {
	var bitmap uint16
	body := wire.NewWriter()
	if p.Stake != nil {
		bitmap |= 1 << 0
		body.WriteUint64BE(p.Stake.MicroCcd())
	}
	if p.RestakeEarnings != nil {
		bitmap |= 1 << 1
		body.WriteBool(*p.RestakeEarnings)
	}
	if p.DelegationTarget != nil {
		bitmap |= 1 << 2
		if p.DelegationTarget.BakerId == nil {
			body.WriteUint8(0)
		} else {
			body.WriteUint8(1)
			body.WriteUint64BE(*p.DelegationTarget.BakerId)
		}
	}
	w.WriteUint16BE(bitmap)
	w.WriteRaw(body.Bytes())
	return nil
}

// OpenStatus controls whether a baker pool accepts delegators
type OpenStatus uint8

const (
	OpenForAll   OpenStatus = 0
	ClosedForNew OpenStatus = 1
	ClosedForAll OpenStatus = 2
)

// BakerKeysWithProofs are the baker keys and the proofs of knowledge of their secret keys
type BakerKeysWithProofs struct {
	ElectionVerifyKey    [32]byte
	SignatureVerifyKey   [32]byte
	AggregationVerifyKey [96]byte
	ProofSig             [64]byte
	ProofElection        [64]byte
	ProofAggregation     [64]byte
}

// CommissionRate is expressed in parts per hundred thousand
type CommissionRate uint32

// ConfigureBaker adds, updates or removes the sender's baker. Nil fields are left
// unchanged
type ConfigureBaker struct {
	Stake                        *types.CcdAmount
	RestakeEarnings              *bool
	OpenForDelegation            *OpenStatus
	Keys                         *BakerKeysWithProofs
	MetadataUrl                  *string
	TransactionFeeCommission     *CommissionRate
	BakingRewardCommission       *CommissionRate
	FinalizationRewardCommission *CommissionRate
}

func (*ConfigureBaker) Type() TransactionType { return TxTypeConfigureBaker }

func (p *ConfigureBaker) baseEnergy() types.Energy {
	if p.Keys != nil {
		return configureBakerWithKeysCost
	}
	return configureBakerCost
}

func (p *ConfigureBaker) encodeBody(w *wire.Writer) error {
	var bitmap uint16
	body := wire.NewWriter()
	if p.Stake != nil {
		bitmap |= 1 << 0
		body.WriteUint64BE(p.Stake.MicroCcd())
	}
	if p.RestakeEarnings != nil {
		bitmap |= 1 << 1
		body.WriteBool(*p.RestakeEarnings)
	}
	if p.OpenForDelegation != nil {
		if *p.OpenForDelegation > ClosedForAll {
			return fmt.Errorf("invalid open status: %d", *p.OpenForDelegation)
		}
		bitmap |= 1 << 2
		body.WriteUint8(uint8(*p.OpenForDelegation))
	}
	if p.Keys != nil {
		bitmap |= 1 << 3
		body.WriteRaw(p.Keys.ElectionVerifyKey[:])
		body.WriteRaw(p.Keys.SignatureVerifyKey[:])
		body.WriteRaw(p.Keys.AggregationVerifyKey[:])
		body.WriteRaw(p.Keys.ProofSig[:])
		body.WriteRaw(p.Keys.ProofElection[:])
		body.WriteRaw(p.Keys.ProofAggregation[:])
	}
	if p.MetadataUrl != nil {
		if len(*p.MetadataUrl) > maxBakerMetadataUrlSize {
			return fmt.Errorf(
				"metadata URL of %d bytes exceeds the maximum of %d",
				len(*p.MetadataUrl),
				maxBakerMetadataUrlSize,
			)
		}
		bitmap |= 1 << 4
		if err := body.WritePrefixedString(wire.Prefix16, binary.BigEndian, *p.MetadataUrl); err != nil {
			return err
		}
	}
	for i, rate := range []*CommissionRate{
		p.TransactionFeeCommission,
		p.BakingRewardCommission,
		p.FinalizationRewardCommission,
	} {
		if rate == nil {
			continue
		}
		if *rate > maxCommissionRate {
			return fmt.Errorf("commission rate %d exceeds %d", *rate, maxCommissionRate)
		}
		bitmap |= 1 << (5 + i)
		body.WriteUint32BE(uint32(*rate))
	}
	w.WriteUint16BE(bitmap)
	w.WriteRaw(body.Bytes())
	return nil
}

const (
	ed25519SchemeID         = 0
	maxBakerMetadataUrlSize = 2048
	maxCommissionRate       = 100_000
	maxScheduleLength       = 255
)

func readAccountAddress(c *wire.Cursor) (types.AccountAddress, error) {
	var ret types.AccountAddress
	if err := c.ReadInto(ret[:]); err != nil {
		return ret, err
	}
	return ret, nil
}

func writeMemo(w *wire.Writer, memo types.Memo) error {
	if _, err := types.NewMemo(memo); err != nil {
		return err
	}
	return w.WritePrefixedBytes(wire.Prefix16, binary.BigEndian, memo)
}

func readMemo(c *wire.Cursor) (types.Memo, error) {
	data, err := c.ReadPrefixedBytes(wire.Prefix16, binary.BigEndian)
	if err != nil {
		return nil, err
	}
	return types.NewMemo(data)
}

func writeSchedule(w *wire.Writer, schedule []ScheduledRelease) error {
	if len(schedule) == 0 || len(schedule) > maxScheduleLength {
		return fmt.Errorf(
			"release schedule must have between 1 and %d entries, got %d",
			maxScheduleLength,
			len(schedule),
		)
	}
	w.WriteUint8(uint8(len(schedule)))
	for _, release := range schedule {
		w.WriteUint64BE(uint64(release.Timestamp))
		w.WriteUint64BE(release.Amount.MicroCcd())
	}
	return nil
}
