// Package txbuilder describes programmable transactions for the marketplace
// entry points. Building is pure: nothing here touches the network.
package txbuilder

import (
	"encoding/json"

	"tokentrip-marketplace/codec"
)

const ClockObjectID = "0x6"

const (
	ArgInput        = "Input"
	ArgResult       = "Result"
	ArgNestedResult = "NestedResult"
	ArgGasCoin      = "GasCoin"

	InputObject = "Object"
	InputPure   = "Pure"

	CmdMoveCall        = "MoveCall"
	CmdSplitCoins      = "SplitCoins"
	CmdMergeCoins      = "MergeCoins"
	CmdTransferObjects = "TransferObjects"
	CmdMakeMoveVec     = "MakeMoveVec"
)

type Argument struct {
	Kind        string `json:"kind"`
	Index       uint16 `json:"index"`
	ResultIndex uint16 `json:"resultIndex"`
}

// MarshalJSON writes resultIndex for nested results only, zero included.
func (a Argument) MarshalJSON() ([]byte, error) {
	out := struct {
		Kind        string  `json:"kind"`
		Index       uint16  `json:"index"`
		ResultIndex *uint16 `json:"resultIndex,omitempty"`
	}{Kind: a.Kind, Index: a.Index}
	if a.Kind == ArgNestedResult {
		ri := a.ResultIndex
		out.ResultIndex = &ri
	}
	return json.Marshal(out)
}

func GasCoin() Argument {
	return Argument{Kind: ArgGasCoin}
}

type CallArg struct {
	Kind     string `json:"kind"`
	ObjectID string `json:"objectId,omitempty"`
	Bytes    []byte `json:"bytes,omitempty"`
}

type Command struct {
	Kind          string     `json:"kind"`
	Target        string     `json:"target,omitempty"`
	TypeArguments []string   `json:"typeArguments,omitempty"`
	Arguments     []Argument `json:"arguments,omitempty"`
	ElementType   string     `json:"elementType,omitempty"`
}

// Transaction is the ordered call description handed to the signer.
type Transaction struct {
	Sender    string    `json:"sender"`
	GasBudget uint64    `json:"gasBudget,omitempty"`
	Inputs    []CallArg `json:"inputs"`
	Commands  []Command `json:"commands"`

	objects map[string]uint16
}

func NewTransaction(sender string) *Transaction {
	return &Transaction{Sender: sender, objects: map[string]uint16{}}
}

func (t *Transaction) input(a CallArg) Argument {
	t.Inputs = append(t.Inputs, a)
	return Argument{Kind: ArgInput, Index: uint16(len(t.Inputs) - 1)}
}

// Object references an on-chain object; repeated ids share one input.
func (t *Transaction) Object(id string) Argument {
	if t.objects == nil {
		t.objects = map[string]uint16{}
	}
	if i, ok := t.objects[id]; ok {
		return Argument{Kind: ArgInput, Index: i}
	}
	a := t.input(CallArg{Kind: InputObject, ObjectID: id})
	t.objects[id] = a.Index
	return a
}

func (t *Transaction) Pure(b []byte) Argument {
	return t.input(CallArg{Kind: InputPure, Bytes: b})
}

func (t *Transaction) U8(v uint8) Argument       { return t.Pure(codec.U8(v)) }
func (t *Transaction) U16(v uint16) Argument     { return t.Pure(codec.U16(v)) }
func (t *Transaction) U64(v uint64) Argument     { return t.Pure(codec.U64(v)) }
func (t *Transaction) Bool(v bool) Argument      { return t.Pure(codec.Bool(v)) }
func (t *Transaction) Text(s string) Argument    { return t.Pure(codec.String(s)) }
func (t *Transaction) U64s(vs []uint64) Argument { return t.Pure(codec.VectorU64(vs)) }

func (t *Transaction) Address(s string) (Argument, error) {
	b, err := codec.Address(s)
	if err != nil {
		return Argument{}, err
	}
	return t.Pure(b), nil
}

func (t *Transaction) Addresses(as []string) (Argument, error) {
	b, err := codec.VectorAddress(as)
	if err != nil {
		return Argument{}, err
	}
	return t.Pure(b), nil
}

func (t *Transaction) command(c Command) uint16 {
	t.Commands = append(t.Commands, c)
	return uint16(len(t.Commands) - 1)
}

// MoveCall appends a call and returns its first result.
func (t *Transaction) MoveCall(target string, typeArgs []string, args ...Argument) Argument {
	i := t.command(Command{Kind: CmdMoveCall, Target: target, TypeArguments: typeArgs, Arguments: args})
	return Argument{Kind: ArgNestedResult, Index: i, ResultIndex: 0}
}

// SplitCoins splits amounts off coin and returns one coin per amount.
func (t *Transaction) SplitCoins(coin Argument, amounts ...Argument) []Argument {
	i := t.command(Command{Kind: CmdSplitCoins, Arguments: append([]Argument{coin}, amounts...)})
	out := make([]Argument, len(amounts))
	for k := range amounts {
		out[k] = Argument{Kind: ArgNestedResult, Index: i, ResultIndex: uint16(k)}
	}
	return out
}

func (t *Transaction) MergeCoins(dst Argument, srcs ...Argument) {
	t.command(Command{Kind: CmdMergeCoins, Arguments: append([]Argument{dst}, srcs...)})
}

// TransferObjects takes the recipient last, as the node does.
func (t *Transaction) TransferObjects(objs []Argument, recipient Argument) {
	t.command(Command{Kind: CmdTransferObjects, Arguments: append(append([]Argument{}, objs...), recipient)})
}

func (t *Transaction) MakeMoveVec(elementType string, elems ...Argument) Argument {
	i := t.command(Command{Kind: CmdMakeMoveVec, ElementType: elementType, Arguments: elems})
	return Argument{Kind: ArgResult, Index: i}
}

// Clock references the shared system clock.
func (t *Transaction) Clock() Argument {
	return t.Object(ClockObjectID)
}
