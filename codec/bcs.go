// Package codec serializes pure transaction arguments in the BCS layout the
// Sui node expects.
package codec

import (
	"encoding/binary"
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const AddressLength = 32

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{1,64}$`)

// NormalizeAddress validates a hex address and left-pads it to 64 hex digits.
func NormalizeAddress(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !addressPattern.MatchString(s) {
		return "", fmt.Errorf("normalizeAddress: malformed address %q", s)
	}
	b := common.LeftPadBytes(common.FromHex(s), AddressLength)
	return "0x" + common.Bytes2Hex(b), nil
}

// IsAddress reports whether s is a well formed address.
func IsAddress(s string) bool {
	return addressPattern.MatchString(strings.TrimSpace(s))
}

func U8(v uint8) []byte {
	return []byte{v}
}

func U16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

func U64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

func Bool(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

// ULEB128 encodes a length prefix.
func ULEB128(n uint64) []byte {
	var out []byte
	for {
		b := byte(n & 0x7f)
		n >>= 7
		if n != 0 {
			out = append(out, b|0x80)
			continue
		}
		return append(out, b)
	}
}

func String(s string) []byte {
	return append(ULEB128(uint64(len(s))), s...)
}

func Address(s string) ([]byte, error) {
	if !IsAddress(s) {
		return nil, fmt.Errorf("address: malformed address %q", s)
	}
	return common.LeftPadBytes(common.FromHex(strings.TrimSpace(s)), AddressLength), nil
}

func VectorU64(vs []uint64) []byte {
	out := ULEB128(uint64(len(vs)))
	for _, v := range vs {
		out = append(out, U64(v)...)
	}
	return out
}

func VectorAddress(as []string) ([]byte, error) {
	out := ULEB128(uint64(len(as)))
	for _, a := range as {
		b, err := Address(a)
		if err != nil {
			return nil, fmt.Errorf("vectorAddress: %w", err)
		}
		out = append(out, b...)
	}
	return out, nil
}
