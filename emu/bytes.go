package emu

import "encoding/binary"

// Little-endian conversion between signed integers and their byte
// representation. Byte k of an encoded value holds bits [8k, 8k+8).

// EncodeI8 returns the single byte of v.
func EncodeI8(v int8) []byte {
	return []byte{byte(v)}
}

// EncodeI16 returns the two bytes of v, least significant first.
func EncodeI16(v int16) []byte {
	return binary.LittleEndian.AppendUint16(nil, uint16(v))
}

// EncodeI32 returns the four bytes of v, least significant first.
func EncodeI32(v int32) []byte {
	return binary.LittleEndian.AppendUint32(nil, uint32(v))
}

// EncodeI64 returns the eight bytes of v, least significant first.
func EncodeI64(v int64) []byte {
	return binary.LittleEndian.AppendUint64(nil, uint64(v))
}

// DecodeI8 reads a value written by EncodeI8.
func DecodeI8(b []byte) int8 {
	return int8(b[0])
}

// DecodeI16 reads a value written by EncodeI16.
func DecodeI16(b []byte) int16 {
	return int16(binary.LittleEndian.Uint16(b))
}

// DecodeI32 reads a value written by EncodeI32.
func DecodeI32(b []byte) int32 {
	return int32(binary.LittleEndian.Uint32(b))
}

// DecodeI64 reads a value written by EncodeI64.
func DecodeI64(b []byte) int64 {
	return int64(binary.LittleEndian.Uint64(b))
}

// encodeSized encodes the low size bytes of v.
func encodeSized(v int64, size int) []byte {
	return EncodeI64(v)[:size]
}
