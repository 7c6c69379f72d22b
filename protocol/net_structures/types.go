package net_structures

// ByteArray is a plain byte slice used by length-prefixed and fixed-length
// byte fields throughout the protocol.
type ByteArray = []byte
