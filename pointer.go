// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package streamjson

import "strings"

// nextPointerFragment parses one RFC 6901 fragment from a JSON Pointer
// string: the substring up to (not including) the next unescaped '/' or
// end of string, with '~0' -> '~' and '~1' -> '/' applied. s must begin
// with '/'; the caller is responsible for checking that and reporting
// ErrBadJSONPointer otherwise.
//
// It returns the decoded fragment and the index into s of the next
// unread byte (the following '/' or len(s)), or ok=false if the fragment
// contains a malformed '~' escape.
func nextPointerFragment(s string) (fragment string, rest int, ok bool) {
	i := 1 // skip the leading '/'
	var buf strings.Builder
	for i < len(s) && s[i] != '/' {
		c := s[i]
		if c != '~' {
			buf.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(s) {
			return "", 0, false // lone '~' at end of input
		}
		switch s[i+1] {
		case '0':
			buf.WriteByte('~')
		case '1':
			buf.WriteByte('/')
		default:
			return "", 0, false // '~' followed by anything else
		}
		i += 2
	}
	return buf.String(), i, true
}
