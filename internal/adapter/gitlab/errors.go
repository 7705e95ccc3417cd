package gitlab

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

const errorBodyMaxChars = 200

// RequestError is returned when http request couldn't be made.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return "Request failed: " + e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// APIError is returned when api responds with status other than 200.
//
// JSON bodies are rendered in python literal notation, so that a 404 response reads
// `HTTP 404: {'message': '404 Not Found'}`. Other bodies are cut to 200 characters.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, describeBody(e.Body))
}

func describeBody(body []byte) string {
	if s, ok := literal(body); ok {
		return s
	}

	r := []rune(string(body))
	if len(r) > errorBodyMaxChars {
		r = r[:errorBodyMaxChars]
	}
	return string(r)
}

// literal renders json document. Object keys keep their order.
// Top level strings are rendered without quotes.
func literal(data []byte) (string, bool) {
	if len(bytes.TrimSpace(data)) == 0 {
		return "", false
	}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return "", false
	}

	iter := jsoniter.ConfigDefault.BorrowIterator(data)
	defer jsoniter.ConfigDefault.ReturnIterator(iter)

	var b strings.Builder
	if iter.WhatIsNext() == jsoniter.StringValue {
		b.WriteString(iter.ReadString())
	} else {
		writeLiteral(&b, iter)
	}
	if iter.Error != nil && iter.Error != io.EOF {
		return "", false
	}

	return b.String(), true
}

func writeLiteral(b *strings.Builder, iter *jsoniter.Iterator) {
	switch iter.WhatIsNext() {
	case jsoniter.StringValue:
		writeQuoted(b, iter.ReadString())
	case jsoniter.NumberValue:
		b.WriteString(formatNumber(string(iter.ReadNumber())))
	case jsoniter.NilValue:
		iter.ReadNil()
		b.WriteString("None")
	case jsoniter.BoolValue:
		if iter.ReadBool() {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case jsoniter.ArrayValue:
		b.WriteByte('[')
		first := true
		iter.ReadArrayCB(func(iter *jsoniter.Iterator) bool {
			if !first {
				b.WriteString(", ")
			}
			first = false
			writeLiteral(b, iter)
			return true
		})
		b.WriteByte(']')
	case jsoniter.ObjectValue:
		b.WriteByte('{')
		first := true
		iter.ReadObjectCB(func(iter *jsoniter.Iterator, field string) bool {
			if !first {
				b.WriteString(", ")
			}
			first = false
			writeQuoted(b, field)
			b.WriteString(": ")
			writeLiteral(b, iter)
			return true
		})
		b.WriteByte('}')
	default:
		iter.Skip()
	}
}

// formatNumber renders json number as int or float repr.
// Numbers without fraction and exponent are ints of any size,
// floats use the shortest form, scientific below 1e-4 and from 1e16 on.
func formatNumber(n string) string {
	if !strings.ContainsAny(n, ".eE") {
		if i, ok := new(big.Int).SetString(n, 10); ok {
			return i.String()
		}
		return n
	}

	f, err := strconv.ParseFloat(n, 64)
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case err != nil:
		return n
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err != nil {
		return sci
	}
	if exp < -4 || exp >= 16 {
		return sci
	}

	fixed := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(fixed, '.') {
		fixed += ".0"
	}
	return fixed
}

// writeQuoted writes single quoted string, or double quoted if it contains only single quotes.
func writeQuoted(b *strings.Builder, s string) {
	quote := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	b.WriteRune(quote)
	for _, r := range s {
		switch {
		case r == quote || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune(quote)
}
