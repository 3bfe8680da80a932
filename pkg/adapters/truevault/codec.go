package truevault

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// encodePayload serializes v to JSON and base64-encodes it, the wire form of
// document bodies and search options. HTML escaping is disabled so the bytes
// match what other TrueVault clients produce for the same value.
func encodePayload(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	raw := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return base64.StdEncoding.EncodeToString(raw), nil
}

// decodePayload reverses encodePayload. Numbers are kept as json.Number.
func decodePayload(op, encoded string) (any, error) {
	raw, err := decodeBase64(encoded)
	if err != nil {
		return nil, &ParseError{Op: op, Err: err}
	}
	v, err := decodeJSON(raw)
	if err != nil {
		return nil, &ParseError{Op: op, Err: err}
	}
	return v, nil
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if raw, err := base64.StdEncoding.DecodeString(s); err == nil {
		return raw, nil
	}
	// Some responses drop the padding.
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

func decodeJSON(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}
	return v, nil
}
