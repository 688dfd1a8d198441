package build

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Stage identifies where decoding a share token failed.
type Stage string

const (
	StageEmpty     Stage = "empty"
	StageEncoding  Stage = "encoding"
	StageUTF8      Stage = "utf8"
	StageStructure Stage = "structure"
)

// DecodeError reports a share token that cannot be turned back into a Build.
type DecodeError struct {
	Stage Stage
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid build token (%s)", e.Stage)
	}
	return fmt.Sprintf("invalid build token (%s): %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsDecodeError reports whether err came from Decode.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// Encode serializes b into a token made only of URL-safe characters.
func Encode(b Build) (string, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("marshalling build: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode is the inverse of Encode. It also accepts the older token format,
// percent-escaped standard base64 with padding, whose payload may be Latin-1
// rather than UTF-8. Field values are not validated; only a payload that is
// not a JSON object is rejected.
func Decode(token string) (Build, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Build{}, &DecodeError{Stage: StageEmpty}
	}

	data, err := decodeBytes(token)
	if err != nil {
		return Build{}, &DecodeError{Stage: StageEncoding, Err: err}
	}
	if !utf8.Valid(data) {
		// Encode always writes UTF-8, so this can only be an older token.
		if data, err = decodeLatin1(token); err != nil {
			return Build{}, &DecodeError{Stage: StageUTF8, Err: errors.New("payload is not valid UTF-8")}
		}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Build{}, &DecodeError{Stage: StageStructure, Err: errors.New("payload is not a JSON object")}
	}

	var b Build
	if err := json.Unmarshal(trimmed, &b); err != nil {
		return Build{}, &DecodeError{Stage: StageStructure, Err: err}
	}
	return b, nil
}

func decodeBytes(token string) ([]byte, error) {
	if data, err := base64.RawURLEncoding.DecodeString(token); err == nil {
		return data, nil
	}
	return decodeLegacy(token)
}

func decodeLegacy(token string) ([]byte, error) {
	unescaped, err := url.PathUnescape(token)
	if err != nil {
		return nil, err
	}
	return base64.StdEncoding.DecodeString(unescaped)
}

// decodeLatin1 reads an older token whose payload was written one byte per
// character.
func decodeLatin1(token string) ([]byte, error) {
	data, err := decodeLegacy(token)
	if err != nil {
		return nil, err
	}
	return charmap.ISO8859_1.NewDecoder().Bytes(data)
}
