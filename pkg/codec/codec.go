// Package codec encodes dashboard layouts into portable share tokens and
// decodes untrusted tokens back into layouts.
//
// A token is standard base64 over the JSON payload
//
//	{"v": 1, "l": ["widget", ...], "s": {"widget": "large", ...}}
//
// so every token begins with "ey". Decoding is forgiving about
// the transport (URL-safe alphabet, missing padding, raw JSON pasted straight
// from a settings export) and strict about content: the layout must be a list
// of strings and the version must not be newer than [Version].
package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/matzehuels/forgeboard/pkg/catalog"
	"github.com/matzehuels/forgeboard/pkg/errors"
	"github.com/matzehuels/forgeboard/pkg/layout"
	"github.com/matzehuels/forgeboard/pkg/tier"
)

// Version is the payload version written by [Encode].
const Version = 1

// Marker is the prefix every encoded token starts with.
const Marker = "ey"

// maxTokenBytes bounds the decoded payload.
const maxTokenBytes = 64 << 10

type payload struct {
	V int               `json:"v"`
	L []string          `json:"l"`
	S map[string]string `json:"s"`
}

// Encode serializes order and tiers into a share token. Only tiers for keys
// present in order are written.
func Encode(order []string, tiers layout.Tiers) (string, error) {
	p := payload{V: Version, L: order, S: make(map[string]string, len(order))}
	if p.L == nil {
		p.L = []string{}
	}
	for k, v := range tiers.Live(order) {
		if v.Valid() {
			p.S[k] = v.String()
		}
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode share token")
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// Decoded is the content of a share token after validation.
type Decoded struct {
	Version int
	Order   []string
	// Tiers holds entries for keys in Order only.
	Tiers layout.Tiers
	// Dropped lists layout keys removed because the catalog does not know
	// them.
	Dropped []string
}

// Decode parses token and filters its layout against cat. Unknown widget
// keys and invalid tier names are dropped; anything structurally wrong is an
// INVALID_SHARE_TOKEN error.
func Decode(token string, cat *catalog.Registry) (Decoded, error) {
	raw, err := unwrap(token)
	if err != nil {
		return Decoded{}, err
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
		return Decoded{}, errors.New(errors.ErrCodeInvalidShareToken, "share token payload is not a JSON object")
	}

	version := Version
	if v, ok := doc["v"]; ok {
		if err := json.Unmarshal(v, &version); err != nil {
			return Decoded{}, errors.New(errors.ErrCodeInvalidShareToken, "share token version is not a number")
		}
	}
	if version > Version {
		return Decoded{}, errors.New(errors.ErrCodeInvalidShareToken, "share token version %d is newer than supported version %d", version, Version)
	}

	order, err := layoutField(doc)
	if err != nil {
		return Decoded{}, err
	}

	sizes := doc["s"]
	if sizes == nil {
		sizes = doc["widgetSizes"]
	}
	kept := cat.Filter(order)
	tiers := layout.Tiers(tier.Lenient(sizes)).Live(kept)
	return Decoded{
		Version: version,
		Order:   kept,
		Tiers:   tiers,
		Dropped: dropped(order, cat),
	}, nil
}

func unwrap(token string) ([]byte, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New(errors.ErrCodeInvalidShareToken, "share token is empty")
	}
	if len(token) > maxTokenBytes*2 {
		return nil, errors.New(errors.ErrCodeInvalidShareToken, "share token is too large")
	}
	if token[0] == '{' {
		return []byte(token), nil
	}
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		if b, err := enc.DecodeString(token); err == nil {
			b = bytes.TrimSpace(b)
			if len(b) > maxTokenBytes {
				return nil, errors.New(errors.ErrCodeInvalidShareToken, "share token is too large")
			}
			return b, nil
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidShareToken, "share token is not valid base64")
}

// layoutField extracts the widget list from "l" or its alias "layout". The
// value is either a list or the stored {"grid": [...]} object.
func layoutField(doc map[string]json.RawMessage) ([]string, error) {
	raw, ok := doc["l"]
	if !ok {
		raw, ok = doc["layout"]
	}
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return nil, errors.New(errors.ErrCodeInvalidShareToken, "share token has no layout")
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Grid []string `json:"grid"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Grid != nil {
		return wrapped.Grid, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidShareToken, "share token layout is not a list of widget keys")
}

func dropped(order []string, cat *catalog.Registry) []string {
	var out []string
	for _, k := range order {
		if !cat.Has(k) {
			out = append(out, k)
		}
	}
	return out
}
