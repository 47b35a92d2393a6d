package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"
)

// ErrInvalid is returned when package.json is not valid JSON or does not
// have the shape of a package manifest.
var ErrInvalid = errors.New("invalid package manifest")

// Document is a parsed package.json that keeps its keys in source order.
// The tree is read from JSON tokens and held as YAML nodes, which keep
// mapping entries as ordered key/value pairs.
type Document struct {
	root *yaml.Node
}

// Parse validates data and returns the ordered document.
func Parse(data []byte) (*Document, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if !result.Valid {
		msgs := make([]string, len(result.Issues))
		for i, issue := range result.Issues {
			msgs[i] = issue.String()
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	root, err := decodeNode(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top-level value must be an object", ErrInvalid)
	}

	return &Document{root: root}, nil
}

// decodeNode reads one JSON value from dec. String values arrive already
// unescaped, so \/ and surrogate pairs need no special handling.
func decodeNode(dec *json.Decoder) (*yaml.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading JSON: %w", err)
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("reading JSON: %w", err)
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key %v is not a string", keyTok)
				}
				val, err := decodeNode(dec)
				if err != nil {
					return nil, err
				}
				n.Content = append(n.Content, stringNode(key), val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("reading JSON: %w", err)
			}
			return n, nil
		case '[':
			n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for dec.More() {
				item, err := decodeNode(dec)
				if err != nil {
					return nil, err
				}
				n.Content = append(n.Content, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("reading JSON: %w", err)
			}
			return n, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", v)
		}
	case string:
		return stringNode(v), nil
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(v.String(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.String()}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)}, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	default:
		return nil, fmt.Errorf("unexpected JSON token %v", tok)
	}
}

// Keys returns the top-level keys in document order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.root.Content)/2)
	for i := 0; i+1 < len(d.root.Content); i += 2 {
		keys = append(keys, d.root.Content[i].Value)
	}
	return keys
}

// Scripts returns the scripts mapping as name/command pairs in document order.
func (d *Document) Scripts() [][2]string {
	scripts := lookup(d.root, "scripts")
	if scripts == nil || scripts.Kind != yaml.MappingNode {
		return nil
	}
	var out [][2]string
	for i := 0; i+1 < len(scripts.Content); i += 2 {
		out = append(out, [2]string{scripts.Content[i].Value, scripts.Content[i+1].Value})
	}
	return out
}

// Script returns the command registered under name.
func (d *Document) Script(name string) (string, bool) {
	for _, s := range d.Scripts() {
		if s[0] == name {
			return s[1], true
		}
	}
	return "", false
}

// SetScript sets scripts[name] = command, creating the scripts object at the
// end of the document when it is missing. Existing entries keep their position.
func (d *Document) SetScript(name, command string) {
	scripts := lookup(d.root, "scripts")
	if scripts == nil {
		scripts = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		d.root.Content = append(d.root.Content, stringNode("scripts"), scripts)
	}

	if existing := lookup(scripts, name); existing != nil {
		*existing = *stringNode(command)
		return
	}
	scripts.Content = append(scripts.Content, stringNode(name), stringNode(command))
}

// Dependencies returns every declared package name with its version range,
// merged from dependencies and devDependencies.
func (d *Document) Dependencies() map[string]string {
	deps := make(map[string]string)
	for _, section := range []string{"dependencies", "devDependencies"} {
		m := lookup(d.root, section)
		if m == nil || m.Kind != yaml.MappingNode {
			continue
		}
		for i := 0; i+1 < len(m.Content); i += 2 {
			if v := m.Content[i+1]; v.Kind == yaml.ScalarNode && v.ShortTag() == "!!str" {
				deps[m.Content[i].Value] = v.Value
			}
		}
	}
	return deps
}

// Marshal renders the document as two-space indented JSON with a trailing
// newline.
func (d *Document) Marshal() ([]byte, error) {
	var compact bytes.Buffer
	if err := encodeNode(&compact, d.root); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("formatting JSON: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// lookup returns the value node for key in mapping m, or nil.
func lookup(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func stringNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.DoubleQuotedStyle, Value: v}
}

func encodeNode(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) != 1 {
			return fmt.Errorf("document must hold exactly one value")
		}
		return encodeNode(buf, n.Content[0])
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, n.Content[i].Value); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encodeNode(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeNode(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case yaml.ScalarNode:
		return encodeScalar(buf, n)
	default:
		return fmt.Errorf("unsupported node kind %d at line %d", n.Kind, n.Line)
	}
}

func encodeScalar(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!str":
		return encodeString(buf, n.Value)
	case "!!int", "!!float":
		if !json.Valid([]byte(n.Value)) {
			return fmt.Errorf("invalid number %q at line %d", n.Value, n.Line)
		}
		buf.WriteString(n.Value)
	case "!!bool", "!!null":
		buf.WriteString(n.Value)
	default:
		return fmt.Errorf("unsupported value %q at line %d", n.Value, n.Line)
	}
	return nil
}

// encodeString writes s as a JSON string without HTML escaping.
func encodeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding string: %w", err)
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
