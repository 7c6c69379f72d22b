package net_structures

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Component is a Minecraft chat/disconnect text component, carried on the
// wire as length-prefixed UTF-8 JSON (§4.2). Only the fields the proxy
// constructs or inspects are modeled. ParseComponent keeps the whole parsed
// object in Raw, but Encode writes only the modeled fields: anything held
// only in Raw is not written back.
type Component struct {
	Text  string      `json:"text,omitempty"`
	Color string      `json:"color,omitempty"`
	Bold  bool        `json:"bold,omitempty"`
	Extra []Component `json:"extra,omitempty"`
	Raw   map[string]any `json:"-"`
}

// PlainText builds a component carrying only a literal text string.
func PlainText(s string) Component {
	return Component{Text: s}
}

// ExtractPlainText concatenates this component's text and its extras',
// ignoring translation keys and formatting.
func (c Component) ExtractPlainText() string {
	var b strings.Builder
	b.WriteString(c.Text)
	for _, e := range c.Extra {
		b.WriteString(e.ExtractPlainText())
	}
	return b.String()
}

// Encode writes the component as a length-prefixed JSON string.
func (c Component) Encode(w io.Writer) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal component: %w", err)
	}
	return String(data).Encode(w)
}

// DecodeComponent reads a length-prefixed JSON text component. maxLen bounds
// the raw JSON string, per the wire's 262144-character limit on Disconnect
// reasons.
func DecodeComponent(r io.Reader, maxLen int) (Component, error) {
	raw, err := DecodeString(r, maxLen)
	if err != nil {
		return Component{}, fmt.Errorf("read component string: %w", err)
	}
	return ParseComponent(string(raw))
}

// ParseComponent parses a JSON text component, or wraps a bare string as
// literal text the way the vanilla protocol allows for some fields.
func ParseComponent(s string) (Component, error) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return Component{Text: s}, nil
	}
	var c Component
	if err := json.Unmarshal([]byte(s), &c); err != nil {
		return Component{}, fmt.Errorf("unmarshal component: %w", err)
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(s), &raw); err == nil {
		c.Raw = raw
	}
	return c, nil
}
