package llm

import (
	"encoding/json"
	"strings"
)

// The gateway fronts several model families and each answers in its own
// shape: a bare string, openai-style choices, an ollama-style response field,
// or an anthropic-style content field. Payload is the tagged union over
// those shapes; anything else decodes to Unknown and extracts as "".

type Payload interface {
	payloadShape()
}

type PlainText struct {
	Value string
}

type ChoiceList struct {
	Choices []Choice
}

type Choice struct {
	Message ChoiceMessage
}

type ChoiceMessage struct {
	Content Fragments
}

type ResponseField struct {
	Value string
}

type ContentField struct {
	Value Fragments
}

type Unknown struct{}

func (PlainText) payloadShape()     {}
func (ChoiceList) payloadShape()    {}
func (ResponseField) payloadShape() {}
func (ContentField) payloadShape()  {}
func (Unknown) payloadShape()       {}

// Fragments holds a content value that may arrive as one string or as an
// array of text pieces. Pieces can be bare strings or {text: ...} objects.
type Fragments []string

func (f *Fragments) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*f = Fragments{single}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// unexpected shape, treat as empty rather than failing the request
		*f = nil
		return nil
	}

	var out Fragments
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
			continue
		}
		var obj struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(item, &obj); err == nil && obj.Text != "" {
			out = append(out, obj.Text)
		}
	}
	*f = out
	return nil
}

func (f Fragments) Join() string {
	return strings.Join(f, "")
}

// ParsePayload classifies a raw gateway response into the union. Order
// matters: choices beats response beats content when several keys appear.
func ParsePayload(raw []byte) Payload {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return Unknown{}
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return PlainText{Value: asString}
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		// not JSON at all - the gateway replied with plain text
		return PlainText{Value: trimmed}
	}

	if choicesRaw, ok := probe["choices"]; ok {
		var choices []struct {
			Message struct {
				Content Fragments `json:"content"`
			} `json:"message"`
		}
		if err := json.Unmarshal(choicesRaw, &choices); err == nil {
			out := ChoiceList{}
			for _, c := range choices {
				out.Choices = append(out.Choices, Choice{Message: ChoiceMessage{Content: c.Message.Content}})
			}
			return out
		}
		return Unknown{}
	}

	if responseRaw, ok := probe["response"]; ok {
		var value string
		if err := json.Unmarshal(responseRaw, &value); err == nil {
			return ResponseField{Value: value}
		}
		return Unknown{}
	}

	if contentRaw, ok := probe["content"]; ok {
		var frags Fragments
		if err := json.Unmarshal(contentRaw, &frags); err == nil {
			return ContentField{Value: frags}
		}
		return Unknown{}
	}

	return Unknown{}
}

// ExtractText is the exhaustive match over the union. The default branch is
// deliberate: unrecognized shapes become "", never an error.
func ExtractText(p Payload) string {
	switch v := p.(type) {
	case PlainText:
		return v.Value
	case ChoiceList:
		if len(v.Choices) == 0 {
			return ""
		}
		return v.Choices[0].Message.Content.Join()
	case ResponseField:
		return v.Value
	case ContentField:
		return v.Value.Join()
	default:
		return ""
	}
}
