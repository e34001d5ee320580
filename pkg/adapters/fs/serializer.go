package fs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/strata/pkg/core"
	"gopkg.in/yaml.v3"
)

// contentKey holds the document body in JSON and YAML files.
const contentKey = "content"

// Serializer defines how to read and write a specific file format.
type Serializer interface {
	// Parse decodes file data into a Document. The ID is set by the caller.
	Parse(data []byte) (core.Document, error)
	// Serialize converts the Document to bytes.
	Serialize(doc core.Document) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers keyed by extension.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": JSONSerializer{},
		".yaml": YAMLSerializer{},
		".yml":  YAMLSerializer{},
		".md":   MarkdownSerializer{},
	}
}

// JSONSerializer stores metadata as top-level keys and the body under "content".
type JSONSerializer struct{}

func (JSONSerializer) Parse(data []byte) (core.Document, error) {
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return core.Document{}, fmt.Errorf("invalid json: %w", err)
	}
	return fromPayload(payload), nil
}

func (JSONSerializer) Serialize(doc core.Document) ([]byte, error) {
	return json.MarshalIndent(toPayload(doc), "", "  ")
}

// YAMLSerializer stores metadata as top-level keys and the body under "content".
type YAMLSerializer struct{}

func (YAMLSerializer) Parse(data []byte) (core.Document, error) {
	var payload map[string]any
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return core.Document{}, fmt.Errorf("invalid yaml: %w", err)
	}
	return fromPayload(payload), nil
}

func (YAMLSerializer) Serialize(doc core.Document) ([]byte, error) {
	return yaml.Marshal(toPayload(doc))
}

func fromPayload(payload map[string]any) core.Document {
	doc := core.Document{Metadata: core.Metadata(payload)}
	if doc.Metadata == nil {
		doc.Metadata = make(core.Metadata)
	}
	if c, ok := doc.Metadata[contentKey].(string); ok {
		doc.Content = c
		delete(doc.Metadata, contentKey)
	}
	return doc
}

func toPayload(doc core.Document) map[string]any {
	payload := doc.Metadata.Clone()
	if doc.Content != "" {
		payload[contentKey] = doc.Content
	}
	return payload
}

// MarkdownSerializer stores metadata as YAML frontmatter.
type MarkdownSerializer struct{}

func (MarkdownSerializer) Parse(data []byte) (core.Document, error) {
	doc := core.Document{Metadata: make(core.Metadata)}

	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		doc.Content = string(data)
		return doc, nil
	}

	parts := bytes.SplitN(data[3:], []byte("\n---"), 2)
	if len(parts) == 1 {
		return core.Document{}, errors.New("frontmatter started but no closing delimiter found")
	}

	if err := yaml.Unmarshal(parts[0], &doc.Metadata); err != nil {
		return core.Document{}, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	if doc.Metadata == nil {
		doc.Metadata = make(core.Metadata)
	}

	body := strings.TrimPrefix(string(parts[1]), "\r")
	body = strings.TrimPrefix(body, "\n")
	doc.Content = strings.TrimPrefix(body, "\r\n")
	return doc, nil
}

func (MarkdownSerializer) Serialize(doc core.Document) ([]byte, error) {
	var buf bytes.Buffer
	if len(doc.Metadata) > 0 {
		buf.WriteString("---\n")
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc.Metadata); err != nil {
			return nil, err
		}
		if err := encoder.Close(); err != nil {
			return nil, err
		}
		buf.WriteString("---\n")
	} else if strings.HasPrefix(doc.Content, "---") {
		// empty block so the content is not read back as frontmatter
		buf.WriteString("---\n---\n")
	}
	buf.WriteString(doc.Content)
	return buf.Bytes(), nil
}
