package types

// Category represents service categories
type Category string

const (
	CategoryFilesystem Category = "filesystem"
)

// Service represents a service definition
type Service struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Tools       []Tool   `json:"tools"`
}

// Tool represents a callable tool exposed by a service
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
}

// Parameter represents a tool parameter
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Schema is the JSON schema published for a tool's arguments
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

// Property describes a single schema property
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// Descriptor is the wire form of a tool in a tool listing
type Descriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema Schema `json:"inputSchema"`
}

// InputSchema renders the tool parameters as an object schema
func (t Tool) InputSchema() Schema {
	schema := Schema{
		Type:       "object",
		Properties: make(map[string]Property, len(t.Parameters)),
	}
	for _, p := range t.Parameters {
		schema.Properties[p.Name] = Property{Type: p.Type, Description: p.Description}
		if p.Required {
			schema.Required = append(schema.Required, p.Name)
		}
	}
	return schema
}

// Descriptor returns the listing form of the tool
func (t Tool) Descriptor() Descriptor {
	return Descriptor{
		Name:        t.Name,
		Description: t.Description,
		InputSchema: t.InputSchema(),
	}
}

// Context provides execution context for a tool call
type Context struct {
	RequestID string `json:"request_id,omitempty"`
	Transport string `json:"transport,omitempty"`
}

// Result represents a successful tool execution.
// Text is either plain content or pretty-printed JSON, depending on the tool.
type Result struct {
	Text string `json:"text"`
}
