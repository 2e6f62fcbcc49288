package types

// Method is the HTTP verb of an endpoint.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

// FieldType is the storage type of a data model field.
type FieldType string

const (
	FieldString    FieldType = "string"
	FieldInteger   FieldType = "integer"
	FieldBoolean   FieldType = "boolean"
	FieldTimestamp FieldType = "timestamp"
	FieldText      FieldType = "text"
)

// AuthMethods are the sign-in methods the auth form offers.
var AuthMethods = []string{"email", "google", "github", "facebook"}

// BackendSchema is the thin backend description edited next to the canvas.
type BackendSchema struct {
	Endpoints []Endpoint  `json:"endpoints"`
	Models    []DataModel `json:"models"`
	Auth      AuthConfig  `json:"auth"`
}

// Endpoint describes one API route.
type Endpoint struct {
	ID          string   `json:"id" mapstructure:"id"`
	Path        string   `json:"path" mapstructure:"path"`
	Method      Method   `json:"method" mapstructure:"method"`
	Description string   `json:"description" mapstructure:"description"`
	Parameters  []any    `json:"parameters" mapstructure:"parameters"`
	Response    Response `json:"response" mapstructure:"response"`
}

// Response is the declared response shape of an endpoint.
type Response struct {
	Type       string         `json:"type" mapstructure:"type"`
	Properties map[string]any `json:"properties" mapstructure:"properties"`
}

// DataModel is a named list of fields.
type DataModel struct {
	ID     string  `json:"id" mapstructure:"id"`
	Name   string  `json:"name" mapstructure:"name"`
	Fields []Field `json:"fields" mapstructure:"fields"`
}

// Field is one column of a data model.
type Field struct {
	Name     string    `json:"name" mapstructure:"name"`
	Type     FieldType `json:"type" mapstructure:"type"`
	Required bool      `json:"required" mapstructure:"required"`
	Primary  bool      `json:"primary,omitempty" mapstructure:"primary"`
}

// AuthConfig is the singleton authentication settings block.
type AuthConfig struct {
	Enabled         bool     `json:"enabled" mapstructure:"enabled"`
	Methods         []string `json:"methods" mapstructure:"methods"`
	JWTSecret       *string  `json:"jwtSecret,omitempty" mapstructure:"jwtSecret"`
	SessionDuration *int     `json:"sessionDuration,omitempty" mapstructure:"sessionDuration"`
}

// Clone returns a deep copy of the schema.
func (b BackendSchema) Clone() BackendSchema {
	out := BackendSchema{Auth: b.Auth.Clone()}
	if b.Endpoints != nil {
		out.Endpoints = make([]Endpoint, len(b.Endpoints))
		for i, ep := range b.Endpoints {
			out.Endpoints[i] = ep.Clone()
		}
	}
	if b.Models != nil {
		out.Models = make([]DataModel, len(b.Models))
		for i, m := range b.Models {
			out.Models[i] = m.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the endpoint.
func (e Endpoint) Clone() Endpoint {
	out := e
	if e.Parameters != nil {
		out.Parameters = make([]any, len(e.Parameters))
		copy(out.Parameters, e.Parameters)
	}
	if e.Response.Properties != nil {
		out.Response.Properties = make(map[string]any, len(e.Response.Properties))
		for k, v := range e.Response.Properties {
			out.Response.Properties[k] = v
		}
	}
	return out
}

// Clone returns a deep copy of the model.
func (m DataModel) Clone() DataModel {
	out := m
	if m.Fields != nil {
		out.Fields = make([]Field, len(m.Fields))
		copy(out.Fields, m.Fields)
	}
	return out
}

// Clone returns a deep copy of the auth block.
func (a AuthConfig) Clone() AuthConfig {
	out := a
	if a.Methods != nil {
		out.Methods = make([]string, len(a.Methods))
		copy(out.Methods, a.Methods)
	}
	if a.JWTSecret != nil {
		s := *a.JWTSecret
		out.JWTSecret = &s
	}
	if a.SessionDuration != nil {
		d := *a.SessionDuration
		out.SessionDuration = &d
	}
	return out
}

// HasMethod reports whether method is enabled.
func (a AuthConfig) HasMethod(method string) bool {
	for _, m := range a.Methods {
		if m == method {
			return true
		}
	}
	return false
}
