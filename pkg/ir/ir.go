package ir

// IRSchema is a raw JSON schema node taken from the document. References
// are kept unresolved so generators can resolve them against the document.
type IRSchema = map[string]any

// IRParamLocation is where a parameter travels in the request
type IRParamLocation string

const (
	IRParamInPath   IRParamLocation = "path"
	IRParamInQuery  IRParamLocation = "query"
	IRParamInHeader IRParamLocation = "header"
	IRParamInBody   IRParamLocation = "body"
)

// IROperation represents a single API operation (endpoint + method)
type IROperation struct {
	OperationID  string
	Method       string
	Path         string
	OriginalTags []string
	Summary      string
	Description  string
	Deprecated   bool
	// Params holds path, query and header parameters in declaration order
	Params      []IRParam
	RequestBody *IRRequestBody
	Response    IRResponse
}

// IRParam represents a path, query or header parameter
type IRParam struct {
	Name        string
	In          IRParamLocation
	Required    bool
	Description string
	Schema      IRSchema
}

// IRRequestBody represents a request body
type IRRequestBody struct {
	ContentType string
	Required    bool
	Schema      IRSchema
}

// IRResponse describes the success response of an operation
type IRResponse struct {
	// HasContent is false when no 2xx response declares a body
	HasContent bool
	Schema     IRSchema
}

// IRService is one generated client: the operations of a single document,
// optionally pinned to an API version.
type IRService struct {
	Name    string
	Version string
	Title   string
	// BasePath is prefixed to every operation path
	BasePath   string
	Operations []IROperation
}

// ParamsIn returns the parameters of op located in loc, in declaration order.
func (op IROperation) ParamsIn(loc IRParamLocation) []IRParam {
	var out []IRParam
	for _, p := range op.Params {
		if p.In == loc {
			out = append(out, p)
		}
	}
	return out
}
