// Package vlm provides the vision-language-model client used by the page
// classifier and the structured extractor. The model is treated as an opaque
// remote capability behind the Invoker interface so the pipeline's own logic
// stays deterministic and testable with a stub.
package vlm

import "context"

// ImagePart is one image attached to a model request. Data is the
// base64-encoded image bytes.
type ImagePart struct {
	MIMEType string
	Data     string
}

// Request bundles a prompt and an ordered list of images into a single model
// invocation.
type Request struct {
	Prompt      string
	Images      []ImagePart
	Temperature float64
	// JSONResponse constrains the model to emit a JSON document.
	JSONResponse bool
}

// Invoker issues one request to a vision-language model and returns the raw
// response text. Transport failures and malformed service responses are
// reported as domain.RemoteServiceError.
type Invoker interface {
	GenerateContent(ctx context.Context, req Request) (string, error)
}
