package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Render Errors (S001-S009)
	// ============================================

	"S001": {
		Category:   CategoryRender,
		Message:    "Render target is not connected",
		Detail:     "The render target is not part of the document, or was removed before rendering.",
		Suggestion: "Select the target after the document is built and render before removing it.",
	},
	"S002": {
		Category:   CategoryRender,
		Message:    "Unsupported render content",
		Detail:     "Render accepts a node, a fragment, a string or a number.",
		Suggestion: "Build the content with Create before rendering it.",
	},

	// ============================================
	// Query Errors (S010-S019)
	// ============================================

	"S010": {
		Category:   CategoryQuery,
		Message:    "Invalid selector",
		Detail:     "The selector could not be parsed as CSS.",
		Suggestion: `Check brackets and quotes, e.g. "div[data-id='1']".`,
	},
	"S011": {
		Category: CategoryQuery,
		Message:  "No element matches selector",
		Detail:   "The selector is valid but matched nothing in the document.",
	},

	// ============================================
	// Style Errors (S020-S029)
	// ============================================

	"S020": {
		Category:   CategoryStyle,
		Message:    "Style target is not an element",
		Detail:     "Inline styles can only be applied to element nodes.",
		Suggestion: "Pass the element returned by Select or Create.",
	},
	"S021": {
		Category: CategoryStyle,
		Message:  "Invalid style",
		Detail:   "A style prop needs at least one property.",
	},

	// ============================================
	// Event Errors (S030-S039)
	// ============================================

	"S030": {
		Category:   CategoryEvent,
		Message:    "Unknown event for element",
		Detail:     "The element does not expose a handler for this event type, so the prop was skipped.",
		Suggestion: `Use the bare event name, e.g. On("click", fn).`,
	},
	"S031": {
		Category: CategoryEvent,
		Message:  "Event target is not an element",
		Detail:   "Delegated events are only routed for element targets.",
	},

	// ============================================
	// Build Errors (S040-S049)
	// ============================================

	"S040": {
		Category:   CategoryBuild,
		Message:    "Unsupported child",
		Detail:     "Children must be strings, numbers, nodes, slices of those, or func() any / func() string for dynamic text.",
		Suggestion: "Convert the value with fmt.Sprint or wrap it in a func.",
	},
	"S041": {
		Category: CategoryBuild,
		Message:  "Unsupported tag",
		Detail:   "A tag must be an element name, the fragment marker or a component.",
	},

	// ============================================
	// Config Errors (S100-S119)
	// ============================================

	"S100": {
		Category:   CategoryConfig,
		Message:    "Invalid config file",
		Detail:     "snapp.json could not be parsed.",
		Suggestion: "Validate the JSON syntax in snapp.json.",
	},
	"S101": {
		Category: CategoryConfig,
		Message:  "Invalid sweep settings",
		Detail:   "sweep.delayMs must be positive and sweep.threshold at least 1.",
	},
	"S102": {
		Category: CategoryConfig,
		Message:  "Invalid preview port",
		Detail:   "preview.port must be between 1 and 65535.",
	},
	"S103": {
		Category:   CategoryConfig,
		Message:    "Config file not found",
		Detail:     "No snapp.json was found.",
		Suggestion: "Run 'snapp init' or create snapp.json manually.",
	},
	"S104": {
		Category: CategoryConfig,
		Message:  "Invalid log level",
		Detail:   `logLevel must be one of "debug", "info", "warn" or "error".`,
	},
	"S105": {
		Category:   CategoryConfig,
		Message:    "Invalid publish settings",
		Detail:     "publish.bucket and publish.region are required to publish.",
		Suggestion: "Set them in snapp.json or pass --bucket and --region.",
	},

	// ============================================
	// CLI Errors (S140-S159)
	// ============================================

	"S140": {
		Category: CategoryCLI,
		Message:  "Input file not found",
		Detail:   "The HTML document to render could not be opened.",
	},
	"S141": {
		Category:   CategoryCLI,
		Message:    "Port in use",
		Detail:     "The preview server port is already in use by another process.",
		Suggestion: "Pass --port or set preview.port in snapp.json.",
	},
	"S142": {
		Category:   CategoryCLI,
		Message:    "Publish failed",
		Detail:     "The rendered document could not be uploaded.",
		Suggestion: "Check the bucket name and that AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY are set.",
	},
}

// GetAllCodes returns all registered error codes in order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
