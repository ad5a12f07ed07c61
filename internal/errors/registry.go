package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Routing Errors (R001-R019)
	// ============================================

	"R001": {
		Category: CategoryRoute,
		Message:  "Route not found",
		Detail:   "No route in the table matches the requested URL.",
		DocURL:   "https://routefs.dev/docs/errors/R001",
	},
	"R002": {
		Category: CategoryRoute,
		Message:  "Unresolvable content path",
		Detail:   "The content file's directory path could not be resolved into a URL pattern. Check for empty or malformed segments.",
		DocURL:   "https://routefs.dev/docs/errors/R002",
	},
	"R003": {
		Category: CategoryRoute,
		Message:  "Duplicate route",
		Detail:   "Multiple content directories resolve to the same URL pattern and verb. The one discovered last wins.",
		DocURL:   "https://routefs.dev/docs/errors/R003",
	},
	"R004": {
		Category: CategoryRoute,
		Message:  "Catch-all segment not in final position",
		Detail:   "A [[param]] directory must be the last URL-visible segment of its route.",
		DocURL:   "https://routefs.dev/docs/errors/R004",
	},

	// ============================================
	// Scan Errors (S001-S019)
	// ============================================

	"S001": {
		Category: CategoryScan,
		Message:  "Content directory not found",
		Detail:   "The configured content directory does not exist or is not readable.",
		DocURL:   "https://routefs.dev/docs/errors/S001",
	},
	"S002": {
		Category: CategoryScan,
		Message:  "Content walk failed",
		Detail:   "The content tree could not be traversed. Check directory permissions.",
		DocURL:   "https://routefs.dev/docs/errors/S002",
	},
	"S003": {
		Category: CategoryScan,
		Message:  "Route table rebuild failed",
		Detail:   "Reloading the route table failed; the previous table is still being served.",
		DocURL:   "https://routefs.dev/docs/errors/S003",
	},

	// ============================================
	// Descriptor Errors (D001-D019)
	// ============================================

	"D001": {
		Category: CategoryDescriptor,
		Message:  "Descriptor failed to load",
		Detail:   "The Lua descriptor could not be parsed or its top-level chunk raised an error. The file is treated as absent.",
		DocURL:   "https://routefs.dev/docs/errors/D001",
	},
	"D002": {
		Category: CategoryDescriptor,
		Message:  "Descriptor exports no handler",
		Detail:   "The descriptor loaded but none of the recognized function names are exported.",
		DocURL:   "https://routefs.dev/docs/errors/D002",
	},
	"D003": {
		Category: CategoryDescriptor,
		Message:  "Descriptor handler raised an error",
		Detail:   "A descriptor function raised an error while handling a request.",
		DocURL:   "https://routefs.dev/docs/errors/D003",
	},
	"D004": {
		Category: CategoryDescriptor,
		Message:  "Invalid handler return value",
		Detail:   "A descriptor function returned a value of an unexpected type. Providers return tables; API handlers return tables or strings.",
		DocURL:   "https://routefs.dev/docs/errors/D004",
	},

	// ============================================
	// Render Errors (T001-T019)
	// ============================================

	"T001": {
		Category: CategoryRender,
		Message:  "Page template not found",
		Detail:   "The route's directory holds no page.html.",
		DocURL:   "https://routefs.dev/docs/errors/T001",
	},
	"T002": {
		Category: CategoryRender,
		Message:  "Page template failed to render",
		Detail:   "The leaf template could not be parsed or executed. A diagnostic placeholder is served in its place.",
		DocURL:   "https://routefs.dev/docs/errors/T002",
	},
	"T003": {
		Category: CategoryRender,
		Message:  "Layout failed to render",
		Detail:   "A layout along the ancestor chain could not be rendered. That level is skipped; the rest of the chain still applies.",
		DocURL:   "https://routefs.dev/docs/errors/T003",
	},

	// ============================================
	// Configuration Errors (C001-C019)
	// ============================================

	"C001": {
		Category: CategoryConfig,
		Message:  "Invalid routefs.json",
		Detail:   "The routefs.json configuration file is malformed.",
		DocURL:   "https://routefs.dev/docs/errors/C001",
	},
	"C002": {
		Category: CategoryConfig,
		Message:  "Missing required configuration",
		Detail:   "A required configuration value is not set.",
		DocURL:   "https://routefs.dev/docs/errors/C002",
	},
	"C003": {
		Category: CategoryConfig,
		Message:  "Invalid port number",
		Detail:   "The configured port number is invalid or already in use.",
		DocURL:   "https://routefs.dev/docs/errors/C003",
	},

	// ============================================
	// CLI Errors (L001-L019)
	// ============================================

	"L001": {
		Category: CategoryCLI,
		Message:  "Project directory already exists",
		Detail:   "A directory with this name already exists.",
		DocURL:   "https://routefs.dev/docs/errors/L001",
	},
	"L002": {
		Category: CategoryCLI,
		Message:  "Not a routefs project",
		Detail:   "The current directory is not a routefs project. Run this command from a directory with routefs.json.",
		DocURL:   "https://routefs.dev/docs/errors/L002",
	},
	"L003": {
		Category: CategoryCLI,
		Message:  "Invalid project name",
		Detail:   "Project names must be non-empty and filesystem-safe.",
		DocURL:   "https://routefs.dev/docs/errors/L003",
	},
	"L004": {
		Category: CategoryCLI,
		Message:  "Server failed to start",
		Detail:   "The HTTP server could not bind its address. The port may be in use.",
		DocURL:   "https://routefs.dev/docs/errors/L004",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
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
