package inspect

// Fixed texts shown by every inspector front end.
const (
	EmptyStateText            = "Select an API call to explore..."
	CompliantText             = "API call is compliant"
	BinaryPlaceholderText     = "[ binary data will not be rendered ]"
	UnrenderableBodyText      = "unable to render body"
	RequestViolationsHeading  = "Request Violations"
	ResponseViolationsHeading = "Response Violations"
	ContentTypeLabel          = "Content Type"
)
