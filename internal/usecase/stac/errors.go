package stac

// User-facing messages.
const (
	MsgNoCatalog        = "A catalog can't be found at the URL given."
	MsgURLError         = "The URL given returned an error. Is this a private Catalog or API?"
	MsgQueryInvalid     = "Query string invalid"
	MsgNotSTAC          = "Proxy only supports valid STAC"
	MsgTooDeep          = "Proxy only supports valid STAC: document is nested too deeply"
	msgRequestFailedFmt = "Request failed: %s"
)
