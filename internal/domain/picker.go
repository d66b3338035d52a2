package domain

// MediaType restricts what the picker offers.
type MediaType string

const (
	MediaPhoto MediaType = "photo"
)

// PickOptions configures one picker invocation.
type PickOptions struct {
	MediaType     MediaType
	MaxWidth      int
	MaxHeight     int
	IncludeBase64 bool
}

// PickStatus tags a PickResult.
type PickStatus int

const (
	PickCancelled PickStatus = iota
	PickErrored
	PickSelected
)

// String returns a human-readable pick status.
func (s PickStatus) String() string {
	switch s {
	case PickCancelled:
		return "cancelled"
	case PickErrored:
		return "errored"
	case PickSelected:
		return "selected"
	default:
		return "unknown"
	}
}

// Asset is one file returned by the picker.
type Asset struct {
	URI      string
	FileName string
	Type     string // MIME type
	Width    int
	Height   int
	FileSize int64
}

// PickResult is the outcome of ImagePicker.Pick. Message is set for
// PickErrored; Assets is non-empty for PickSelected.
type PickResult struct {
	Status  PickStatus
	Message string
	Assets  []Asset
}

// Cancelled returns a result for a dismissed chooser.
func Cancelled() PickResult { return PickResult{Status: PickCancelled} }

// Errored returns a failed result carrying msg.
func Errored(msg string) PickResult { return PickResult{Status: PickErrored, Message: msg} }

// Selected returns a successful result.
func Selected(assets ...Asset) PickResult {
	return PickResult{Status: PickSelected, Assets: assets}
}
