// Package document holds the envelope shared by every backend record.
package document

// DocStatus is the backend workflow state of a document.
type DocStatus int

const (
	Draft     DocStatus = 0
	Submitted DocStatus = 1
	Cancelled DocStatus = 2
)

func (s DocStatus) String() string {
	switch s {
	case Draft:
		return "draft"
	case Submitted:
		return "submitted"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Flag is a boolean stored as 0/1 on the wire.
type Flag int

func FlagOf(b bool) Flag {
	if b {
		return 1
	}
	return 0
}

func (f Flag) Bool() bool { return f != 0 }

// Document is embedded by every entity. Timestamps are kept as the strings
// the backend sends ("2006-01-02 15:04:05.000000").
type Document struct {
	Name       string    `json:"name,omitempty"`
	Owner      string    `json:"owner,omitempty"`
	Creation   string    `json:"creation,omitempty"`
	Modified   string    `json:"modified,omitempty"`
	ModifiedBy string    `json:"modified_by,omitempty"`
	DocStatus  DocStatus `json:"docstatus"`
	Idx        int       `json:"idx"`
}

// DateLayout is the backend's date-only format.
const DateLayout = "2006-01-02"
