package document

const FileDoctype = "File"

// File is an uploaded attachment record.
type File struct {
	Document
	FileName          string `json:"file_name"`
	FileURL           string `json:"file_url"`
	FileSize          int64  `json:"file_size"`
	ContentHash       string `json:"content_hash,omitempty"`
	AttachedToDoctype string `json:"attached_to_doctype,omitempty"`
	AttachedToName    string `json:"attached_to_name,omitempty"`
	AttachedToField   string `json:"attached_to_field,omitempty"`
	Folder            string `json:"folder,omitempty"`
	IsPrivate         Flag   `json:"is_private"`
}
