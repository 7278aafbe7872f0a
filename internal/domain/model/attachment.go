package model

import (
	"encoding/json"
	"io"
	"strconv"
)

// Flag is a boolean that tolerates string encodings on the wire.
type Flag bool

// UnmarshalJSON accepts true/false as JSON booleans or strings.
func (f *Flag) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = Flag(b)
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		*f = false
		return nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return err
	}
	*f = Flag(parsed)
	return nil
}

// Comment is an append-only note attached to an order or pipeline.
type Comment struct {
	Order     string `json:"order,omitempty"`
	Pipeline  string `json:"pipeline,omitempty"`
	Owner     string `json:"owner,omitempty"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at,omitempty"`
	Private   Flag   `json:"private"`
}

// File is an attachment record.
type File struct {
	ID              string `json:"id,omitempty"`
	Order           string `json:"order,omitempty"`
	Pipeline        string `json:"pipeline,omitempty"`
	Owner           string `json:"owner,omitempty"`
	File            string `json:"file,omitempty"`
	FilePath        string `json:"file_path,omitempty"`
	FileExtension   string `json:"file_extension,omitempty"`
	FileDescription string `json:"file_description,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
}

// FileUpload is a multipart attachment forwarded upstream.
type FileUpload struct {
	Filename    string
	Description string
	Content     io.Reader
}
