package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// PipelineStatus is the numeric sales pipeline stage.
type PipelineStatus int

const (
	PipelineStatusNew            PipelineStatus = 1
	PipelineStatusMeetingHeld    PipelineStatus = 2
	PipelineStatusNegotiations   PipelineStatus = 3
	PipelineStatusResignation    PipelineStatus = 4
	PipelineStatusSignedContract PipelineStatus = 5
)

var pipelineStatusNames = map[PipelineStatus]string{
	PipelineStatusNew:            "new",
	PipelineStatusMeetingHeld:    "meeting_held",
	PipelineStatusNegotiations:   "negotiations",
	PipelineStatusResignation:    "resignation",
	PipelineStatusSignedContract: "signed_contract",
}

// Valid reports whether status is a known pipeline stage.
func (s PipelineStatus) Valid() bool {
	_, ok := pipelineStatusNames[s]
	return ok
}

// Terminal reports whether no further transitions are allowed.
func (s PipelineStatus) Terminal() bool {
	return s == PipelineStatusSignedContract
}

func (s PipelineStatus) String() string {
	if name, ok := pipelineStatusNames[s]; ok {
		return name
	}
	return strconv.Itoa(int(s))
}

// ParsePipelineStatus accepts a numeric code or a stage name.
func ParsePipelineStatus(raw string) (PipelineStatus, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return PipelineStatus(n), nil
	}
	for status, name := range pipelineStatusNames {
		if strings.EqualFold(name, raw) {
			return status, nil
		}
	}
	return 0, fmt.Errorf("unknown pipeline status %q", raw)
}

// UnmarshalJSON accepts numbers, numeric strings and stage names.
func (s *PipelineStatus) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*s = PipelineStatus(n)
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("pipeline status: %w", err)
	}
	parsed, err := ParsePipelineStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// RegistryData holds company registry lookup results.
type RegistryData struct {
	Municipality string `json:"Gmina,omitempty"`
	Street       string `json:"Ulica,omitempty"`
	City         string `json:"Miejscowosc,omitempty"`
	PostalCode   string `json:"KodPocztowy,omitempty"`
	Regon        string `json:"Regon,omitempty"`
}

// AdditionalInfo is the optional contact sub-record of a pipeline.
type AdditionalInfo struct {
	Pipeline      string `json:"pipeline,omitempty"`
	ContactPerson string `json:"contact_person,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
	Address       string `json:"address,omitempty"`
	City          string `json:"city,omitempty"`
	PostalCode    string `json:"postal_code,omitempty"`
	Note          string `json:"note,omitempty"`
}

// Pipeline tracks a sales deal through its stages.
type Pipeline struct {
	ID             string          `json:"id"`
	Owner          string          `json:"owner"`
	Name           string          `json:"name"`
	NIP            string          `json:"nip"`
	Status         PipelineStatus  `json:"status"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at,omitempty"`
	RegistryData   *RegistryData   `json:"gus_data,omitempty"`
	AdditionalInfo *AdditionalInfo `json:"additional_info,omitempty"`
	Comments       []Comment       `json:"comments,omitempty"`
	Files          []File          `json:"files,omitempty"`
}

// PipelineForm carries editable pipeline fields.
type PipelineForm struct {
	Name string `json:"name" validate:"required"`
	NIP  string `json:"nip" validate:"required"`
}

// PipelineStatusChange is the upstream status update request. Company and
// Owner are only sent when moving to signed_contract.
type PipelineStatusChange struct {
	PipelineID string         `json:"pipelineId"`
	Status     PipelineStatus `json:"status"`
	Company    string         `json:"company,omitempty"`
	Owner      string         `json:"owner,omitempty"`
}
