package reportstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	model "github.com/teampulse/pulse/internal/domain/model"
)

// reportDoc is the raw report document as the reporting tool writes it.
// Unknown fields are ignored.
type reportDoc struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Timestamp       string            `json:"timestamp"`
	Week            string            `json:"week"`
	Status          string            `json:"status"`
	Activities      []activityDoc     `json:"current_activities"`
	Accomplishments []json.RawMessage `json:"accomplishments"`
	Challenges      string            `json:"challenges"`
	Concerns        string            `json:"concerns"`
}

type activityDoc struct {
	Description string          `json:"description"`
	Project     string          `json:"project"`
	Milestone   string          `json:"milestone"`
	Priority    string          `json:"priority"`
	Status      string          `json:"status"`
	Progress    json.RawMessage `json:"progress"`
	Deadline    string          `json:"deadline"`
}

// DecodeDocument turns one raw report document into the domain model.
// Free-text fields tolerate mixed encodings and malformed timestamps;
// only structurally unusable documents (bad JSON, missing id) are
// rejected.
func DecodeDocument(data []byte) (model.Report, error) {
	var doc reportDoc
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return model.Report{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if strings.TrimSpace(doc.ID) == "" {
		return model.Report{}, fmt.Errorf("%w: missing id", ErrInvalidDocument)
	}

	r := model.Report{
		ID:          strings.TrimSpace(doc.ID),
		Author:      strings.TrimSpace(doc.Name),
		SubmittedAt: model.ParseTimestamp(doc.Timestamp),
		Period:      strings.TrimSpace(doc.Week),
		Status:      model.ParseReportStatus(doc.Status),
		Challenges:  doc.Challenges,
		Concerns:    doc.Concerns,
	}

	r.Activities = make([]model.Activity, 0, len(doc.Activities))
	for _, a := range doc.Activities {
		r.Activities = append(r.Activities, model.Activity{
			Description: a.Description,
			Project:     a.Project,
			Milestone:   a.Milestone,
			Priority:    model.ParsePriority(a.Priority),
			Status:      model.ParseActivityStatus(a.Status),
			Progress:    model.ClampProgress(decodeProgress(a.Progress)),
			Deadline:    model.ParseTimestamp(a.Deadline),
		})
	}

	texts := make([]string, 0, len(doc.Accomplishments))
	for _, raw := range doc.Accomplishments {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			// Accomplishment entries are expected to be strings; other
			// shapes are dropped rather than failing the document.
			continue
		}
		texts = append(texts, s)
	}
	r.Accomplishments = model.DecodeTextItems(texts)

	return r, nil
}

// decodeProgress accepts a number or a numeric string; anything else
// counts as zero.
func decodeProgress(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return 0
}
