package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// storedCourse reads a course whose id may be a JSON string or a JSON number.
// Catalogs saved by the browser app used numeric ids.
type storedCourse struct {
	Course
	ID json.RawMessage `json:"id"`
}

// DecodeCourses decodes a stored catalog, accepting numeric ids and legacy level values.
//
// Numeric ids keep their literal text, e.g. 1718000000000.42 becomes "1718000000000.42".
func DecodeCourses(payload []byte) ([]Course, error) {
	var stored []storedCourse
	if err := json.Unmarshal(payload, &stored); err != nil {
		return nil, err
	}

	courses := make([]Course, 0, len(stored))
	for i, sc := range stored {
		id, err := decodeID(sc.ID)
		if err != nil {
			return nil, fmt.Errorf("course %d: %w", i, err)
		}
		course := sc.Course
		course.ID = id
		if course.EnrolledStudents == nil {
			course.EnrolledStudents = []string{}
		}
		courses = append(courses, course)
	}
	return courses, nil
}

func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", fmt.Errorf("missing id")
	}
	if raw[0] == '"' {
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return "", fmt.Errorf("invalid id: %w", err)
		}
		if id == "" {
			return "", fmt.Errorf("missing id")
		}
		return id, nil
	}

	var number json.Number
	if err := json.Unmarshal(raw, &number); err != nil {
		return "", fmt.Errorf("invalid id %s: %w", raw, err)
	}
	return number.String(), nil
}
