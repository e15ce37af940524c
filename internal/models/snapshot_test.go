package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCourses(t *testing.T) {
	tests := []struct {
		name        string
		payload     string
		expectedIDs []string
		expectedErr bool
	}{
		{
			name:        "string ids",
			payload:     `[{"id":"c1","title":"Go"},{"id":"c2","title":"Rust"}]`,
			expectedIDs: []string{"c1", "c2"},
		},
		{
			name:        "numeric ids from the browser app",
			payload:     `[{"id":1718000000000.4217,"title":"Go","level":"debutant","maxStudents":null,"enrolledStudents":["Alice"],"createdAt":"2024-06-10T06:13:20.000Z"}]`,
			expectedIDs: []string{"1718000000000.4217"},
		},
		{
			name:        "integer id",
			payload:     `[{"id":42}]`,
			expectedIDs: []string{"42"},
		},
		{
			name:        "empty catalog",
			payload:     `[]`,
			expectedIDs: []string{},
		},
		{name: "missing id", payload: `[{"title":"Go"}]`, expectedErr: true},
		{name: "null id", payload: `[{"id":null}]`, expectedErr: true},
		{name: "empty string id", payload: `[{"id":""}]`, expectedErr: true},
		{name: "object id", payload: `[{"id":{}}]`, expectedErr: true},
		{name: "unknown level", payload: `[{"id":"c1","level":"guru"}]`, expectedErr: true},
		{name: "not a list", payload: `{"id":"c1"}`, expectedErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			courses, err := DecodeCourses([]byte(tt.payload))
			if tt.expectedErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			ids := make([]string, 0, len(courses))
			for _, course := range courses {
				ids = append(ids, course.ID)
				assert.NotNil(t, course.EnrolledStudents)
			}
			assert.Equal(t, tt.expectedIDs, ids)
		})
	}
}

func TestDecodeCourses_KeepsFields(t *testing.T) {
	payload := `[{"id":1718000000000.5,"title":"React","description":"UI","instructor":"Dan","duration":"2h",
		"category":"Web","level":"avance","maxStudents":3,"enrolledStudents":["Alice","Bob"],
		"createdAt":"2024-06-10T06:13:20Z","courseDocument":{"name":"doc.pdf","data":"data:application/pdf;base64,AA=="}}]`

	courses, err := DecodeCourses([]byte(payload))

	require.NoError(t, err)
	require.Len(t, courses, 1)
	course := courses[0]
	assert.Equal(t, "1718000000000.5", course.ID)
	assert.Equal(t, "React", course.Title)
	assert.Equal(t, LevelAdvanced, course.Level)
	require.NotNil(t, course.MaxStudents)
	assert.Equal(t, 3, *course.MaxStudents)
	assert.Equal(t, []string{"Alice", "Bob"}, course.EnrolledStudents)
	assert.True(t, course.CreatedAt.Equal(time.Date(2024, 6, 10, 6, 13, 20, 0, time.UTC)))
	require.NotNil(t, course.CourseDocument)
	assert.Equal(t, "doc.pdf", course.CourseDocument.Name)
}
