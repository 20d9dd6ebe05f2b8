package domain

// Announcement is a normalized Google Classroom announcement. Transient:
// returned to the caller, never persisted.
type Announcement struct {
	ID            string `json:"id"`
	CourseID      string `json:"courseId"`
	CourseName    string `json:"courseName"`
	Text          string `json:"text"`
	CreationTime  string `json:"creationTime"`
	UpdateTime    string `json:"updateTime,omitempty"`
	CreatorUserID string `json:"creatorUserId,omitempty"`
}
