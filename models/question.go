package models

// Question represents a single multiple-choice question. Every question
// carries exactly 4 answer options; Correct is the index of the right one.
type Question struct {
	ID          int      `json:"id" validate:"required"`
	Question    string   `json:"question" validate:"required"`
	Options     []string `json:"options" validate:"len=4,dive,required"`
	Correct     int      `json:"correct" validate:"min=0,max=3"`
	Explanation string   `json:"explanation"`
}

// Category groups the questions for one AWS topic area. The question order
// is the authored presentation order.
type Category struct {
	ID        string     `json:"id" validate:"required"`
	Title     string     `json:"title" validate:"required"`
	Icon      string     `json:"icon"`
	Questions []Question `json:"questions" validate:"min=1,dive"`
}

// Document is one entry in the study-document index.
type Document struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	File     string `json:"file"`
}
