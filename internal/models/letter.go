package models

// Letter is one Arabic letter with its four positional forms. Examples live
// in a child table and are always returned joined in.
type Letter struct {
	ID       int             `json:"id"`
	Letter   string          `json:"letter"`
	Name     string          `json:"name"`
	SoundURL *string         `json:"sound_url"`
	Isolated string          `json:"isolated"`
	Initial  string          `json:"initial"`
	Medial   string          `json:"medial"`
	Final    string          `json:"final"`
	Examples []LetterExample `json:"examples"`
}

// LetterExample is an example word using a letter, with its translation.
type LetterExample struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
}

// NewLetter carries the fields for a letter insert, examples included.
type NewLetter struct {
	Letter   string
	Name     string
	SoundURL *string
	Isolated string
	Initial  string
	Medial   string
	Final    string
	Examples []LetterExample
}
