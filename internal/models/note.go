package models

// Note is a short journal entry owned by a user. Notes go away with their
// owner through the store's ON DELETE CASCADE.
type Note struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"type:varchar(20);not null;check:min_title,length(title) >= 2"`
	Description string `json:"description" gorm:"type:varchar(150);not null;check:min_des,length(description) >= 5"`
	UserID      uint   `json:"user_id" gorm:"not null;index"`
	User        *User  `json:"user,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

type NoteCreate struct {
	Title       string `json:"title" validate:"required,min=2,max=20"`
	Description string `json:"description" validate:"required,min=5,max=150"`
	UserID      uint   `json:"user_id" validate:"required,gt=0"`
}

func (d NoteCreate) NewNote() Note {
	return Note{Title: d.Title, Description: d.Description, UserID: d.UserID}
}

type NoteUpdate struct {
	Title       string `json:"title" validate:"required,min=2,max=20"`
	Description string `json:"description" validate:"required,min=5,max=150"`
}

func (u NoteUpdate) Patch() NotePatch {
	return NotePatch{Title: Some(u.Title), Description: Some(u.Description)}
}

type NotePatch struct {
	Title       Optional[string] `json:"title" validate:"omitempty,min=2,max=20"`
	Description Optional[string] `json:"description" validate:"omitempty,min=5,max=150"`
}

// Apply follows the same rules as UserPatch.Apply.
func (p NotePatch) Apply(n *Note, partial bool) []string {
	var cols []string
	if p.Title.Set || !partial {
		n.Title = p.Title.Value
		cols = append(cols, "title")
	}
	if p.Description.Set || !partial {
		n.Description = p.Description.Value
		cols = append(cols, "description")
	}
	return cols
}

type NoteRead struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      uint      `json:"user_id"`
	User        *UserRead `json:"user,omitempty"`
}

func NewNoteRead(n *Note) NoteRead {
	r := NoteRead{ID: n.ID, Title: n.Title, Description: n.Description, UserID: n.UserID}
	if n.User != nil {
		u := NewUserRead(n.User)
		r.User = &u
	}
	return r
}

func NewNoteReads(notes []Note) []NoteRead {
	out := make([]NoteRead, 0, len(notes))
	for i := range notes {
		out = append(out, NewNoteRead(&notes[i]))
	}
	return out
}
