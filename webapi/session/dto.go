package session

// InputRequest carries text typed into one field of the form.
type InputRequest struct {
	Field string `json:"field" validate:"required,oneof=source target"`
	Text  string `json:"text"`
}

// PickRequest asks to open the picker for a field.
type PickRequest struct {
	Field string `json:"field" validate:"required,oneof=source target"`
}

type SearchRequest struct {
	Text string `json:"text"`
}

// SelectRequest picks a row of the list the picker currently shows.
type SelectRequest struct {
	Index *int `json:"index" validate:"required,min=0"`
}
