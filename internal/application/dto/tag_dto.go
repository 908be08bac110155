package dto

// CreateTagRequest alta de etiqueta.
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

// TagResponse salida de una etiqueta.
type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TagListResponse lista paginada de etiquetas.
type TagListResponse struct {
	Items []TagResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}
