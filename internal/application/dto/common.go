package dto

// ErrorResponse respuesta de error estándar de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListMeta metadatos de paginación para listados.
type ListMeta struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}
