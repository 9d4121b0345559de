package dto

// ErrorResponse cuerpo de error HTTP. Detail se muestra tal cual al usuario.
type ErrorResponse struct {
	Code      string `json:"code"`
	Detail    string `json:"detail"`
	Available *int   `json:"available,omitempty"` // solo en INSUFFICIENT_STOCK
}

// MessageResponse respuesta simple con un mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}
