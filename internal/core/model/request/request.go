package request

type TodoRequest struct {
	Text string `json:"text" validate:"required"`
}
