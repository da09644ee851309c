package checkout

type ItemRequest struct {
	ID string `json:"id" validate:"required"`
}

type CreateTransactionRequest struct {
	OrderID       string        `json:"order_id" validate:"required"`
	TotalAmount   string        `json:"total_amount" validate:"required"`
	Description   string        `json:"description"`
	CustomerEmail string        `json:"customer_email" validate:"omitempty,email"`
	Items         []ItemRequest `json:"items" validate:"required,min=1,dive"`
}
