package transport

type CreateArtworkRequest struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Price    Number `json:"price"`
	Category string `json:"category"`
	ImageURL string `json:"imageUrl"`
}

type CustomerRequest struct {
	FullName Text `json:"fullName"`
	Address  Text `json:"address"`
	Phone    Text `json:"phone"`
}

// PaymentRequest deliberately has no card number or CVV field: anything
// else the client sends is dropped while decoding.
type PaymentRequest struct {
	CardLast4 Text `json:"cardLast4"`
	Expiry    Text `json:"expiry"`
}

type OrderItemRequest struct {
	ID       Text   `json:"id"`
	Title    Text   `json:"title"`
	Artist   Text   `json:"artist"`
	Price    Number `json:"price"`
	Category Text   `json:"category"`
	ImageURL Text   `json:"imageUrl"`
	Sold     Flag   `json:"sold"`
}

// CreateOrderRequest keeps Customer and Items as pointer/nil-able so that a
// missing field can be told apart from an empty one.
type CreateOrderRequest struct {
	Customer *CustomerRequest  `json:"customer"`
	Payment  *PaymentRequest   `json:"payment"`
	Items    []OrderItemRequest `json:"items"`
	Total    Number            `json:"total"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type UpdateStatusResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}
