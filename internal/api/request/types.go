package request

// CreateGuestRequest creates an anonymous player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest creates a registered player account
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest authenticates a registered player
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// FaucetRequest credits the caller's account (local/operator use)
type FaucetRequest struct {
	Amount uint64 `json:"amount"`
}

// CreateMatchRequest opens a new match. The commitment is the hex SHA-256
// digest of the creator's move byte followed by their salt.
type CreateMatchRequest struct {
	Commitment string `json:"commitment"`
	Wager      uint64 `json:"wager"`
}

// JoinMatchRequest locks in the opponent's commitment
type JoinMatchRequest struct {
	Commitment string `json:"commitment"`
}

// RevealRequest discloses the original move and salt
type RevealRequest struct {
	Move string `json:"move"`
	Salt string `json:"salt"`
}
