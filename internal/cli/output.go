package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Session:
		o.printSession(v)
	case Player:
		o.printPlayer(v)
	case Balance:
		o.printBalance(v)
	case MatchState:
		o.printMatch(v)
	case MatchList:
		o.printMatchList(v)
	case CommitResult:
		o.printCommitResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Session response type (matches API)
type Session struct {
	Token       string `json:"token"`
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// Player response type
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// Balance response type
type Balance struct {
	PlayerID string `json:"player_id"`
	Balance  uint64 `json:"balance"`
}

// Movement response type
type Movement struct {
	ID     string `json:"id"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Settlement response type
type Settlement struct {
	Outcome   string     `json:"outcome"`
	TotalPot  uint64     `json:"total_pot"`
	HouseFee  uint64     `json:"house_fee"`
	Movements []Movement `json:"movements"`
	Pending   bool       `json:"pending"`
}

// MatchState response type
type MatchState struct {
	ID                 string      `json:"id"`
	Status             string      `json:"status"`
	Wager              uint64      `json:"wager"`
	CreatorID          string      `json:"creator_id"`
	OpponentID         string      `json:"opponent_id,omitempty"`
	CreatorCommitment  string      `json:"creator_commitment"`
	OpponentCommitment string      `json:"opponent_commitment,omitempty"`
	CreatorReveal      *string     `json:"creator_reveal,omitempty"`
	OpponentReveal     *string     `json:"opponent_reveal,omitempty"`
	Settlement         *Settlement `json:"settlement,omitempty"`
}

// MatchList response type
type MatchList struct {
	Matches []MatchState `json:"matches"`
}

// CommitResult is produced locally by the commit helper
type CommitResult struct {
	Move       string `json:"move"`
	Salt       string `json:"salt"`
	Commitment string `json:"commitment"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printSession(s Session) {
	guestStr := "no"
	if s.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", s.DisplayName, s.PlayerID)
	fmt.Printf("Guest: %s\n", guestStr)
	fmt.Printf("Token: %s\n", s.Token)
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printBalance(b Balance) {
	fmt.Printf("Balance: %d\n", b.Balance)
}

func (o *Output) printMatch(m MatchState) {
	fmt.Printf("Match: %s\n", m.ID)
	fmt.Printf("Status: %s\n", m.Status)
	fmt.Printf("Wager: %d\n", m.Wager)
	fmt.Printf("Creator: %s\n", m.CreatorID)
	if m.OpponentID != "" {
		fmt.Printf("Opponent: %s\n", m.OpponentID)
	}
	if m.CreatorReveal != nil {
		fmt.Printf("Creator Reveal: %s\n", *m.CreatorReveal)
	}
	if m.OpponentReveal != nil {
		fmt.Printf("Opponent Reveal: %s\n", *m.OpponentReveal)
	}

	if m.Settlement != nil {
		fmt.Printf("\nOutcome: %s\n", m.Settlement.Outcome)
		fmt.Printf("Total Pot: %d\n", m.Settlement.TotalPot)
		fmt.Printf("House Fee: %d\n", m.Settlement.HouseFee)
		fmt.Println("Payouts:")
		for _, mv := range m.Settlement.Movements {
			line := fmt.Sprintf("  %s -> %d [%s]", mv.To, mv.Amount, mv.Status)
			if mv.Error != "" {
				line += " " + mv.Error
			}
			fmt.Println(line)
		}
		if m.Settlement.Pending {
			fmt.Println("Some fund movements are still pending - retry with 'match retry'")
		}
	}
}

func (o *Output) printMatchList(l MatchList) {
	if len(l.Matches) == 0 {
		fmt.Println("No open matches")
		return
	}
	fmt.Printf("Open matches (%d):\n", len(l.Matches))
	for _, m := range l.Matches {
		fmt.Printf("  %s - wager %d - by %s\n", m.ID, m.Wager, m.CreatorID)
	}
}

func (o *Output) printCommitResult(c CommitResult) {
	fmt.Printf("Move: %s\n", c.Move)
	fmt.Printf("Salt: %s\n", c.Salt)
	fmt.Printf("Commitment: %s\n", c.Commitment)
	fmt.Println("\nKeep the salt secret until you reveal.")
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
