package ledger

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientReserve = errors.New("insufficient reserve")
)

type TxType string

const (
	TxMint   TxType = "mint"
	TxRedeem TxType = "redeem"
)

type Transaction struct {
	ID           string    `json:"id"`
	Type         TxType    `json:"type"`
	Amount       float64   `json:"amount"`
	ReserveAfter float64   `json:"reserve_after"`
	Timestamp    time.Time `json:"timestamp"`
}

// Ledger is the toy stablecoin mint/redeem simulator behind the demo page.
// Purely in-memory: state resets on restart. The mutex guards the
// reserve and history against concurrent demo clickers.
type Ledger struct {
	mu      sync.Mutex
	reserve float64
	history []Transaction
	now     func() time.Time
}

func New(openingReserve float64) *Ledger {
	return &Ledger{
		reserve: openingReserve,
		now:     time.Now,
	}
}

// Mint adds amount to the reserve and records the transaction.
func (l *Ledger) Mint(amount float64) (Transaction, error) {
	if amount <= 0 {
		return Transaction{}, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.reserve += amount
	return l.record(TxMint, amount), nil
}

// Redeem subtracts amount from the reserve; rejects overdrafts.
func (l *Ledger) Redeem(amount float64) (Transaction, error) {
	if amount <= 0 {
		return Transaction{}, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if amount > l.reserve {
		return Transaction{}, ErrInsufficientReserve
	}
	l.reserve -= amount
	return l.record(TxRedeem, amount), nil
}

// History returns a copy of all transactions, most recent first.
func (l *Ledger) History() []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Transaction, len(l.history))
	for i, tx := range l.history {
		out[len(l.history)-1-i] = tx
	}
	return out
}

// Reserve returns the current reserve balance.
func (l *Ledger) Reserve() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reserve
}

// record appends a transaction; callers hold the mutex.
func (l *Ledger) record(txType TxType, amount float64) Transaction {
	tx := Transaction{
		ID:           uuid.NewString(),
		Type:         txType,
		Amount:       amount,
		ReserveAfter: l.reserve,
		Timestamp:    l.now().UTC(),
	}
	l.history = append(l.history, tx)
	return tx
}
