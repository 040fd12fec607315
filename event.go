package profiles

import "time"

// AccountCreated is emitted once per account, inside the transaction that created it.
type AccountCreated struct {
	UserId    UserId
	Username  string
	CreatedAt time.Time
}
