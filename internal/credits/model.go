package credits

// Account is a prepaid analysis credit balance. CreditsLeft never goes
// negative; IsUnlimited bypasses debits entirely.
type Account struct {
	AccountID   string `json:"accountId"`
	CreditsLeft int    `json:"creditsLeft"`
	IsUnlimited bool   `json:"isUnlimited"`
}

// HasCredit reports whether one more analysis may start.
func (a Account) HasCredit() bool {
	return a.IsUnlimited || a.CreditsLeft > 0
}
