package credits

import "errors"

// ErrInsufficientCredit indicates the account has no credits left and is
// not unlimited. No debit occurred.
var ErrInsufficientCredit = errors.New("insufficient credit")
