package compound

import "moneymarket/core"

// Require returns code unless cond holds
func Require(cond bool, code core.ErrorCode) error {
	if cond {
		return nil
	}

	return code
}
