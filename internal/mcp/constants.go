package mcp

// Tool names, parameter descriptions and error messages shared by the tools.
const (
	toolRandomBytes   = "random_bytes"
	toolRandomInt     = "random_int"
	toolRandomPick    = "random_pick"
	toolRandomShuffle = "random_shuffle"

	descItems     = "Items separated by 'separator'"
	descSeparator = "Item separator (default: ',')"

	encodingHex    = "hex"
	encodingBase64 = "base64"

	defaultSeparator = ","

	errSourceFailed = "random source failed: %v"
	errNoItems      = "items must contain at least one entry"
	errTooManyItems = "too many items: %d (limit %d)"
	errCountRange   = "count must be between 1 and %d"

	errBudgetExhausted = "byte budget of %d per minute exhausted; retry in %v"
)
