package protocol

const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"

	// Query layer.
	ErrBadRequest     = "E_BAD_REQUEST"
	ErrUnknownBlock   = "E_UNKNOWN_BLOCK"
	ErrRegionTooLarge = "E_REGION_TOO_LARGE"
	ErrOutOfBounds    = "E_OUT_OF_BOUNDS"
	ErrRateLimit      = "E_RATE_LIMIT"
	ErrInternal       = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest: {},
	ErrBadRequest:      {},
	ErrUnknownBlock:    {},
	ErrRegionTooLarge:  {},
	ErrOutOfBounds:     {},
	ErrRateLimit:       {},
	ErrInternal:        {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
