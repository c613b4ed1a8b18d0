package model

import "fmt"

// Mode selects the upstream operation.
type Mode string

const (
	ModeEncode Mode = "encode"
	ModeDecode Mode = "decode"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeEncode, ModeDecode:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q (want encode or decode)", s)
}
